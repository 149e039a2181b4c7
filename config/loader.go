package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// Defaults for the server, clients and recommendation thresholds.
const (
	defaultPort                = 8600
	defaultFeedTimeoutMS       = 15000
	defaultRoutingTimeoutMS    = 20000
	defaultRadiusKM            = 5.0
	defaultMaxETAMin           = 30.0
	defaultHeadingToleranceDeg = 90.0
	defaultMinSpeedKMH         = 5.0
	defaultOSRMBaseURL         = "https://router.project-osrm.org"
)

// LoadAppConfig loads config.yml (optional when the feed is configured via
// environment), overlays credentials from the environment, applies defaults
// and validates the result.
func LoadAppConfig() error {
	_ = godotenv.Load()

	var cfg AppConfig
	paths := []string{"config.yml", "./deploy/config.yml"}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return err
		}
		break
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	Config = cfg
	return nil
}

// applyEnv overlays feed and routing credentials from the environment, using
// the variable names the positioning web service was provisioned with.
func applyEnv(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv("WS_POS_URL")); v != "" {
		cfg.Feed.URL = v
	}
	if v := strings.TrimSpace(os.Getenv("WS_POS_USER")); v != "" {
		cfg.Feed.User = v
	}
	if v := strings.TrimSpace(os.Getenv("WS_POS_PASS")); v != "" {
		cfg.Feed.Pass = v
	}
	if v := strings.TrimSpace(os.Getenv("WS_POS_TOKEN")); v != "" {
		cfg.Feed.Token = v
	}
	if v := strings.TrimSpace(os.Getenv("ORS_API_KEY")); v != "" {
		cfg.Routing.ORSAPIKey = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Feed.ServiceParam == "" {
		cfg.Feed.ServiceParam = "servicio"
	}
	if cfg.Feed.DirectionParam == "" {
		cfg.Feed.DirectionParam = "sentido"
	}
	if cfg.Feed.TimeoutMS == 0 {
		cfg.Feed.TimeoutMS = defaultFeedTimeoutMS
	}
	if cfg.Recommender.RadiusKM == 0 {
		cfg.Recommender.RadiusKM = defaultRadiusKM
	}
	if cfg.Recommender.MaxETAMin == 0 {
		cfg.Recommender.MaxETAMin = defaultMaxETAMin
	}
	if cfg.Recommender.HeadingToleranceDeg == 0 {
		cfg.Recommender.HeadingToleranceDeg = defaultHeadingToleranceDeg
	}
	if cfg.Recommender.MinSpeedKMH == 0 {
		cfg.Recommender.MinSpeedKMH = defaultMinSpeedKMH
	}
	if cfg.Routing.OSRMBaseURL == "" {
		cfg.Routing.OSRMBaseURL = defaultOSRMBaseURL
	}
	if cfg.Routing.TimeoutMS == 0 {
		cfg.Routing.TimeoutMS = defaultRoutingTimeoutMS
	}
}

package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// FeedConfig contains the positioning web service configuration. User/Pass
// enable basic auth, Token a bearer header; both are optional.
type FeedConfig struct {
	URL            string `yaml:"url" validate:"omitempty,url"`
	User           string `yaml:"user"`
	Pass           string `yaml:"pass"`
	Token          string `yaml:"token"`
	ServiceParam   string `yaml:"serviceParam"`
	DirectionParam string `yaml:"directionParam"`
	TimeoutMS      int    `yaml:"timeoutMS" validate:"gte=0"`
}

// RecommenderConfig contains the scoring thresholds. They are configuration,
// not inline literals, so they can be tuned independently of the algorithm.
type RecommenderConfig struct {
	RadiusKM            float64 `yaml:"radiusKM" validate:"gte=0"`
	MaxETAMin           float64 `yaml:"maxETAMin" validate:"gte=0"`
	HeadingToleranceDeg float64 `yaml:"headingToleranceDeg" validate:"gte=0,lte=180"`
	MinSpeedKMH         float64 `yaml:"minSpeedKMH" validate:"gte=0"`
}

// RoutingConfig contains the street-routing collaborator configuration.
// An ORS API key is optional; without one the public OSRM instance is used.
type RoutingConfig struct {
	OSRMBaseURL string `yaml:"osrmBaseURL" validate:"omitempty,url"`
	ORSAPIKey   string `yaml:"orsAPIKey"`
	TimeoutMS   int    `yaml:"timeoutMS" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server      ServerConfig      `yaml:"server"`
	Feed        FeedConfig        `yaml:"feed"`
	Recommender RecommenderConfig `yaml:"recommender"`
	Routing     RoutingConfig     `yaml:"routing"`
}

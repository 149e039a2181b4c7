// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Feed credentials may instead come from the environment (WS_POS_URL,
// WS_POS_USER, WS_POS_PASS, WS_POS_TOKEN, ORS_API_KEY), loaded through an
// optional .env file. Configuration is established once at process start and
// never mutated afterwards.
package config

// Package config loads runtime settings for the soukbid CLI.
//
// Sources are layered, later ones winning: built-in defaults, a JSON file
// (-c/-config), environment variables (optionally from a .env file), and
// command-line flags.
package config

import "time"

// Config holds everything the client needs to reach its collaborators.
//
// The API and push URLs default to the hosted production backend so the
// binary works out of the box.
type Config struct {
	APIBaseURL        string
	WSURL             string
	DBPath            string
	DialTimeout       time.Duration
	ReconnectAttempts int
	ReconnectDelay    time.Duration
	ListCap           int
	Debug             bool
}

// LoadDefaults populates c with the built-in fallbacks.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://auction-app-backend-production.up.railway.app"
	c.WSURL = "wss://auction-app-backend-production.up.railway.app"
	c.DBPath = "soukbid.db"
	c.DialTimeout = 20 * time.Second
	c.ReconnectAttempts = 5
	c.ReconnectDelay = time.Second
	c.ListCap = 50
	c.Debug = false
}

// LoadConfig constructs a Config, applying sources in precedence order:
// defaults, then JSON, then environment, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

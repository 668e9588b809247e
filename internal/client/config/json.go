package config

import (
	"encoding/json"
	"os"

	"github.com/soukbid/soukbid-cli/internal/flagx"
	"github.com/soukbid/soukbid-cli/internal/timex"
)

// jsonConfig is the DTO for the optional JSON config file. Durations accept
// either "20s"-style strings or integer nanoseconds.
type jsonConfig struct {
	APIBaseURL        string         `json:"api_base_url"`
	WSURL             string         `json:"ws_url"`
	DBPath            string         `json:"db_path"`
	DialTimeout       timex.Duration `json:"dial_timeout"`
	ReconnectAttempts int            `json:"reconnect_attempts"`
	ReconnectDelay    timex.Duration `json:"reconnect_delay"`
	ListCap           int            `json:"list_cap"`
	Debug             bool           `json:"debug"`
}

// parseJSON overlays cfg with values from the file named by -c/-config.
// Absent file path means no JSON layer. Read or parse errors panic; there is
// no sane way to continue with a half-applied config.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.WSURL != "" {
		cfg.WSURL = jc.WSURL
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.DialTimeout.Duration > 0 {
		cfg.DialTimeout = jc.DialTimeout.Duration
	}
	if jc.ReconnectAttempts > 0 {
		cfg.ReconnectAttempts = jc.ReconnectAttempts
	}
	if jc.ReconnectDelay.Duration > 0 {
		cfg.ReconnectDelay = jc.ReconnectDelay.Duration
	}
	if jc.ListCap > 0 {
		cfg.ListCap = jc.ListCap
	}
	if jc.Debug {
		cfg.Debug = true
	}
}

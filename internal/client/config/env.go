package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// getEnv returns the named variable, or def when unset or empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

// parseEnv overlays cfg with environment variables. A .env file in the
// working directory is loaded first when present; a missing file is not an
// error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.APIBaseURL = getEnv("SOUKBID_API_URL", cfg.APIBaseURL)
	cfg.WSURL = getEnv("SOUKBID_WS_URL", cfg.WSURL)
	cfg.DBPath = getEnv("SOUKBID_DB_PATH", cfg.DBPath)
	cfg.Debug = getBoolEnv("SOUKBID_DEBUG", cfg.Debug)
}

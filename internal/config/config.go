package config

import (
	"os"
	"strings"
	"time"
)

// DefaultAPIURL is the base path of the student directory API.
const DefaultAPIURL = "http://localhost:8080/api/students"

// Config is fixed at startup and only read afterwards.
type Config struct {
	APIURL  string        // base path, no trailing slash
	Theme   string        // classic | neon | mono
	Timeout time.Duration // per request; 0 leaves it to the transport
	LogFile string        // empty discards logs
}

// FromEnv builds a Config from ROSTER_* environment variables, falling back
// to defaults. Flags are applied on top by main.
func FromEnv() Config {
	cfg := Config{
		APIURL: DefaultAPIURL,
		Theme:  "classic",
	}
	if v := strings.TrimSpace(os.Getenv("ROSTER_API_URL")); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv("ROSTER_THEME")); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("ROSTER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	cfg.LogFile = strings.TrimSpace(os.Getenv("ROSTER_LOG"))
	return cfg.Normalize()
}

// Normalize trims a trailing slash from the API URL so paths join cleanly.
func (c Config) Normalize() Config {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Timeout < 0 {
		c.Timeout = 0
	}
	return c
}

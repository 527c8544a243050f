package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the MedReport CLI.
//
// Fields:
//   - APIURL: backend base URL, e.g. "http://localhost:3010/api".
//   - LoginPath: sign-in endpoint under APIURL ("/auth/login" or "/auth/signin").
//   - SessionTTL: lifetime of the stored session.
//   - RequestTimeout: per-request HTTP timeout; zero keeps the transport default.
//   - DBPath: SQLite file holding the session cookies.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIURL         string        `env:"MEDREPORT_API_URL"`
	LoginPath      string        `env:"MEDREPORT_LOGIN_PATH"`
	SessionTTL     time.Duration `env:"MEDREPORT_SESSION_TTL"`
	RequestTimeout time.Duration `env:"MEDREPORT_REQUEST_TIMEOUT"`
	DBPath         string        `env:"MEDREPORT_DB"`
	LogLevel       string        `env:"MEDREPORT_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:3010/api"
	c.LoginPath = "/auth/login"
	c.SessionTTL = 7 * 24 * time.Hour
	c.RequestTimeout = 0
	c.DBPath = "medreport.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if -c/-config is given), the environment and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api url is empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db path is empty")
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("session ttl %s is negative", c.SessionTTL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout %s is negative", c.RequestTimeout)
	}
	return nil
}

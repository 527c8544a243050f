package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/medreport/internal/flagx"
	"github.com/dmitrijs2005/medreport/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Durations go through timex.Duration so they can be written either as
// strings like "168h" or as integer nanoseconds. Pointer fields tell an
// absent key from an explicit zero.
type JsonConfig struct {
	APIURL         *string         `json:"api_url"`
	LoginPath      *string         `json:"login_path"`
	SessionTTL     *timex.Duration `json:"session_ttl"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	DBPath         *string         `json:"db_path"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c or -config. Keys
// missing from the file keep their current values.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIURL != nil {
		cfg.APIURL = *jc.APIURL
	}
	if jc.LoginPath != nil {
		cfg.LoginPath = *jc.LoginPath
	}
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DBPath != nil {
		cfg.DBPath = *jc.DBPath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}

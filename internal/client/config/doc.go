// Package config loads runtime configuration for the MedReport CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. MEDREPORT_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string     backend base URL
//	-d string     session database path
//	-t duration   HTTP request timeout
//
// Environment
//
//	MEDREPORT_API_URL, MEDREPORT_LOGIN_PATH, MEDREPORT_SESSION_TTL,
//	MEDREPORT_REQUEST_TIMEOUT, MEDREPORT_DB, MEDREPORT_LOG_LEVEL
//
// # JSON schema
//
//	{
//	  "api_url": "http://localhost:3010/api",
//	  "login_path": "/auth/login",
//	  "session_ttl": "168h",
//	  "request_timeout": "30s",
//	  "db_path": "medreport.db",
//	  "log_level": "info"
//	}
package config

package config

import (
	"fmt"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.OMDb.APIKey == "" {
		errs = append(errs, "omdb.api_key: required")
	}
	if c.OMDb.RateLimitDelay.Duration < 0 {
		errs = append(errs, "omdb.rate_limit_delay: must not be negative")
	}

	if c.Cache.FreshnessWindow.Duration <= 0 {
		errs = append(errs, "cache.freshness_window: must be positive")
	}
	if c.Cache.PurgeInterval.Duration < 0 {
		errs = append(errs, "cache.purge_interval: must not be negative")
	}

	// The search and purge endpoints are unusable without their tokens, but a
	// read-only deployment is legitimate, so tokens are not required here.
	if c.Auth.UserToken != "" && c.Auth.UserToken == c.Auth.AdminToken {
		errs = append(errs, "auth.user_token: must differ from auth.admin_token")
	}

	return errs
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	Flock      string `env:"SHEEP_FLOCK"`
	APIKey     string `env:"SHEEP_API_KEY"`
	GrantRole  string `env:"SHEEP_GRANT_ROLE"`
	RevokeRole string `env:"SHEEP_REVOKE_ROLE"`
	Timeout    int    `env:"SHEEP_TIMEOUT"`
	Debug      string `env:"SHEEP_DEBUG"`
	APIURL     string `env:"SHEEP_API_URL"`

	RoleDBDriver string `env:"SHEEP_ROLE_DB_DRIVER"`
	RoleDBDSN    string `env:"SHEEP_ROLE_DB_DSN"`
}

func parseEnv() (envConfig, error) {
	cfg := envConfig{}
	if err := env.Parse(&cfg); err != nil {
		return envConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// debugEnabled accepts the settings form value "yes" as well as the usual
// boolean spellings.
func (c envConfig) debugEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(c.Debug)) {
	case "yes", "y", "true", "1", "on":
		return true
	default:
		return false
	}
}

// LoadRaw exposes the environment as a raw config layer. Unset values are
// omitted so lower layers keep their defaults.
func (c envConfig) LoadRaw(context.Context) (map[string]any, error) {
	raw := map[string]any{}
	set := func(key string, value string) {
		if strings.TrimSpace(value) != "" {
			raw[key] = value
		}
	}
	set("flock", c.Flock)
	set("api_key", c.APIKey)
	set("grant_role", c.GrantRole)
	set("revoke_role", c.RevokeRole)
	set("api_url", c.APIURL)
	if c.Timeout > 0 {
		raw["timeout"] = c.Timeout
	}
	if c.debugEnabled() {
		raw["debug"] = true
	}
	return raw, nil
}

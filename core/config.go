package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultAPIURL = "https://api.sheepcrm.com/api/v1/"

	// MinTimeoutSeconds is the lower bound applied to the configured request
	// timeout when settings are normalized.
	MinTimeoutSeconds = 5
)

type Config struct {
	Flock      string `koanf:"flock" mapstructure:"flock"`
	APIKey     string `koanf:"api_key" mapstructure:"api_key"`
	GrantRole  string `koanf:"grant_role" mapstructure:"grant_role"`
	RevokeRole string `koanf:"revoke_role" mapstructure:"revoke_role"`
	Timeout    int    `koanf:"timeout" mapstructure:"timeout"`
	Debug      bool   `koanf:"debug" mapstructure:"debug"`
	APIURL     string `koanf:"api_url" mapstructure:"api_url"`
}

func DefaultConfig() Config {
	return Config{
		Timeout: MinTimeoutSeconds,
		APIURL:  DefaultAPIURL,
	}
}

func (c Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("core: timeout must be >= 0")
	}
	if strings.TrimSpace(c.APIURL) != "" {
		parsed, err := url.Parse(strings.TrimSpace(c.APIURL))
		if err != nil {
			return fmt.Errorf("core: invalid api_url: %w", err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("core: api_url must be absolute")
		}
	}
	return nil
}

// Normalize applies the settings sanitation rules: the flock is lower-cased,
// credentials are trimmed and the timeout never drops below MinTimeoutSeconds.
func (c Config) Normalize() Config {
	c.Flock = strings.ToLower(strings.TrimSpace(c.Flock))
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.GrantRole = strings.TrimSpace(c.GrantRole)
	c.RevokeRole = strings.TrimSpace(c.RevokeRole)
	c.APIURL = strings.TrimSpace(c.APIURL)
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Timeout < MinTimeoutSeconds {
		c.Timeout = MinTimeoutSeconds
	}
	return c
}

// HasConnectionDetails reports whether both flock and API key are present. It
// does not check that they work.
func (c Config) HasConnectionDetails() bool {
	return strings.TrimSpace(c.Flock) != "" && strings.TrimSpace(c.APIKey) != ""
}

func (c Config) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 0
	}
	return time.Duration(c.Timeout) * time.Second
}

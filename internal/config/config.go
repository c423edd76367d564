package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment-sourced settings for the storefront service.
// The access secrets (SitePassword, SessionSecret) and Shopify credentials are
// deliberately not validated at load time: a missing secret is reported as a
// server-configuration error on the request that needs it, so the service
// still boots and serves public pages.
type Config struct {
	Address     string `env:"STOREFRONT_ADDRESS" envDefault:"127.0.0.1:8080"`
	Environment string `env:"STOREFRONT_ENV" envDefault:"development"`
	LogLevel    string `env:"STOREFRONT_LOG_LEVEL" envDefault:"info"`
	Database    string `env:"STOREFRONT_DATABASE" envDefault:"storefront.db"`

	SitePassword  string `env:"SITE_ACCESS_PASSWORD"`
	SessionSecret string `env:"SESSION_SECRET"`

	Shopify ShopifyConfig
}

// ShopifyConfig carries the commerce platform credentials.
type ShopifyConfig struct {
	StoreDomain     string `env:"SHOPIFY_STORE_DOMAIN"`
	StorefrontToken string `env:"SHOPIFY_STOREFRONT_ACCESS_TOKEN"`
	AdminToken      string `env:"SHOPIFY_ADMIN_ACCESS_TOKEN"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Production reports whether the service runs in production mode. Cookies are
// marked Secure only in production so local development over plain HTTP works.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

func (c *Config) validate() error {
	if c.Address == "" {
		return fmt.Errorf("config: address must not be empty")
	}
	if c.Database == "" {
		return fmt.Errorf("config: database path must not be empty")
	}
	return nil
}

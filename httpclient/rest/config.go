package rest

import (
	"time"

	"github.com/kbukum/picoview/httpclient"
	"github.com/kbukum/picoview/validation"
)

// Config is the api section of the picoview config file.
type Config struct {
	BaseAddress string                `yaml:"base_address" mapstructure:"base_address" json:"base_address" validate:"required,url"`
	Timeout     time.Duration         `yaml:"timeout" mapstructure:"timeout" json:"timeout"`
	Headers     map[string]string     `yaml:"headers" mapstructure:"headers" json:"headers"`
	TLS         *httpclient.TLSConfig `yaml:"tls" mapstructure:"tls" json:"tls"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}

// Validate checks the section with struct tags and the TLS rules.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return c.TLS.Validate()
}

// Options converts the section into client options.
func (c *Config) Options() []Option {
	opts := []Option{WithTimeout(c.Timeout)}
	if len(c.Headers) > 0 {
		opts = append(opts, WithHeaders(c.Headers))
	}
	if c.TLS.IsEnabled() {
		opts = append(opts, WithTLS(c.TLS))
	}
	return opts
}

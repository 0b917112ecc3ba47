package main

import (
	"fmt"

	"github.com/kbukum/picoview/config"
	"github.com/kbukum/picoview/httpclient/rest"
	"github.com/kbukum/picoview/observability"
	"github.com/kbukum/picoview/sandbox"
	"github.com/kbukum/picoview/validation"
)

const serviceName = "picoview"

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// Config is the picoview config file.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	API       rest.Config          `yaml:"api" mapstructure:"api"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
	Sandbox   sandbox.Config       `yaml:"sandbox" mapstructure:"sandbox"`
	Output    string               `yaml:"output" mapstructure:"output"`
}

// ApplyDefaults fills every section.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.API.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
	c.Sandbox.ApplyDefaults()
	if c.Output == "" {
		c.Output = outputTable
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("config.api: %w", err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	if err := c.Sandbox.Validate(); err != nil {
		return err
	}
	if err := validation.New().OneOf("output", c.Output, []string{outputTable, outputJSON}).Validate(); err != nil {
		return err
	}
	return nil
}

// defaults registers every key with viper so environment variables such as
// PICOVIEW_API_BASE_ADDRESS can override it.
func defaults() map[string]any {
	return map[string]any{
		"name":                     serviceName,
		"environment":              "development",
		"debug":                    false,
		"logging.level":            "warn",
		"logging.format":           "console",
		"logging.output":           "stderr",
		"output":                   outputTable,
		"api.base_address":         "http://localhost:5000",
		"api.timeout":              "30s",
		"telemetry.enabled":        false,
		"telemetry.endpoint":       "localhost:4318",
		"telemetry.insecure":       true,
		"telemetry.sample_rate":    1.0,
		"sandbox.cluster":          "k8-pico",
		"sandbox.nodes":            3,
		"sandbox.node_port":        5001,
		"sandbox.seed_pods":        true,
		"sandbox.host":             "127.0.0.1",
		"sandbox.port":             5000,
		"sandbox.rate_limit.rps":   0.0,
		"sandbox.rate_limit.burst": 0,
	}
}

func loadConfig(configFile string) (*Config, error) {
	opts := []config.LoaderOption{config.WithDefaults(defaults())}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}

	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}

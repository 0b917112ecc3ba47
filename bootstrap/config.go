package bootstrap

import (
	"github.com/kbukum/picoview/config"
)

// Config is the constraint for application config types. Embedding
// config.ServiceConfig satisfies it through promoted methods:
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    API rest.Config      `yaml:"api" mapstructure:"api"`
//	}
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}

package sandbox

import (
	"fmt"

	"github.com/kbukum/picoview/server"
)

// Config configures the sandbox backend.
type Config struct {
	Cluster string `yaml:"cluster" mapstructure:"cluster"`
	// Nodes is the number of seeded nodes.
	Nodes int `yaml:"nodes" mapstructure:"nodes"`
	// NodePort is the pico agent port reported for every seeded node.
	NodePort int `yaml:"node_port" mapstructure:"node_port"`
	// SeedPods places the demo workloads when true.
	SeedPods bool `yaml:"seed_pods" mapstructure:"seed_pods"`

	Server server.Config `yaml:",inline" mapstructure:",squash"`
}

// ApplyDefaults fills in the seeded cluster and the listen port.
func (c *Config) ApplyDefaults() {
	if c.Cluster == "" {
		c.Cluster = "k8-pico"
	}
	if c.Nodes == 0 {
		c.Nodes = 3
	}
	if c.NodePort == 0 {
		c.NodePort = 5001
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	c.Server.ApplyDefaults()
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Nodes < 0 {
		return fmt.Errorf("sandbox.nodes must be non-negative (got: %d)", c.Nodes)
	}
	if c.NodePort < 1 || c.NodePort > 65535 {
		return fmt.Errorf("sandbox.node_port must be between 1 and 65535 (got: %d)", c.NodePort)
	}
	return c.Server.Validate()
}

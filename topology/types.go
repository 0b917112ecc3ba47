package topology

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Pod states reported by the pico backend.
const (
	StateRunning      = "RUNNING"
	StateStopped      = "STOPPED"
	StateRestarting   = "RESTARTING"
	StateNameConflict = "NAME_CONFLICT"
	StatePortConflict = "PORT_CONFLICT"
	StateUnknown      = "UNKNOWN"
)

// DefaultCluster groups nodes that report no cluster.
const DefaultCluster = "default"

// Node is a machine in a pico cluster and the pods it runs, in backend order.
type Node struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Port    Port   `json:"port,omitempty"`
	Cluster string `json:"cluster"`
	Pods    []Pod  `json:"pods"`
}

// Endpoint returns address:port, or just the address when no port is known.
func (n Node) Endpoint() string {
	if n.Port == "" {
		return n.Address
	}
	return n.Address + ":" + string(n.Port)
}

// Pod is a container running on a node.
// Ports hold "public:internal" pairs and Env holds KEY=value entries.
type Pod struct {
	ID    string   `json:"id,omitempty"`
	Name  string   `json:"name"`
	Image string   `json:"image"`
	State string   `json:"state"`
	Ports []string `json:"ports,omitempty"`
	Env   []string `json:"env,omitempty"`
}

// PodSpec is the body of a create request.
type PodSpec struct {
	Name  string   `json:"name" validate:"required,podname"`
	Image string   `json:"image" validate:"required"`
	Ports []string `json:"ports,omitempty" validate:"omitempty,dive,portmap"`
	Env   []string `json:"env,omitempty" validate:"omitempty,dive,envvar"`
}

// Action is the body of start, stop and restart requests.
type Action struct {
	Action string `json:"action"`
}

// Port is a node port. Backends send it either as a JSON string or a JSON
// number; it is kept as its base-10 string form and always encoded as a
// string.
type Port string

// UnmarshalJSON accepts a string, a number or null.
func (p *Port) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Port(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("topology: port must be a string or number, got %s", data)
	}
	if i, err := n.Int64(); err == nil {
		*p = Port(strconv.FormatInt(i, 10))
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("topology: invalid port %s: %w", data, err)
	}
	*p = Port(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// MarshalJSON encodes the port as a JSON string.
func (p Port) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

// Int returns the numeric port, or false when the port is empty or not an integer.
func (p Port) Int() (int, bool) {
	n, err := strconv.Atoi(string(p))
	return n, err == nil
}

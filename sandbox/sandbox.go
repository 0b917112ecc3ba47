package sandbox

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/kbukum/picoview/component"
	"github.com/kbukum/picoview/logger"
	"github.com/kbukum/picoview/server"
	"github.com/kbukum/picoview/server/endpoint"
	"github.com/kbukum/picoview/topology"
)

// demoPods are the workloads shipped with the pico cluster images.
var demoPods = []topology.PodSpec{
	{Name: "hostinfo", Image: "picocluster/hostinfo:latest", Ports: []string{"8080:5000"}},
	{Name: "post-hostinfo", Image: "picocluster/post-hostinfo:latest", Ports: []string{"8081:5000"}, Env: []string{"TARGET=hostinfo"}},
	{Name: "prime-numbers", Image: "picocluster/prime-numbers:latest", Env: []string{"LIMIT=100000"}},
}

// Sandbox is an in-memory pico backend served over HTTP.
type Sandbox struct {
	store  *Store
	server *server.Server
}

// New seeds a store from cfg and mounts the API on a new server.
// The registry, when given, feeds /health and /ready.
func New(cfg Config, log *logger.Logger, registry *component.Registry) (*Sandbox, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent("sandbox")

	store, err := Seed(cfg)
	if err != nil {
		return nil, err
	}

	srv := server.New(cfg.Server, log)
	var checker endpoint.HealthChecker
	if registry != nil {
		checker = registry.HealthAll
	}
	srv.ApplyDefaults("picoview-sandbox", checker)
	RegisterRoutes(srv.Engine(), store, log)

	return &Sandbox{store: store, server: srv}, nil
}

// Seed builds a store with cfg.Nodes nodes and, when asked, the demo pods.
func Seed(cfg Config) (*Store, error) {
	store := NewStore(cfg.Cluster)
	for i := 1; i <= cfg.Nodes; i++ {
		err := store.AddNode(topology.Node{
			Name:    fmt.Sprintf("pico-%d", i),
			Address: fmt.Sprintf("10.0.0.%d", 10+i),
			Port:    topology.Port(strconv.Itoa(cfg.NodePort)),
			Cluster: cfg.Cluster,
		})
		if err != nil {
			return nil, err
		}
	}
	if cfg.SeedPods && cfg.Nodes > 0 {
		for _, spec := range demoPods {
			if _, err := store.CreatePod(spec); err != nil {
				return nil, fmt.Errorf("seeding %s: %w", spec.Name, err)
			}
		}
	}
	return store, nil
}

// Store returns the backing store.
func (s *Sandbox) Store() *Store { return s.store }

// Server returns the HTTP server.
func (s *Sandbox) Server() *server.Server { return s.server }

// Handler returns the full HTTP handler, for in-process use.
func (s *Sandbox) Handler() http.Handler { return s.server.Handler() }

// Component returns the server as a registry component.
func (s *Sandbox) Component() component.Component { return server.NewComponent(s.server) }

package sandbox

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/kbukum/picoview/errors"
	"github.com/kbukum/picoview/topology"
)

// maxLogLines bounds the log buffer kept per pod.
const maxLogLines = 200

type pod struct {
	topology.Pod
	node string
	logs []string
}

// Store is an in-memory pico cluster. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	cluster string
	nodes   []topology.Node
	pods    map[string]*pod
	order   []string
	now     func() time.Time
}

// NewStore creates an empty store for the named cluster.
func NewStore(cluster string) *Store {
	return &Store{
		cluster: cluster,
		pods:    make(map[string]*pod),
		now:     time.Now,
	}
}

// AddNode registers a node. Its Pods field is ignored; pods are placed
// through CreatePod.
func (s *Store) AddNode(n topology.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.nodes {
		if existing.Name == n.Name {
			return apperrors.AlreadyExists("node", n.Name)
		}
	}
	if n.Cluster == "" {
		n.Cluster = s.cluster
	}
	n.Pods = nil
	s.nodes = append(s.nodes, n)
	return nil
}

// Nodes returns every node with its pods, in registration order.
func (s *Store) Nodes() []topology.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]topology.Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, s.nodeView(n))
	}
	return out
}

// Node returns one node by name.
func (s *Store) Node(name string) (topology.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.nodes {
		if n.Name == name {
			return s.nodeView(n), nil
		}
	}
	return topology.Node{}, apperrors.NotFound("node", name)
}

// Pods returns every pod in creation order.
func (s *Store) Pods() []topology.Pod {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]topology.Pod, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.pods[name].snapshot())
	}
	return out
}

// Pod returns one pod by name.
func (s *Store) Pod(name string) (topology.Pod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pods[name]
	if !ok {
		return topology.Pod{}, apperrors.NotFound("pod", name)
	}
	return p.snapshot(), nil
}

// CreatePod places a running pod on the least loaded node whose public
// ports are free. Names are unique across the cluster.
func (s *Store) CreatePod(spec topology.PodSpec) (topology.Pod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pods[spec.Name]; exists {
		return topology.Pod{}, apperrors.AlreadyExists("pod", spec.Name).
			WithDetail("state", topology.StateNameConflict)
	}
	if len(s.nodes) == 0 {
		return topology.Pod{}, apperrors.NotFound("node", "")
	}

	node, ok := s.placement(spec.Ports)
	if !ok {
		return topology.Pod{}, apperrors.InvalidInput("ports", "public ports are in use on every node").
			WithDetail("state", topology.StatePortConflict)
	}

	p := &pod{
		Pod: topology.Pod{
			ID:    uuid.NewString(),
			Name:  spec.Name,
			Image: spec.Image,
			State: topology.StateRunning,
			Ports: slices.Clone(spec.Ports),
			Env:   slices.Clone(spec.Env),
		},
		node: node,
	}
	s.appendLog(p, "pulled image %s", spec.Image)
	s.appendLog(p, "container started on %s", node)

	s.pods[spec.Name] = p
	s.order = append(s.order, spec.Name)
	return p.snapshot(), nil
}

// DeletePod removes a pod and returns its last state.
func (s *Store) DeletePod(name string) (topology.Pod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pods[name]
	if !ok {
		return topology.Pod{}, apperrors.NotFound("pod", name)
	}
	delete(s.pods, name)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
	return p.snapshot(), nil
}

// StartPod moves a pod to RUNNING.
func (s *Store) StartPod(name string) (topology.Pod, error) {
	return s.transition(name, func(p *pod) {
		if p.State == topology.StateRunning {
			s.appendLog(p, "start requested, already running")
			return
		}
		p.State = topology.StateRunning
		s.appendLog(p, "container started")
	})
}

// StopPod moves a pod to STOPPED.
func (s *Store) StopPod(name string) (topology.Pod, error) {
	return s.transition(name, func(p *pod) {
		if p.State == topology.StateStopped {
			s.appendLog(p, "stop requested, already stopped")
			return
		}
		p.State = topology.StateStopped
		s.appendLog(p, "container stopped")
	})
}

// RestartPod passes a pod through RESTARTING back to RUNNING.
func (s *Store) RestartPod(name string) (topology.Pod, error) {
	return s.transition(name, func(p *pod) {
		p.State = topology.StateRestarting
		s.appendLog(p, "container restarting")
		p.State = topology.StateRunning
		s.appendLog(p, "container started")
	})
}

// Logs returns a copy of the pod's log lines, oldest first.
func (s *Store) Logs(name string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pods[name]
	if !ok {
		return nil, apperrors.NotFound("pod", name)
	}
	return slices.Clone(p.logs), nil
}

func (s *Store) transition(name string, apply func(*pod)) (topology.Pod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pods[name]
	if !ok {
		return topology.Pod{}, apperrors.NotFound("pod", name)
	}
	apply(p)
	return p.snapshot(), nil
}

// placement picks the node with the fewest pods among those where none of
// the requested public ports is taken. Ties go to the earlier node.
func (s *Store) placement(ports []string) (string, bool) {
	load := make(map[string]int, len(s.nodes))
	used := make(map[string]map[string]bool, len(s.nodes))
	for _, p := range s.pods {
		load[p.node]++
		if used[p.node] == nil {
			used[p.node] = make(map[string]bool)
		}
		for _, mapping := range p.Ports {
			used[p.node][publicPort(mapping)] = true
		}
	}

	best, found := "", false
	for _, n := range s.nodes {
		if slices.ContainsFunc(ports, func(m string) bool { return used[n.Name][publicPort(m)] }) {
			continue
		}
		if !found || load[n.Name] < load[best] {
			best, found = n.Name, true
		}
	}
	return best, found
}

func (s *Store) nodeView(n topology.Node) topology.Node {
	n.Pods = []topology.Pod{}
	for _, name := range s.order {
		if p := s.pods[name]; p.node == n.Name {
			n.Pods = append(n.Pods, p.snapshot())
		}
	}
	return n
}

func (s *Store) appendLog(p *pod, format string, args ...any) {
	line := s.now().UTC().Format(time.RFC3339) + " " + fmt.Sprintf(format, args...)
	p.logs = append(p.logs, line)
	if over := len(p.logs) - maxLogLines; over > 0 {
		p.logs = slices.Delete(p.logs, 0, over)
	}
}

func (p *pod) snapshot() topology.Pod {
	out := p.Pod
	out.Ports = slices.Clone(p.Ports)
	out.Env = slices.Clone(p.Env)
	return out
}

func publicPort(mapping string) string {
	public, _, _ := strings.Cut(mapping, ":")
	return public
}

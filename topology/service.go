package topology

import (
	"context"
	"net/url"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/picoview/httpclient/rest"
	"github.com/kbukum/picoview/logger"
	"github.com/kbukum/picoview/observability"
	"github.com/kbukum/picoview/validation"
)

// Backend endpoints, relative to the client's /api/ prefix.
const (
	nodesEndpoint      = "nodes"
	containersEndpoint = "containers"
)

const loggerName = "topology"

// Service exposes the pico backend routes as typed calls over a rest.Client.
type Service struct {
	client  *rest.Client
	log     *logger.Logger
	metrics *observability.Metrics
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the service logger.
func WithServiceLogger(l *logger.Logger) ServiceOption {
	return func(s *Service) { s.log = l }
}

// WithServiceMetrics records operation metrics on m.
func WithServiceMetrics(m *observability.Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a Service. The client may still be uninitialized;
// calls fail with rest.ErrNotInitialized until it is.
func NewService(client *rest.Client, opts ...ServiceOption) *Service {
	s := &Service{client: client}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get(loggerName)
	} else {
		s.log = s.log.WithComponent(loggerName)
	}
	return s
}

// ListNodes returns every node the backend knows about.
func (s *Service) ListNodes(ctx context.Context) (nodes []Node, err error) {
	ctx, op := observability.StartOperation(ctx, "ListNodes", s.metrics)
	defer func() { s.end(ctx, op, err) }()

	return rest.Fetch[[]Node](ctx, s.client, nodesEndpoint)
}

// GetNode returns one node by name.
func (s *Service) GetNode(ctx context.Context, name string) (node Node, err error) {
	ctx, op := observability.StartOperation(ctx, "GetNode", s.metrics, attribute.String(logger.FieldNode, name))
	defer func() { s.end(ctx, op, err) }()

	if err = validation.Name("node", name); err != nil {
		return Node{}, err
	}
	return rest.Fetch[Node](ctx, s.client, path(nodesEndpoint, name))
}

// ListPods returns every pod across the cluster.
func (s *Service) ListPods(ctx context.Context) (pods []Pod, err error) {
	ctx, op := observability.StartOperation(ctx, "ListPods", s.metrics)
	defer func() { s.end(ctx, op, err) }()

	return rest.Fetch[[]Pod](ctx, s.client, containersEndpoint)
}

// GetPod returns one pod by name.
func (s *Service) GetPod(ctx context.Context, name string) (pod Pod, err error) {
	ctx, op := observability.StartOperation(ctx, "GetPod", s.metrics, attribute.String(logger.FieldPod, name))
	defer func() { s.end(ctx, op, err) }()

	if err = validation.Name("pod", name); err != nil {
		return Pod{}, err
	}
	return rest.Fetch[Pod](ctx, s.client, path(containersEndpoint, name))
}

// CreatePod validates spec and asks the backend to create the pod.
func (s *Service) CreatePod(ctx context.Context, spec PodSpec) (pod Pod, err error) {
	ctx, op := observability.StartOperation(ctx, "CreatePod", s.metrics, attribute.String(logger.FieldPod, spec.Name))
	defer func() { s.end(ctx, op, err) }()

	if err = validation.Validate(spec); err != nil {
		return Pod{}, err
	}
	return rest.Create[Pod](ctx, s.client, containersEndpoint, spec)
}

// DeletePod removes a pod and returns it as it was before removal.
func (s *Service) DeletePod(ctx context.Context, name string) (pod Pod, err error) {
	ctx, op := observability.StartOperation(ctx, "DeletePod", s.metrics, attribute.String(logger.FieldPod, name))
	defer func() { s.end(ctx, op, err) }()

	if err = validation.Name("pod", name); err != nil {
		return Pod{}, err
	}
	return rest.Remove[Pod](ctx, s.client, path(containersEndpoint, name))
}

// StartPod starts a stopped pod.
func (s *Service) StartPod(ctx context.Context, name string) (Pod, error) {
	return s.podAction(ctx, "StartPod", name, "start")
}

// StopPod stops a running pod.
func (s *Service) StopPod(ctx context.Context, name string) (Pod, error) {
	return s.podAction(ctx, "StopPod", name, "stop")
}

// RestartPod restarts a pod.
func (s *Service) RestartPod(ctx context.Context, name string) (Pod, error) {
	return s.podAction(ctx, "RestartPod", name, "restart")
}

// PodLogs returns the pod's log lines, oldest first.
func (s *Service) PodLogs(ctx context.Context, name string) (lines []string, err error) {
	ctx, op := observability.StartOperation(ctx, "PodLogs", s.metrics, attribute.String(logger.FieldPod, name))
	defer func() { s.end(ctx, op, err) }()

	if err = validation.Name("pod", name); err != nil {
		return nil, err
	}
	return rest.Fetch[[]string](ctx, s.client, path(containersEndpoint, name, "logs"))
}

// Topology lists the nodes and groups them by cluster.
func (s *Service) Topology(ctx context.Context) ([]Cluster, error) {
	nodes, err := s.ListNodes(ctx)
	if err != nil {
		return nil, err
	}
	return Clusters(nodes), nil
}

func (s *Service) podAction(ctx context.Context, opName, name, action string) (pod Pod, err error) {
	ctx, op := observability.StartOperation(ctx, opName, s.metrics, attribute.String(logger.FieldPod, name))
	defer func() { s.end(ctx, op, err) }()

	if err = validation.Name("pod", name); err != nil {
		return Pod{}, err
	}
	return rest.Replace[Pod](ctx, s.client, path(containersEndpoint, name, action), Action{Action: action})
}

func (s *Service) end(ctx context.Context, op *observability.Operation, err error) {
	op.End(ctx, err)
	log := s.log.WithContext(ctx)
	if err != nil {
		fields := logger.ErrorFields(op.Name, err)
		fields[logger.FieldDuration] = op.Duration().Milliseconds()
		log.Debug("topology operation failed", fields)
		return
	}
	log.Debug("topology operation done", logger.DurationFields(op.Name, op.Duration()))
}

// path joins escaped segments onto a collection endpoint.
func path(collection string, segments ...string) string {
	p := collection
	for _, seg := range segments {
		p += "/" + url.PathEscape(seg)
	}
	return p
}

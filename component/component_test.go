package component

import (
	"context"
	"fmt"
	"testing"
	"time"
)

type fakeComponent struct {
	name     string
	startErr error
	stopErr  error
	health   Health
	events   *[]string
	stopCtx  context.Context
}

func (f *fakeComponent) Name() string { return f.name }

func (f *fakeComponent) Start(ctx context.Context) error {
	if f.events != nil {
		*f.events = append(*f.events, "start:"+f.name)
	}
	return f.startErr
}

func (f *fakeComponent) Stop(ctx context.Context) error {
	f.stopCtx = ctx
	if f.events != nil {
		*f.events = append(*f.events, "stop:"+f.name)
	}
	return f.stopErr
}

func (f *fakeComponent) Health(ctx context.Context) Health { return f.health }

type describedComponent struct {
	fakeComponent
	desc Description
}

func (d *describedComponent) Describe() Description { return d.desc }

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeComponent{name: "rest-client"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&fakeComponent{name: "rest-client"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestGet(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&fakeComponent{name: "rest-client"})

	if got := r.Get("rest-client"); got == nil || got.Name() != "rest-client" {
		t.Errorf("expected rest-client, got %v", got)
	}
	if got := r.Get("missing"); got != nil {
		t.Error("expected nil for unregistered component")
	}
}

func TestLifecycleOrder(t *testing.T) {
	r := NewRegistry()
	var events []string
	for _, name := range []string{"sandbox-server", "rest-client", "watcher"} {
		_ = r.Register(&fakeComponent{name: name, events: &events})
	}

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	want := []string{
		"start:sandbox-server", "start:rest-client", "start:watcher",
		"stop:watcher", "stop:rest-client", "stop:sandbox-server",
	}
	if fmt.Sprint(events) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, events)
	}
}

func TestStartAllErrorStopsStartedOnly(t *testing.T) {
	r := NewRegistry()
	var events []string
	_ = r.Register(&fakeComponent{name: "first", events: &events})
	_ = r.Register(&fakeComponent{name: "broken", events: &events, startErr: fmt.Errorf("bad address")})
	_ = r.Register(&fakeComponent{name: "never", events: &events})

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected error from StartAll")
	}
	_ = r.StopAll(context.Background())

	want := []string{"start:first", "start:broken", "stop:first"}
	if fmt.Sprint(events) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, events)
	}
}

func TestStopAllCollectsErrors(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&fakeComponent{name: "a", stopErr: fmt.Errorf("stop failed")})
	_ = r.Register(&fakeComponent{name: "b", stopErr: fmt.Errorf("stop failed")})
	_ = r.StartAll(context.Background())

	if err := r.StopAll(context.Background()); err == nil {
		t.Error("expected error from StopAll")
	}
}

func TestStopTimeoutApplied(t *testing.T) {
	r := NewRegistry()
	r.SetStopTimeout(50 * time.Millisecond)
	c := &fakeComponent{name: "slow"}
	_ = r.Register(c)
	_ = r.StartAll(context.Background())
	_ = r.StopAll(context.Background())

	deadline, ok := c.stopCtx.Deadline()
	if !ok {
		t.Fatal("expected stop context to carry a deadline")
	}
	if time.Until(deadline) > 50*time.Millisecond {
		t.Errorf("expected deadline within 50ms, got %v", time.Until(deadline))
	}
}

func TestHealthAll(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&fakeComponent{name: "rest-client", health: Health{Name: "rest-client", Status: StatusHealthy}})
	_ = r.Register(&fakeComponent{name: "sandbox", health: Health{Name: "sandbox", Status: StatusUnhealthy, Message: "not listening"}})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusHealthy {
		t.Errorf("expected healthy, got %s", results[0].Status)
	}
	if results[1].Message != "not listening" {
		t.Errorf("expected message 'not listening', got %q", results[1].Message)
	}
}

func TestDescribe(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&fakeComponent{name: "plain"})
	_ = r.Register(&describedComponent{
		fakeComponent: fakeComponent{name: "rest-client"},
		desc:          Description{Type: "http-client", Details: "http://localhost:5000"},
	})

	descs := r.Describe()
	if len(descs) != 1 {
		t.Fatalf("expected 1 description, got %d", len(descs))
	}
	if descs[0].Name != "rest-client" {
		t.Errorf("expected name fallback 'rest-client', got %q", descs[0].Name)
	}
	if descs[0].Details != "http://localhost:5000" {
		t.Errorf("unexpected details %q", descs[0].Details)
	}
}

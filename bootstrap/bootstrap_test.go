package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/picoview/component"
	"github.com/kbukum/picoview/config"
	"github.com/kbukum/picoview/logger"
)

type testConfig struct {
	config.ServiceConfig
}

type fakeComponent struct {
	name     string
	startErr error
	stopErr  error
	health   component.Health
	started  bool
	stopped  bool
}

func (f *fakeComponent) Name() string { return f.name }
func (f *fakeComponent) Start(context.Context) error {
	f.started = true
	return f.startErr
}
func (f *fakeComponent) Stop(context.Context) error {
	f.stopped = true
	return f.stopErr
}
func (f *fakeComponent) Health(context.Context) component.Health { return f.health }

func healthy(name string) *fakeComponent {
	return &fakeComponent{name: name, health: component.Health{Name: name, Status: component.StatusHealthy}}
}

func newTestApp(t *testing.T, opts ...Option) *App[*testConfig] {
	t.Helper()
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "picoview", Version: "1.0.0"}}
	app, err := NewApp(cfg, append([]Option{WithLogger(logger.Nop())}, opts...)...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)

	if app.Name != "picoview" {
		t.Errorf("expected name 'picoview', got %q", app.Name)
	}
	if app.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got %q", app.Version)
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("expected defaults applied, got environment %q", app.Cfg.Environment)
	}
	if app.Components == nil {
		t.Error("expected non-nil components registry")
	}
	if app.gracefulTimeout != 15*time.Second {
		t.Errorf("expected default 15s, got %v", app.gracefulTimeout)
	}
}

func TestNewAppValidation(t *testing.T) {
	if _, err := NewApp(&testConfig{}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestNewAppOptions(t *testing.T) {
	l := logger.Nop()
	app := newTestApp(t, WithGracefulTimeout(3*time.Second), WithLogger(l))

	if app.gracefulTimeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", app.gracefulTimeout)
	}
	if app.Logger != l {
		t.Error("expected custom logger to be set")
	}
}

func TestRegisterComponentDuplicate(t *testing.T) {
	app := newTestApp(t)
	if err := app.RegisterComponent(healthy("rest-client")); err != nil {
		t.Fatalf("RegisterComponent failed: %v", err)
	}
	if err := app.RegisterComponent(healthy("rest-client")); err == nil {
		t.Error("expected error for duplicate component registration")
	}
}

func TestReadyCheck(t *testing.T) {
	app := newTestApp(t)
	if err := app.ReadyCheck(context.Background()); err != nil {
		t.Errorf("expected no error for empty registry, got %v", err)
	}

	_ = app.RegisterComponent(healthy("rest-client"))
	_ = app.RegisterComponent(&fakeComponent{
		name:   "http-server",
		health: component.Health{Name: "http-server", Status: component.StatusUnhealthy, Message: "not listening"},
	})

	err := app.ReadyCheck(context.Background())
	if err == nil {
		t.Fatal("expected error for unhealthy component")
	}
	if !strings.Contains(err.Error(), "http-server=unhealthy(not listening)") {
		t.Errorf("unexpected ready check error %q", err)
	}
}

func TestRunTaskLifecycleOrder(t *testing.T) {
	app := newTestApp(t)
	comp := healthy("rest-client")
	_ = app.RegisterComponent(comp)

	var order []string
	app.OnStart(func(context.Context) error { order = append(order, "start"); return nil })
	app.OnConfigure(func(_ context.Context, a *App[*testConfig]) error {
		if a.Cfg.Name != "picoview" {
			t.Errorf("expected typed config in configure callback, got %q", a.Cfg.Name)
		}
		order = append(order, "configure")
		return nil
	})
	app.OnReady(func(context.Context) error { order = append(order, "ready"); return nil })
	app.OnStop(func(context.Context) error { order = append(order, "stop"); return nil })

	err := app.RunTask(context.Background(), func(context.Context) error {
		if !comp.started {
			t.Error("expected component to be started before the task")
		}
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	want := "start,configure,ready,task,stop"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if !comp.stopped {
		t.Error("expected component to be stopped after task")
	}
}

func TestRunTaskErrorWinsOverStopError(t *testing.T) {
	app := newTestApp(t)
	_ = app.RegisterComponent(&fakeComponent{name: "rest-client", stopErr: fmt.Errorf("close failed")})

	err := app.RunTask(context.Background(), func(context.Context) error {
		return fmt.Errorf("node not found")
	})
	if err == nil || err.Error() != "node not found" {
		t.Errorf("expected task error, got %v", err)
	}
}

func TestRunTaskStopError(t *testing.T) {
	app := newTestApp(t)
	_ = app.RegisterComponent(&fakeComponent{name: "rest-client", stopErr: fmt.Errorf("close failed")})

	if err := app.RunTask(context.Background(), func(context.Context) error { return nil }); err == nil {
		t.Error("expected stop error")
	}
}

func TestRunTaskCancellation(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := app.RunTask(ctx, func(taskCtx context.Context) error {
		cancel()
		<-taskCtx.Done()
		return taskCtx.Err()
	})
	if err == nil {
		t.Error("expected error from canceled task")
	}
}

func TestRunTaskStartupFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(app *App[*testConfig])
	}{
		{"component", func(app *App[*testConfig]) {
			_ = app.RegisterComponent(&fakeComponent{name: "rest-client", startErr: fmt.Errorf("invalid base address")})
		}},
		{"start hook", func(app *App[*testConfig]) {
			app.OnStart(func(context.Context) error { return fmt.Errorf("boom") })
		}},
		{"configure", func(app *App[*testConfig]) {
			app.OnConfigure(func(context.Context, *App[*testConfig]) error { return fmt.Errorf("boom") })
		}},
		{"ready hook", func(app *App[*testConfig]) {
			app.OnReady(func(context.Context) error { return fmt.Errorf("boom") })
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			first := healthy("first")
			_ = app.RegisterComponent(first)
			tt.setup(app)

			ran := false
			err := app.RunTask(context.Background(), func(context.Context) error { ran = true; return nil })
			if err == nil {
				t.Fatal("expected startup error")
			}
			if ran {
				t.Error("task must not run after a startup failure")
			}
			if !first.stopped {
				t.Error("expected started components to be stopped after a startup failure")
			}
		})
	}
}

func TestHooksStopAtFirstError(t *testing.T) {
	secondCalled := false
	err := runHooks(context.Background(), []Hook{
		func(context.Context) error { return fmt.Errorf("fail") },
		func(context.Context) error { secondCalled = true; return nil },
	})
	if err == nil {
		t.Error("expected error from failing hook")
	}
	if secondCalled {
		t.Error("expected second hook not to be called after first fails")
	}
}

func TestRunReturnsOnContextCancel(t *testing.T) {
	app := newTestApp(t)
	comp := healthy("http-server")
	_ = app.RegisterComponent(comp)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !comp.stopped {
		t.Error("expected component to be stopped")
	}
}

func TestWaitForSignalContextCancellation(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if sig := app.WaitForSignal(ctx); sig != nil {
		t.Errorf("expected nil signal for context cancellation, got %v", sig)
	}
}

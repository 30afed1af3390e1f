package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/identity-backend/component"
	"github.com/kbukum/identity-backend/config"
	"github.com/kbukum/identity-backend/logger"
)

type testConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
}

type recorder struct {
	events []string
}

func (r *recorder) add(e string) { r.events = append(r.events, e) }

type fakeComponent struct {
	name     string
	rec      *recorder
	startErr error
	running  bool
	routes   []component.Route
}

func (f *fakeComponent) Name() string { return f.name }

func (f *fakeComponent) Start(context.Context) error {
	f.rec.add("start:" + f.name)
	if f.startErr != nil {
		return f.startErr
	}
	f.running = true
	return nil
}

func (f *fakeComponent) Stop(context.Context) error {
	f.rec.add("stop:" + f.name)
	f.running = false
	return nil
}

func (f *fakeComponent) Health(context.Context) component.Health {
	if f.running {
		return component.Health{Name: f.name, Status: component.StatusHealthy}
	}
	return component.Health{Name: f.name, Status: component.StatusUnhealthy, Message: "stopped"}
}

func (f *fakeComponent) Describe() component.Description {
	return component.Description{Name: f.name, Type: "server", Details: "127.0.0.1:0"}
}

func (f *fakeComponent) Routes() []component.Route { return f.routes }

func newTestApp(t *testing.T, w io.Writer) *App[*testConfig] {
	t.Helper()
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "identity-api", Version: "1.2.3"}}
	app, err := NewApp(cfg,
		WithLogger(logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, w, "test")),
		WithGracefulTimeout(time.Second),
	)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t, io.Discard)
	if app.Name != "identity-api" || app.Version != "1.2.3" {
		t.Errorf("unexpected name/version %q %q", app.Name, app.Version)
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("expected defaults to be applied, got environment %q", app.Cfg.Environment)
	}
	if app.gracefulTimeout != time.Second {
		t.Errorf("expected graceful timeout option to apply, got %s", app.gracefulTimeout)
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	_, err := NewApp(&testConfig{}, WithLogger(logger.NewWithWriter(&logger.Config{Level: "error"}, io.Discard, "test")))
	if err == nil || !strings.Contains(err.Error(), "config validation") {
		t.Fatalf("expected config validation error, got %v", err)
	}
}

func TestRun_Lifecycle(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(t, &buf)
	rec := &recorder{}

	_ = app.RegisterComponent(&fakeComponent{name: "telemetry", rec: rec})
	_ = app.RegisterComponent(&fakeComponent{name: "http-server", rec: rec, routes: []component.Route{
		{Method: "GET", Path: "/health", Handler: "health"},
		{Method: "POST", Path: "/auth/login", Handler: "login"},
	}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.OnStart(func(context.Context) error { rec.add("hook:start"); return nil })
	app.OnReady(func(context.Context) error {
		rec.add("hook:ready")
		cancel()
		return nil
	})
	app.OnStop(func(context.Context) error { rec.add("hook:stop"); return nil })
	app.Summary.Set("provider", "fake")

	if err := app.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{
		"start:telemetry", "start:http-server",
		"hook:start", "hook:ready", "hook:stop",
		"stop:http-server", "stop:telemetry",
	}
	if strings.Join(rec.events, ",") != strings.Join(want, ",") {
		t.Errorf("expected events %v, got %v", want, rec.events)
	}

	out := buf.String()
	for _, s := range []string{`"message":"service started"`, `"provider":"fake"`, `"path":"/auth/login"`, `"handler":"login"`, `"type":"server"`} {
		if !strings.Contains(out, s) {
			t.Errorf("expected summary output to contain %s", s)
		}
	}
}

func TestRun_StartFailureStopsStarted(t *testing.T) {
	app := newTestApp(t, io.Discard)
	rec := &recorder{}
	_ = app.RegisterComponent(&fakeComponent{name: "first", rec: rec})
	_ = app.RegisterComponent(&fakeComponent{name: "second", rec: rec, startErr: errors.New("port in use")})

	err := app.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "port in use") {
		t.Fatalf("expected start error, got %v", err)
	}
	if strings.Join(rec.events, ",") != "start:first,start:second,stop:first" {
		t.Errorf("unexpected events %v", rec.events)
	}
}

func TestRun_HookFailure(t *testing.T) {
	app := newTestApp(t, io.Discard)
	app.OnStart(func(context.Context) error { return errors.New("boom") })

	err := app.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "onStart hook failed") {
		t.Fatalf("expected hook error, got %v", err)
	}
}

func TestReadyCheck(t *testing.T) {
	app := newTestApp(t, io.Discard)
	rec := &recorder{}
	c := &fakeComponent{name: "http-server", rec: rec}
	_ = app.RegisterComponent(c)

	err := app.ReadyCheck(context.Background())
	if err == nil || !strings.Contains(err.Error(), "http-server=unhealthy(stopped)") {
		t.Errorf("expected unhealthy report, got %v", err)
	}

	c.running = true
	if err := app.ReadyCheck(context.Background()); err != nil {
		t.Errorf("expected ready, got %v", err)
	}
}

func TestRegisterComponent_Duplicate(t *testing.T) {
	app := newTestApp(t, io.Discard)
	rec := &recorder{}
	if err := app.RegisterComponent(&fakeComponent{name: "x", rec: rec}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := app.RegisterComponent(&fakeComponent{name: "x", rec: rec}); err == nil {
		t.Error("expected duplicate registration error")
	}
}

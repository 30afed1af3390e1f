package component

import (
	"context"
	"fmt"
	"testing"
)

// mockComponent implements Component for testing.
type mockComponent struct {
	name       string
	startErr   error
	stopErr    error
	health     Health
	startOrder *[]string
	stopOrder  *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.startOrder != nil {
		*m.startOrder = append(*m.startOrder, m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.stopOrder != nil {
		*m.stopOrder = append(*m.stopOrder, m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health {
	return m.health
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("expected non-nil registry")
	}
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	c := &mockComponent{name: "tracer", health: Health{Name: "tracer", Status: StatusHealthy}}

	if err := r.Register(c); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	c := &mockComponent{name: "tracer"}
	r.Register(c)

	err := r.Register(&mockComponent{name: "tracer"})
	if err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestGet(t *testing.T) {
	r := NewRegistry()
	c := &mockComponent{name: "tracer"}
	r.Register(c)

	got := r.Get("tracer")
	if got == nil {
		t.Fatal("expected to get registered component")
	}
	if got.Name() != "tracer" {
		t.Errorf("expected 'tracer', got %q", got.Name())
	}
}

func TestGetNotFound(t *testing.T) {
	r := NewRegistry()
	got := r.Get("missing")
	if got != nil {
		t.Error("expected nil for unregistered component")
	}
}

func TestStartAll(t *testing.T) {
	r := NewRegistry()
	order := []string{}

	r.Register(&mockComponent{
		name: "tracer", startOrder: &order,
		health: Health{Name: "tracer", Status: StatusHealthy},
	})
	r.Register(&mockComponent{
		name: "meter", startOrder: &order,
		health: Health{Name: "meter", Status: StatusHealthy},
	})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}

	if len(order) != 2 {
		t.Fatalf("expected 2 starts, got %d", len(order))
	}
	if order[0] != "tracer" || order[1] != "meter" {
		t.Errorf("expected start order [tracer, meter], got %v", order)
	}
}

func TestStartAllError(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockComponent{name: "tracer", startErr: fmt.Errorf("connection refused")})

	err := r.StartAll(context.Background())
	if err == nil {
		t.Error("expected error from StartAll")
	}
}

func TestStopAllReverseOrder(t *testing.T) {
	r := NewRegistry()
	order := []string{}

	r.Register(&mockComponent{name: "tracer", stopOrder: &order, health: Health{Name: "tracer", Status: StatusHealthy}})
	r.Register(&mockComponent{name: "meter", stopOrder: &order, health: Health{Name: "meter", Status: StatusHealthy}})
	r.Register(&mockComponent{name: "http-server", stopOrder: &order, health: Health{Name: "http-server", Status: StatusHealthy}})

	r.StartAll(context.Background())
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	if len(order) != 3 {
		t.Fatalf("expected 3 stops, got %d", len(order))
	}
	if order[0] != "http-server" || order[1] != "meter" || order[2] != "tracer" {
		t.Errorf("expected reverse stop order [http-server, meter, tracer], got %v", order)
	}
}

func TestStopAllSkipsUnstarted(t *testing.T) {
	r := NewRegistry()
	order := []string{}
	r.Register(&mockComponent{name: "tracer", stopOrder: &order})

	// Don't start, then stop
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected 0 stops for unstarted components, got %d", len(order))
	}
}

func TestStopAllWithErrors(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockComponent{
		name: "tracer", stopErr: fmt.Errorf("stop failed"),
		health: Health{Name: "tracer", Status: StatusHealthy},
	})
	r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if err == nil {
		t.Error("expected error from StopAll")
	}
}

func TestHealthAll(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockComponent{
		name:   "tracer",
		health: Health{Name: "tracer", Status: StatusHealthy, Message: "connected"},
	})
	r.Register(&mockComponent{
		name:   "meter",
		health: Health{Name: "meter", Status: StatusUnhealthy, Message: "timeout"},
	})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusHealthy {
		t.Errorf("expected tracer healthy, got %s", results[0].Status)
	}
	if results[1].Status != StatusUnhealthy {
		t.Errorf("expected meter unhealthy, got %s", results[1].Status)
	}
}

func TestHealthStatusConstants(t *testing.T) {
	if StatusHealthy != "healthy" {
		t.Errorf("expected 'healthy', got %q", StatusHealthy)
	}
	if StatusUnhealthy != "unhealthy" {
		t.Errorf("expected 'unhealthy', got %q", StatusUnhealthy)
	}
	if StatusDegraded != "degraded" {
		t.Errorf("expected 'degraded', got %q", StatusDegraded)
	}
}

func TestHealthy(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockComponent{name: "a", health: Health{Name: "a", Status: StatusHealthy}})
	if !r.Healthy(context.Background()) {
		t.Error("expected registry healthy")
	}
	r.Register(&mockComponent{name: "b", health: Health{Name: "b", Status: StatusDegraded}})
	if r.Healthy(context.Background()) {
		t.Error("expected registry unhealthy with a degraded component")
	}
}

func TestAll(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockComponent{name: "telemetry"})
	r.Register(&mockComponent{name: "http-server"})
	all := r.All()
	if len(all) != 2 || all[0].Name() != "telemetry" || all[1].Name() != "http-server" {
		t.Errorf("expected registration order, got %v", all)
	}
}

func TestFunc_Lifecycle(t *testing.T) {
	var started, stopped bool
	f := NewFunc("tracer", func(ctx context.Context) error {
		started = true
		return nil
	}, func(ctx context.Context) error {
		stopped = true
		return nil
	}).WithDescription(Description{Type: "telemetry", Details: "localhost:4318"})

	if f.Health(context.Background()).Status != StatusUnhealthy {
		t.Error("expected unhealthy before start")
	}

	r := NewRegistry()
	if err := r.Register(f); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if !started || f.Health(context.Background()).Status != StatusHealthy {
		t.Error("expected started and healthy")
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if !stopped {
		t.Error("expected stop to be called")
	}

	d := f.Describe()
	if d.Name != "tracer" || d.Type != "telemetry" || d.Details != "localhost:4318" {
		t.Errorf("unexpected description %+v", d)
	}
}

func TestFunc_NilFuncs(t *testing.T) {
	f := NewFunc("noop", nil, nil)
	if err := f.Start(context.Background()); err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	if err := f.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected stop error: %v", err)
	}
}

func TestFunc_StartError(t *testing.T) {
	f := NewFunc("broken", func(ctx context.Context) error { return fmt.Errorf("boom") }, nil)
	if err := f.Start(context.Background()); err == nil {
		t.Fatal("expected start error")
	}
	if f.Health(context.Background()).Status == StatusHealthy {
		t.Error("expected not healthy after failed start")
	}
}

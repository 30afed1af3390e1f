package component

import "context"

// Func adapts a pair of start and stop functions to Component. Either may
// be nil. It reports healthy while started.
type Func struct {
	name    string
	desc    Description
	start   func(ctx context.Context) error
	stop    func(ctx context.Context) error
	started bool
}

// NewFunc creates a function-backed component.
func NewFunc(name string, start, stop func(ctx context.Context) error) *Func {
	return &Func{name: name, start: start, stop: stop}
}

// WithDescription sets the startup summary description.
func (f *Func) WithDescription(d Description) *Func {
	f.desc = d
	return f
}

func (f *Func) Name() string { return f.name }

func (f *Func) Start(ctx context.Context) error {
	if f.start != nil {
		if err := f.start(ctx); err != nil {
			return err
		}
	}
	f.started = true
	return nil
}

func (f *Func) Stop(ctx context.Context) error {
	f.started = false
	if f.stop == nil {
		return nil
	}
	return f.stop(ctx)
}

func (f *Func) Health(_ context.Context) Health {
	if !f.started {
		return Health{Name: f.name, Status: StatusUnhealthy, Message: "not started"}
	}
	return Health{Name: f.name, Status: StatusHealthy}
}

// Describe implements Describable.
func (f *Func) Describe() Description {
	d := f.desc
	if d.Name == "" {
		d.Name = f.name
	}
	return d
}

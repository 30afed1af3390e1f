package bootstrap

import (
	"context"
	"time"

	"github.com/kbukum/identity-backend/component"
	"github.com/kbukum/identity-backend/logger"
)

// Summary collects what the application started with and logs it once
// startup is complete.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	extra           map[string]interface{}
}

// NewSummary creates a summary for the named service.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		extra:       make(map[string]interface{}),
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Set adds a key to the headline log entry, e.g. the selected provider.
func (s *Summary) Set(key string, value interface{}) {
	s.extra[key] = value
}

// Log writes the startup summary: one headline entry, then one entry per
// component with its description and live health, then one per route.
func (s *Summary) Log(ctx context.Context, registry *component.Registry, log *logger.Logger) {
	headline := logger.Fields(
		"name", s.serviceName,
		"version", s.version,
		"startup_ms", s.startupDuration.Milliseconds(),
	)
	for k, v := range s.extra {
		headline[k] = v
	}
	if registry == nil {
		log.Info("service started", headline)
		return
	}

	comps := registry.All()
	headline["components"] = len(comps)
	log.Info("service started", headline)

	for _, c := range comps {
		h := c.Health(ctx)
		fields := logger.Fields(
			logger.FieldComponent, c.Name(),
			logger.FieldStatus, string(h.Status),
		)
		if h.Message != "" {
			fields["message"] = h.Message
		}
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			fields["type"] = desc.Type
			if desc.Details != "" {
				fields["details"] = desc.Details
			}
		}
		log.Info("component", fields)
	}

	for _, c := range comps {
		rp, ok := c.(component.RouteProvider)
		if !ok {
			continue
		}
		for _, r := range rp.Routes() {
			log.Info("route", logger.Fields(
				"method", r.Method,
				"path", r.Path,
				"handler", r.Handler,
			))
		}
	}
}

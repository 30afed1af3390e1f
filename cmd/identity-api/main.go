// Command identity-api serves the identity HTTP API: login, the current
// user and health, backed by either the fake or the Supabase provider.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/identity-backend/auth"
	"github.com/kbukum/identity-backend/auth/fake"
	"github.com/kbukum/identity-backend/auth/supabase"
	"github.com/kbukum/identity-backend/bootstrap"
	"github.com/kbukum/identity-backend/component"
	"github.com/kbukum/identity-backend/config"
	"github.com/kbukum/identity-backend/logger"
	"github.com/kbukum/identity-backend/observability"
	"github.com/kbukum/identity-backend/server"
	"github.com/kbukum/identity-backend/server/endpoint"
	"github.com/kbukum/identity-backend/util"
)

func main() {
	opts, err := loaderOptions(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: parse flags: %v\n", serviceName, err)
		os.Exit(2)
	}
	if err := run(context.Background(), opts...); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

// loaderOptions turns the -config and -env flags into loader options. Unset
// flags leave the standard search locations in place.
func loaderOptions(fs *flag.FlagSet, args []string) ([]config.LoaderOption, error) {
	configFile := fs.String("config", "", "path to config.yml")
	envFile := fs.String("env", "", "path to a .env file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}
	return opts, nil
}

func run(ctx context.Context, opts ...config.LoaderOption) error {
	var cfg Config
	values, err := config.Load(serviceName, &cfg, opts...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}
	log := app.Logger

	var metrics *observability.Metrics
	if cfg.Observability.Tracing.Enabled {
		if err := app.RegisterComponent(tracingComponent(&cfg.Observability.Tracing)); err != nil {
			return err
		}
	}
	if cfg.Observability.Metrics.Enabled {
		if err := app.RegisterComponent(metricsComponent(&cfg.Observability.Metrics)); err != nil {
			return err
		}
		if metrics, err = observability.NewMetrics(observability.Meter(serviceName)); err != nil {
			return fmt.Errorf("create metrics: %w", err)
		}
	}

	supabaseSource := supabaseConfigSource(values)
	selector := auth.NewSelector(values,
		fake.New(),
		supabase.New(supabaseSource, supabase.WithTimeout(cfg.Auth.Supabase.Timeout)),
	)
	logProviderSelection(log, values, supabaseSource, selector)
	app.Summary.Set(logger.FieldProvider, string(selector.Select().ID()))

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware(metrics)
	endpoint.Register(srv.GinEngine(), auth.NewService(selector, metrics))
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return err
	}

	return app.Run(ctx)
}

// supabaseConfigSource resolves the Supabase settings from the flat
// environment names first and then from the auth.supabase section of the
// config file.
func supabaseConfigSource(values *config.Values) config.AliasSource {
	return config.AliasSource{
		Source: values,
		Aliases: map[string][]string{
			supabase.EnvURL:     {"AUTH_SUPABASE_URL"},
			supabase.EnvAnonKey: {"AUTH_SUPABASE_ANON_KEY"},
		},
	}
}

func logProviderSelection(log *logger.Logger, values, supabaseSource auth.ConfigSource, selector *auth.Selector) {
	fields := logger.Fields(logger.FieldProvider, string(selector.Select().ID()))

	if raw, ok := values.Lookup(auth.DefaultProviderKey); ok {
		v := strings.TrimSpace(raw)
		if !strings.EqualFold(v, string(auth.ProviderFake)) && !strings.EqualFold(v, string(auth.ProviderSupabase)) {
			log.Warn("unknown auth provider, using the external provider", logger.Fields("configured", v))
		}
	}
	if selector.Select().ID() == auth.ProviderSupabase {
		url, _ := supabaseSource.Lookup(supabase.EnvURL)
		fields["supabase_url"] = url
		if key, ok := supabaseSource.Lookup(supabase.EnvAnonKey); ok {
			fields["anon_key"] = util.MaskSecret(key, 6)
		} else {
			log.Warn("supabase anon key is not configured, requests will fail until it is set")
		}
	}
	log.Info("auth provider selected", fields)
}

func tracingComponent(cfg *observability.TracerConfig) component.Component {
	var tp *sdktrace.TracerProvider
	return component.NewFunc("tracing",
		func(ctx context.Context) error {
			var err error
			tp, err = observability.InitTracer(ctx, cfg)
			return err
		},
		func(ctx context.Context) error {
			if tp == nil {
				return nil
			}
			return tp.Shutdown(ctx)
		},
	).WithDescription(component.Description{Name: "Tracing", Type: "telemetry", Details: cfg.Endpoint})
}

func metricsComponent(cfg *observability.MeterConfig) component.Component {
	var mp *sdkmetric.MeterProvider
	return component.NewFunc("metrics",
		func(ctx context.Context) error {
			var err error
			mp, err = observability.InitMeter(ctx, cfg)
			return err
		},
		func(ctx context.Context) error {
			if mp == nil {
				return nil
			}
			return mp.Shutdown(ctx)
		},
	).WithDescription(component.Description{Name: "Metrics", Type: "telemetry", Details: cfg.Endpoint})
}

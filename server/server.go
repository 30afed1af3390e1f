package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/identity-backend/errors"
	"github.com/kbukum/identity-backend/logger"
	"github.com/kbukum/identity-backend/observability"
	"github.com/kbukum/identity-backend/server/middleware"
)

// Server is the HTTP server of the identity API, backed by Gin and served
// over HTTP/1.1 and h2c.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     Config
	log        *logger.Logger

	mu       sync.Mutex
	listener net.Listener
}

// New creates a new Server. Unknown routes answer with a NOT_FOUND envelope
// and known routes hit with another method answer 405 with the allowed
// methods in details.
func New(cfg Config, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	s := &Server{
		engine: engine,
		config: cfg,
		log:    log.WithComponent("server"),
	}
	engine.NoRoute(s.noRoute)
	engine.NoMethod(s.noMethod)

	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h2c.NewHandler(engine, h2s),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}
	return s
}

// GinEngine returns the underlying Gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// Handler returns the root handler, including h2c.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ApplyMiddleware installs the standard middleware stack: request id,
// panic recovery, tracing, request metrics (when metrics is non-nil), CORS,
// body size limit and request logging.
func (s *Server) ApplyMiddleware(metrics *observability.Metrics) {
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Recovery(s.log))
	s.engine.Use(middleware.Tracing())
	if metrics != nil {
		s.engine.Use(middleware.Metrics(metrics))
	}
	if len(s.config.CORS.AllowedOrigins) > 0 {
		s.engine.Use(middleware.CORS(&s.config.CORS))
	}
	if s.config.MaxBodySize != "" {
		s.engine.Use(middleware.BodySizeLimit(s.config.MaxBodySize))
	}
	s.engine.Use(middleware.RequestLogger(s.log))
}

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("starting http server", logger.Fields("addr", s.httpServer.Addr))

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.log.Info("http server started", logger.Fields("addr", listener.Addr().String()))
	return nil
}

// Stop gracefully shuts down the server within the configured deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("shutting down http server")

	timeout := time.Duration(s.config.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("server shutdown error", logger.Fields(logger.FieldError, err.Error()))
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("http server shut down")
	return nil
}

// Addr returns the bound address once started, else the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

func (s *Server) noRoute(c *gin.Context) {
	RespondWithError(c, errors.NotFound("route", c.Request.URL.Path))
}

func (s *Server) noMethod(c *gin.Context) {
	RespondWithError(c, errors.MethodNotAllowed(c.Request.Method, s.allowedMethods(c.Request.URL.Path)))
}

// allowedMethods lists the methods registered for path, GET first.
func (s *Server) allowedMethods(path string) []string {
	var allowed []string
	for _, r := range s.engine.Routes() {
		if r.Path == path {
			allowed = append(allowed, r.Method)
		}
	}
	sort.Slice(allowed, func(i, j int) bool {
		return methodOrder(allowed[i]) < methodOrder(allowed[j])
	})
	return allowed
}

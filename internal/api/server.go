package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwantia/taskfilter/pkg/db/store"
	"github.com/mwantia/taskfilter/pkg/filter"
	"github.com/mwantia/taskfilter/pkg/log"
)

// Config configures the HTTP API.
type Config struct {
	Address string
	// Mode is the gin mode: debug, release or test.
	Mode string

	Store   store.TodoStore
	Tenants TenantResolver
	Schema  filter.Schema
	Logger  log.LoggerService
}

// Server serves the todo list API.
type Server struct {
	cfg    Config
	engine *gin.Engine
	http   *http.Server
	log    log.LoggerService
}

func NewServer(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("todo store is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.Tenants == nil {
		cfg.Tenants = HeaderTenantResolver{}
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{
		cfg:    cfg,
		engine: gin.New(),
		log:    cfg.Logger,
	}
	s.routes()

	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() {
	s.engine.Use(recovery(s.log), requestLogger(s.log))

	s.engine.GET("/healthz", s.health)

	api := s.engine.Group("/api")
	api.GET("/todo", s.listTodos)
	api.GET("/todo/count", s.countTodos)
	api.GET("/todo/fields", s.fields)

	views := api.Group("/views")
	views.GET("", s.listViews)
	views.GET("/:name", s.getView)
	views.PUT("/:name", s.saveView)
	views.DELETE("/:name", s.deleteView)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve listens on the configured address until Shutdown is called.
func (s *Server) Serve() error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}
	s.log.Info("Listening on %s", ln.Addr())

	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Cleanup stops accepting requests and waits for in-flight ones.
func (s *Server) Cleanup(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	if err := s.cfg.Store.Health(c.Request.Context()); err != nil {
		s.log.Warn("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) fields(c *gin.Context) {
	c.JSON(http.StatusOK, s.cfg.Schema)
}

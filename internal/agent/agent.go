package agent

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mwantia/fabric/pkg/container"
	"github.com/mwantia/taskfilter/internal/api"
	"github.com/mwantia/taskfilter/internal/todo"
	"github.com/mwantia/taskfilter/pkg/db/query"
	"github.com/mwantia/taskfilter/pkg/db/store"
	"github.com/mwantia/taskfilter/pkg/log"

	config "github.com/mwantia/taskfilter/internal/config/server"
)

type TaskFilterAgent struct {
	mutex sync.RWMutex
	wait  sync.WaitGroup

	cfg *config.BaseServerConfig
	sc  *container.ServiceContainer
	log log.LoggerService

	store  store.TodoStore
	server *api.Server
}

func NewAgent(cfg *config.BaseServerConfig) *TaskFilterAgent {
	return &TaskFilterAgent{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: log.NewLoggerService("taskfilter", cfg.Log),
	}
}

func (tfa *TaskFilterAgent) setupServices(ctx context.Context) error {
	errs := container.Errors{}

	tfa.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](tfa.sc,
		container.With[log.LoggerService](),
		container.WithInstance(tfa.log)))

	compiler, err := NewCompiler(tfa.cfg.Filter)
	if err != nil {
		return fmt.Errorf("failed to create filter compiler: %w", err)
	}
	tfa.log.Debug("Registering 'Compiler'...")
	errs.Add(container.Register[query.Compiler](tfa.sc,
		container.WithInstance(compiler)))

	if err := errs.Errors(); err != nil {
		return err
	}

	dbLog, err := log.ResolveLogger(ctx, tfa.sc, "database")
	if err != nil {
		return err
	}
	tfa.store, err = NewStore(tfa.cfg.Database, compiler, dbLog)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", tfa.cfg.Database.Type, err)
	}
	if err := tfa.store.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to %s store: %w", tfa.cfg.Database.Type, err)
	}
	if err := tfa.store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate store: %w", err)
	}
	dbLog.Info("Connected to %s store", tfa.cfg.Database.Type)

	tfa.log.Debug("Registering 'TodoStore'...")
	errs.Add(registerStore(tfa.sc, tfa.store))

	httpLog, err := log.ResolveLogger(ctx, tfa.sc, "http")
	if err != nil {
		return err
	}
	tfa.server, err = api.NewServer(api.Config{
		Address: tfa.cfg.HTTP.Address,
		Mode:    tfa.cfg.HTTP.Mode,
		Store:   tfa.store,
		Tenants: api.HeaderTenantResolver{Header: tfa.cfg.HTTP.TenantHeader},
		Schema:  todo.Fields,
		Logger:  httpLog,
	})
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}
	tfa.log.Debug("Registering 'Server'...")
	errs.Add(container.Register[api.Server](tfa.sc,
		container.WithInstance(tfa.server)))

	return errs.Errors()
}

func registerStore(sc *container.ServiceContainer, s store.TodoStore) error {
	switch impl := s.(type) {
	case *store.SQLiteStore:
		return container.Register[store.SQLiteStore](sc,
			container.With[store.TodoStore](),
			container.WithInstance(impl))
	case *store.PostgresStore:
		return container.Register[store.PostgresStore](sc,
			container.With[store.TodoStore](),
			container.WithInstance(impl))
	}
	return fmt.Errorf("unsupported store type %T", s)
}

func (tfa *TaskFilterAgent) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tfa.mutex.Lock()

	if err := tfa.setupServices(ctx); err != nil {
		tfa.mutex.Unlock()
		tfa.closeStore()
		return err
	}

	serveErr := make(chan error, 1)
	tfa.wait.Add(1)
	go func() {
		defer tfa.wait.Done()
		serveErr <- tfa.server.Serve()
	}()

	tfa.mutex.Unlock()

	var err error
	select {
	case <-ctx.Done():
		tfa.log.Info("Shutting down...")
	case err = <-serveErr:
		if err != nil {
			tfa.log.Error("HTTP server stopped: %v", err)
		}
	}

	timeout, perr := time.ParseDuration(tfa.cfg.ShutdownTimeout)
	if perr != nil {
		// Set default of 60 seconds if error
		timeout = 60 * time.Second
	}

	shutdown, cancelShutdown := context.WithTimeout(context.Background(), timeout)
	defer cancelShutdown()

	if serr := tfa.server.Cleanup(shutdown); serr != nil {
		tfa.log.Warn("Failed to shut down http server: %v", serr)
	}
	tfa.wait.Wait()
	tfa.closeStore()

	if cerr := tfa.sc.Cleanup(shutdown); cerr != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", cerr)
	}

	return err
}

func (tfa *TaskFilterAgent) closeStore() {
	if tfa.store == nil {
		return
	}
	if err := tfa.store.Close(); err != nil {
		tfa.log.Warn("Failed to close store: %v", err)
	}
}

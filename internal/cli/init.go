// Package cli provides common CLI initialization utilities shared by the
// bizexpense commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"bizexpense/internal/aggregate"
	"bizexpense/internal/backend"
	"bizexpense/internal/config"
	"bizexpense/internal/core"
	"bizexpense/internal/log"
	"bizexpense/internal/storage"
	"bizexpense/internal/store"
)

// SetupLogger builds the application logger from the configured level and
// format and sets it as the default logger.
func SetupLogger(cfg *config.Config, out io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := log.New(log.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: log.ComponentCLI,
		Output:    out,
	})
	log.SetDefault(logger)
	return logger, nil
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the optional file and the
// environment, applies non-empty log flag overrides and validates the result.
func LoadAndValidateConfig(configFile, logLevel, logFormat string) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Session bundles what a command needs: the loaded store, the memoizing
// aggregation engine and the backend to release on exit.
type Session struct {
	Store   *store.Store
	Engine  *aggregate.Engine
	Logger  *log.Logger
	backend *backend.BackendResult

	// LoadWarning is set when a stored record was corrupt and replaced
	// with defaults. The session is still usable.
	LoadWarning error
}

// OpenSession creates the configured backend and loads the store from it.
func OpenSession(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Session, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	ceiling, err := core.MoneyFromFloat(cfg.DefaultBudget)
	if err != nil {
		return nil, fmt.Errorf("default budget: %w", err)
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, err
	}

	st := store.New(storage.NewRecords(res.KV, logger),
		store.WithLogger(logger),
		store.WithDefaultBudget(ceiling),
	)

	sess := &Session{
		Store:   st,
		Engine:  aggregate.NewEngine(cfg.CacheSize),
		Logger:  logger,
		backend: res,
	}
	if err := st.Load(ctx); err != nil {
		if !errors.Is(err, core.ErrPersistenceCorruption) {
			res.Close()
			return nil, fmt.Errorf("load store: %w", err)
		}
		sess.LoadWarning = err
	}
	return sess, nil
}

// Close releases the backend. Every mutation is already persisted.
func (s *Session) Close() error {
	return s.backend.Close()
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String(), log.FieldOperation, log.OpShutdown)
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/xvierd/pomo-cli/internal/adapters/notification"
	"github.com/xvierd/pomo-cli/internal/adapters/scheduler"
	"github.com/xvierd/pomo-cli/internal/adapters/storage"
	"github.com/xvierd/pomo-cli/internal/config"
	"github.com/xvierd/pomo-cli/internal/logging"
	"github.com/xvierd/pomo-cli/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config    *config.Config
	logger    *log.Logger
	logCloser io.Closer
	store     *storage.Store
	notifier  *notification.Notifier
	app       *services.App
	state     *services.StateService
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// loadConfig reads the config file named by --config, or the default one.
// A failed load falls back to defaults.
func loadConfig() *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// saveConfig writes cfg back to the file named by --config, or the default one.
func saveConfig(cfg *config.Config) error {
	if configPath != "" {
		return config.SaveTo(configPath, cfg)
	}
	return config.Save(cfg)
}

// resolveDBPath returns the --db path or the configured default.
func resolveDBPath(cfg *config.Config) string {
	if dbPath != "" {
		return dbPath
	}
	return config.GetDBPath(cfg)
}

// initializeServices sets up all the required services and adapters.
func initializeServices(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if app.store != nil {
		// A previous command failed before its post-run cleanup.
		_ = cleanupServices()
	}
	app = appDeps{config: loadConfig()}

	path := resolveDBPath(app.config)
	if dbPath != "" {
		// --db moves the whole data directory, log included.
		app.config.Storage.DataDir = filepath.Dir(path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	logger, closer, err := logging.New(app.config.Log, config.GetLogPath(app.config))
	if err != nil {
		logger, closer = log.New(io.Discard), nil
	}
	app.logger = logger
	app.logCloser = closer

	app.store, err = storage.New(path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.notifier = notification.New(&app.config.Notifications, app.logger)

	app.app = services.NewApp(ctx, services.Options{
		Store:        app.store,
		Scheduler:    scheduler.NewTicker(),
		Clock:        scheduler.SystemClock{},
		Notifier:     app.notifier,
		Logger:       app.logger,
		Defaults:     app.config.TimerSettings(),
		TickInterval: app.config.TickInterval(),
	})
	app.state = services.NewStateService(app.app)

	app.logger.Debug("services initialized", "db", path)
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.app != nil {
		app.app.Close()
	}
	var err error
	if app.store != nil {
		err = app.store.Close()
	}
	if app.logCloser != nil {
		_ = app.logCloser.Close()
	}
	app = appDeps{}
	return err
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

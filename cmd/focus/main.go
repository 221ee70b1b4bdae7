package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alexanderramin/focus/internal/cli"
	"github.com/alexanderramin/focus/internal/config"
	"github.com/alexanderramin/focus/internal/db"
	"github.com/alexanderramin/focus/internal/log"
	"github.com/alexanderramin/focus/internal/repository"
	"github.com/alexanderramin/focus/internal/service"
	"github.com/alexanderramin/focus/internal/timer"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx, open)
}

// open wires stores and services for one invocation.
func open(ctx context.Context, cfg config.Config) (*cli.App, func() error, error) {
	var closers []func() error
	cleanup := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		closers = append(closers, f.Close)
		logOut = f
	}
	log.Configure(log.Config{Level: cfg.LogLevel, Output: logOut})

	// History always lives in SQLite; only timer state can move to Redis.
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	closers = append(closers, database.Close)

	var settings repository.SettingsRepo = repository.NewSQLiteSettingsRepo(database)
	if cfg.Store == config.StoreRedis {
		redisRepo, err := repository.NewRedisSettingsRepo(ctx, repository.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			_ = cleanup()
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		closers = append(closers, redisRepo.Close)
		settings = redisRepo
	}

	observer := service.NewLogUseCaseObserver(log.WithComponent("service"))

	app := &cli.App{
		Settings: settings,
		History:  service.NewHistoryService(repository.NewSQLiteFocusSessionRepo(database), observer),
		Prefs:    service.NewPreferenceService(settings, observer),
		Clock:    timer.SystemClock{},
		Logger:   log.WithComponent("cli"),
		Presets:  cfg.Presets,
	}

	// Detect interactive terminal for the dashboard and preset prompt.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return app, cleanup, nil
}

package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blanket_warmer/internal/config"
	"blanket_warmer/internal/handlers"
	"blanket_warmer/internal/logger"
	"blanket_warmer/internal/repository"
	"blanket_warmer/internal/repository/db"
	"blanket_warmer/internal/server"
	"blanket_warmer/internal/service"
	"blanket_warmer/internal/view"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// init logger
	log := logger.Get(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	// open DB
	conn, err := openDB(cfg.DB, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services, err := service.NewService(repos, cfg)
	if err != nil {
		log.Fatalw("failed to build services", "err", err)
	}
	renderer, err := view.New()
	if err != nil {
		log.Fatalw("failed to load page templates", "err", err)
	}
	apiHandler := handlers.NewHandler(services, renderer, handlers.Options{
		Title:            cfg.Dashboard.Title,
		ReadingsInterval: cfg.WS.ReadingsInterval,
	}, log.Named("http"))

	// context for background goroutines
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	// start simulator when readings are simulated
	if services.Simulator != nil {
		log.Infow("thermal simulator started", "tick", cfg.Readings.SimTick, "sample_every", cfg.Readings.SampleEvery)
		g.Go(func() error {
			services.Simulator.Run(gctx, cfg.Readings.SimTick)
			return nil
		})
	}

	// start HTTP server
	if cfg.HTTP.Port == "" {
		cfg.HTTP.Port = "8080"
	}
	srv := server.New(cfg.HTTP, apiHandler.InitRoutes())
	g.Go(srv.Run)
	log.Infow("dashboard listening", "port", cfg.HTTP.Port, "readings", cfg.Readings.Source)

	// graceful shutdown
	waitForShutdown(gctx, cancel, srv, cfg.HTTP.ShutdownTimeout, log)
	if err := g.Wait(); err != nil {
		log.Errorw("error running server", "err", err)
		return err
	}
	return nil
}

// openDB initializes the SQLite database using configuration.
func openDB(c config.DBConfig, log *logger.Logger) (*sql.DB, error) {
	path := c.Path
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "blanket.db")
		path = "blanket.db"
	}
	return db.InitDB(path)
}

// waitForShutdown blocks until a termination signal arrives or a background
// task fails, then performs graceful shutdown.
func waitForShutdown(ctx context.Context, cancel context.CancelFunc, srv *server.Server, timeout time.Duration, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

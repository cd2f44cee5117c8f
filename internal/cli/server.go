package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/LeJamon/goAMMd/internal/config"
	"github.com/LeJamon/goAMMd/internal/core/tx"
	_ "github.com/LeJamon/goAMMd/internal/core/tx/all"
	"github.com/LeJamon/goAMMd/internal/events"
	"github.com/LeJamon/goAMMd/internal/server"
	"github.com/LeJamon/goAMMd/internal/storage/statedb"
	"github.com/LeJamon/goAMMd/internal/tokenledger"
)

// serverCmd represents the server command (default action)
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the AMM daemon",
	Long: `Start the goAMMd daemon: it opens the state database, restores the
global parameters and pool ledger, and serves the transaction and query
API over HTTP until interrupted.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// Running ammd without a subcommand starts the server.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return serverCmd.RunE(cmd, args)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}

	view, err := statedb.Open(cfg.Database.Path, statedb.Options{CacheSize: cfg.Database.CacheSize})
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}
	defer view.Close()

	tokens := tokenledger.NewMemoryLedger()
	engine := tx.NewEngine(view, tokens, events.NewLogPublisher(log), tx.EngineConfig{})

	srv, err := server.NewServer(server.ServerDeps{
		Handlers: &server.Handlers{Engine: engine, Logger: log},
		Config:   server.ServerConfig{Addr: cfg.Server.Addr},
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	log.WithFields(logrus.Fields{
		"addr":     cfg.Server.Addr,
		"database": cfg.Database.Path,
	}).Info("starting goAMMd")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newLogger(cfg config.LogConfig) (*logrus.Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log, nil
}

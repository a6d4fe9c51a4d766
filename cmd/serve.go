package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "containerops/internal/adapters/in/http"
	"containerops/internal/adapters/out/postgres/migrations"
	"containerops/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API, the event stream and the notification relay",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", true, "apply pending migrations before serving (postgres store only)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.StoreDriver == StorePostgres && migrateOnStart {
		if err = migrateUp(log); err != nil {
			return err
		}
	}

	root, err := NewCompositionRoot(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := root.Close(); closeErr != nil {
			log.Error("failed to release resources", zap.Error(closeErr))
		}
	}()

	e := api.NewEcho(api.NewServer(root.CreateHTTPHandlers(), root.Hub(), log), log)

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
		log.Info("http server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// Open event streams only end when the hub closes.
		root.Hub().Close()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func migrateUp(log *zap.Logger) error {
	db, err := migrations.Open(cfg.DSN())
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	if err = migrations.Up(db); err != nil {
		return err
	}
	version, err := migrations.Version(db)
	if err != nil {
		return err
	}
	log.Info("database schema is up to date", zap.Int64("version", version))
	return nil
}

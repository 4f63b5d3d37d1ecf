package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"checkin-guide/config"
	"checkin-guide/guestlink"
	"checkin-guide/logger"
	"checkin-guide/store"
)

func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	lg, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, lg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, lg, err := setup()
	if err != nil {
		return err
	}
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := newApplication(ctx, cfg, lg)
	if err != nil {
		return err
	}

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.router(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.LogSystem("server", "start", true, map[string]interface{}{"addr": addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	lg.LogSystem("server", "shutdown", true, nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulStop)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	lg.LogSystem("server", "stopped", true, nil)
	return nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the SQL tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetBool("seed")

			cfg, lg, err := setup()
			if err != nil {
				return err
			}
			cfg.Database.AutoMigrate = false
			cfg.Database.Seed = false
			db, err := config.ConnectDatabase(cfg.Database, lg.Logger)
			if err != nil {
				return err
			}
			if err := store.NewSQLStore(db).Migrate(); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			if seed {
				if err := config.SeedDatabase(db); err != nil {
					return fmt.Errorf("seed: %w", err)
				}
			}
			fmt.Println("Migrations applied.")
			return nil
		},
	}
	cmd.Flags().Bool("seed", false, "insert a demo apartment into an empty database")
	return cmd
}

func linkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Print the guest link of a booking",
		RunE: func(cmd *cobra.Command, args []string) error {
			bookingID, _ := cmd.Flags().GetString("booking")
			lock, _ := cmd.Flags().GetString("lock")
			if bookingID == "" {
				return errors.New("--booking is required")
			}

			cfg, lg, err := setup()
			if err != nil {
				return err
			}
			app, err := newApplication(cmd.Context(), cfg, lg)
			if err != nil {
				return err
			}
			link, err := app.links.ForBooking(cmd.Context(), bookingID, guestlink.Overrides{LockCode: lock})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
	cmd.Flags().String("booking", "", "booking id")
	cmd.Flags().String("lock", "", "lock code to put in the link instead of the stored one")
	return cmd
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "checkin-guide",
		Short:        "Check-in guide backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd(), linkCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

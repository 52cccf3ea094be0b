package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/notes-app/internal/app"
	"github.com/yukikurage/notes-app/internal/config"
	"github.com/yukikurage/notes-app/internal/database"
	"github.com/yukikurage/notes-app/internal/password"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	rootCmd := &cobra.Command{
		Use:           "notes-server",
		Short:         "Multi-user note-taking service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cfg)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			return database.Migrate(db)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	rootCmd.PersistentFlags().StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "database driver: postgres, mysql or sqlite")
	rootCmd.AddCommand(serveCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func serve(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}

	if err := database.Migrate(db); err != nil {
		return err
	}

	store, err := app.NewSessionStore(cfg)
	if err != nil {
		return err
	}

	r := app.NewRouter(db, store, password.NewBcryptHasher(cfg.BcryptCost), app.Options{
		HSTS: cfg.IsRelease(),
	})

	addr := ":" + cfg.Port
	slog.Info("server starting", "addr", addr, "session_store", cfg.SessionStore)
	if err := r.Run(addr); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func setupLogger(cfg *config.Config) {
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}

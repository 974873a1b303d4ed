package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "wiki_system/docs"
	"wiki_system/internal/config"
	"wiki_system/internal/handlers"
	"wiki_system/internal/logger"
	"wiki_system/internal/repository"
	"wiki_system/internal/repository/db"
	"wiki_system/internal/server"
	"wiki_system/internal/service"
	"wiki_system/internal/session"

	"github.com/spf13/cobra"
)

// @title           Wiki API
// @version         1.0
// @description     Session-driven wiki: accounts, pages and the screen flow between them.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var configFile string

var rootCmd = &cobra.Command{
	Use:   "wiki",
	Short: "wiki serves the wiki HTTP API",
	Long:  "wiki serves the wiki HTTP API backed by a local SQLite database",
	RunE:  serveRunE,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  serveRunE,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and print the schema version",
	RunE:  migrateRunE,
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "the config file to use (default configs/config.yml)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.Get(cfg.Log.Level), nil
}

func serveRunE(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// open DB
	conn, err := openDB(ctx, cfg, log)
	if err != nil {
		log.Errorw("failed to init sqlite", "err", err)
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services, err := service.NewService(repos, service.Options{
		HashAlgorithm: cfg.Auth.Hash,
		SigningKey:    cfg.Auth.SigningKey,
		TokenTTL:      cfg.Auth.TokenTTL,
	})
	if err != nil {
		return err
	}
	sessions := session.NewRegistry(cfg.Session.IdleTTL)
	apiHandler := handlers.NewHandler(services, sessions, log, handlers.WithListInterval(cfg.HTTP.ListInterval))

	srv := server.New(cfg.HTTP.Port, apiHandler.InitRoutes())
	errCh := runHTTPServer(srv, log)

	// graceful shutdown
	select {
	case err := <-errCh:
		log.Errorw("error starting server", "err", err)
		return err
	case <-ctx.Done():
	}
	return shutdown(srv, cfg, log)
}

func migrateRunE(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	conn, err := openDB(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	v, err := db.Version(cmd.Context(), conn)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (%s)\n", v, cfg.DB.Path)
	return nil
}

// openDB initializes the SQLite database using configuration.
func openDB(ctx context.Context, cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening database", "path", cfg.DB.Path)
	return db.InitDB(ctx, cfg.DB.Path, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Infow("http server listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			errCh <- err
		}
	}()
	return errCh
}

// shutdown allows in-flight requests to complete.
func shutdown(srv *server.Server, cfg *config.Config, log *logger.Logger) error {
	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return nil
}

package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/meditrack/meditrack/internal/config"
	"github.com/meditrack/meditrack/internal/domain/billing"
	"github.com/meditrack/meditrack/internal/domain/patient"
	"github.com/meditrack/meditrack/internal/domain/scheduling"
	"github.com/meditrack/meditrack/internal/platform/audit"
	"github.com/meditrack/meditrack/internal/platform/auth"
	"github.com/meditrack/meditrack/internal/platform/db"
	"github.com/meditrack/meditrack/internal/platform/middleware"
)

// patientDirectory adapts the patient repository to the existence check the
// scheduling and billing services need, avoiding imports between domains.
type patientDirectory struct {
	repo patient.Repository
}

func (d *patientDirectory) Exists(ctx context.Context, id int64) (bool, error) {
	p, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "meditrack-server",
		Short: "MediTrack clinic record API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(initdbCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MediTrack API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func initdbCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create the store schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			conn, err := db.Open(ctx, cfg.DBPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.Bootstrap(ctx, conn); err != nil {
				return err
			}

			cmd.Printf("Schema ready at %s\n", cfg.DBPath)
			return nil
		},
	}
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open store")
	}
	defer conn.Close()

	if err := db.Bootstrap(ctx, conn); err != nil {
		logger.Fatal().Err(err).Msg("bootstrap schema")
	}

	// Audit trail: structured log stream always on, line file when configured.
	var recorders []audit.Recorder
	if cfg.AuditLogPath != "" {
		fr, err := audit.NewFileRecorder(cfg.AuditLogPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("open audit log")
		}
		defer fr.Close()
		recorders = append(recorders, fr)
	}
	trail := audit.NewTrail(logger, recorders...)
	gate := auth.NewGate(trail)

	patientRepo := patient.NewRepositorySQLite(conn)
	directory := &patientDirectory{repo: patientRepo}

	patientSvc := patient.NewService(patientRepo, gate, trail)
	schedulingSvc := scheduling.NewService(scheduling.NewRepositorySQLite(conn), directory, gate, trail)
	billingSvc := billing.NewService(billing.NewRepositorySQLite(conn), directory, gate, trail)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.Recovery(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(auth.FromHeaders())

	e.GET("/health", healthHandler(conn))

	api := e.Group("/api/v1")
	patient.NewHandler(patientSvc).RegisterRoutes(api)
	scheduling.NewHandler(schedulingSvc).RegisterRoutes(api)
	billing.NewHandler(billingSvc).RegisterRoutes(api)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server start")
		}
	}()
	logger.Info().Str("port", cfg.Port).Str("db", cfg.DBPath).Msg("meditrack server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func healthHandler(conn *sql.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := db.Health(c.Request().Context(), conn); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "down", "error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

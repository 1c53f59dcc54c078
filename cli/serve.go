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

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pdfpress/api"
	"pdfpress/pdf"
)

const (
	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 60 * time.Second

	// ServerIdleTimeout is the HTTP server idle timeout
	ServerIdleTimeout = 60 * time.Second

	// GracefulShutdownTimeout is the timeout for graceful shutdown
	GracefulShutdownTimeout = 10 * time.Second
)

func newServeCommand(runner pdf.Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve PDF compression over HTTP",
		Long: `Start an HTTP server exposing POST /api/pdf/compress.

Configuration is read from PORT, MAX_FILE_SIZE, TEMP_DIR and ENGINE_TIMEOUT,
optionally loaded from a .env file. Flags override the environment.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return pdf.UsageError(fmt.Sprintf("serve takes no arguments, received %d", len(args)), nil)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := loadServerConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), config, runner)
		},
	}

	cmd.Flags().String("port", DefaultPort, "listen port (env PORT)")
	cmd.Flags().Int64("max-file-size", api.DefaultMaxFileSize, "maximum upload size in bytes (env MAX_FILE_SIZE)")
	cmd.Flags().String("temp-dir", DefaultTempDir, "directory for uploaded and compressed files (env TEMP_DIR)")
	cmd.Flags().Duration("timeout", api.DefaultEngineTimeout, "maximum time for one engine run (env ENGINE_TIMEOUT)")
	cmd.Flags().String("env-file", "", "load environment from this file instead of ./.env")
	return cmd
}

// newRouter builds the gin engine with logging, recovery and the API routes
func newRouter(logger zerolog.Logger, config *api.Config, runner pdf.Runner) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), api.RequestLogger(logger))
	api.SetupRoutes(r, config, runner)
	return r
}

// runServer serves until ctx is cancelled or the process receives SIGINT/SIGTERM
func runServer(ctx context.Context, config *api.Config, runner pdf.Runner) error {
	logger := zerolog.Ctx(ctx)

	version, err := pdf.CheckEngine(ctx)
	if err != nil {
		return fmt.Errorf("ghostscript not available, install it to continue: %w", err)
	}
	logger.Info().Str("version", version).Msg("Ghostscript is available")

	srv := &http.Server{
		Addr:        ":" + config.Port,
		Handler:     newRouter(*logger, config, runner),
		ReadTimeout: ServerReadTimeout,
		// Responses wait on the engine, so writes get the engine budget on top
		WriteTimeout: config.EngineTimeout + ServerReadTimeout,
		IdleTimeout:  ServerIdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Int64("max_file_size", config.MaxFileSize).
			Str("temp_dir", config.TempDir).
			Dur("engine_timeout", config.EngineTimeout).
			Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("Server exited gracefully")
	return nil
}

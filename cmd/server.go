package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/vzahanych/weather-display/internal/config"
	"github.com/vzahanych/weather-display/internal/server"
	"go.uber.org/zap"
)

func serverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Serve current weather over HTTP",
		Long:  `Start an HTTP server exposing GET /weather?city=<name> along with health and metrics endpoints.`,
		Args:  cobra.NoArgs,
		RunE:  runServer,
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	log.Info("Starting weather server",
		zap.String("config_path", configPath),
		zap.Bool("telemetry_enabled", cfg.Telemetry.Enabled),
		zap.Int("server_port", cfg.Server.Port),
		zap.Bool("credential_present", cfg.Weather.APIKey() != ""))

	srv := server.NewServer(cfg, newWeatherClient(cfg), log.Logger, tele)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			log.Error("Server error", zap.Error(err))
		}
		return err
	case <-cmd.Context().Done():
		log.Info("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Error during server shutdown", zap.Error(err))
			return err
		}

		log.Info("Server shutdown complete")
		return nil
	}
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vzahanych/weather-display/internal/config"
	"github.com/vzahanych/weather-display/internal/weather"
	"github.com/vzahanych/weather-display/pkg/logger"
	"github.com/vzahanych/weather-display/pkg/telemetry"
	"go.uber.org/zap"
)

var (
	log        *logger.Logger
	tele       *telemetry.Telemetry
	configPath string
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weather [city]",
		Short: "Show the current weather for a city",
		Long: `Fetches current conditions for a city from OpenWeatherMap and prints them.
The city argument overrides the configured default. The API key is read from
the OPENWEATHER_API_KEY environment variable (or a .env file).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeServices(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return shutdownServices()
		},
		RunE: runShow,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default: ./config.yaml)")
	cmd.AddCommand(serverCmd())

	return cmd
}

func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := rootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}

func initializeServices(ctx context.Context) error {
	// A .env file is optional; real environment variables win over it.
	envErr := godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	config.SetConfig(cfg)

	log, err = logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		log.Warn("Failed to load .env file", zap.Error(envErr))
	}

	tele, err = telemetry.New(ctx, cfg.Telemetry, cfg.Version)
	if err != nil {
		log.Warn("Failed to initialize telemetry", zap.Error(err))
	}

	return nil
}

func shutdownServices() error {
	if err := tele.Shutdown(context.Background()); err != nil {
		log.Warn("Telemetry shutdown failed", zap.Error(err))
	}
	if log != nil {
		_ = log.Sync()
	}
	return nil
}

func newWeatherClient(cfg *config.Config) *weather.Client {
	return weather.NewClientWithConfig(cfg.Weather, log.Logger, weather.WithTelemetry(tele))
}

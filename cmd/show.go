package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vzahanych/weather-display/internal/config"
	"github.com/vzahanych/weather-display/internal/display"
	"github.com/vzahanych/weather-display/internal/fetcher"
	"go.uber.org/zap"
)

// runShow fetches once on a background worker and renders the result.
func runShow(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	city := cfg.Weather.DefaultCity
	if len(args) == 1 && args[0] != "" {
		city = args[0]
	}

	f := fetcher.New(newWeatherClient(cfg), cfg.Weather.APIKey, log.Logger, tele)
	defer f.Close()

	log.Debug("Fetching weather", zap.String("city", city))

	result, err := f.Fetch(cmd.Context(), city)
	if err != nil {
		return fmt.Errorf("fetch interrupted: %w", err)
	}

	if err := display.Render(cmd.OutOrStdout(), result, cfg.Display.AssetsDir); err != nil {
		return err
	}

	if kind, _, failed := result.Failure(); failed {
		return fmt.Errorf("weather fetch failed (%s)", kind)
	}
	return nil
}

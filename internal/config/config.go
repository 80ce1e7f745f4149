package config

import (
	"os"
	"sync/atomic"
	"time"
)

var configValue atomic.Value

func GetConfig() *Config {
	cfg, ok := configValue.Load().(*Config)
	if !ok {
		return NewDefaultConfig()
	}
	return cfg
}

func SetConfig(cfg *Config) {
	configValue.Store(cfg)
}

type Config struct {
	Version     string          `mapstructure:"version"`
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Weather     WeatherConfig   `mapstructure:"weather"`
	Display     DisplayConfig   `mapstructure:"display"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// WeatherConfig describes the single upstream provider.
type WeatherConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	APIKeyEnv   string `mapstructure:"api_key_env"`
	DefaultCity string `mapstructure:"default_city"`
	Timeout     int    `mapstructure:"timeout"`
}

// APIKey reads the provider credential from the process environment.
// An unset variable yields "", which the client reports as a missing credential.
func (w WeatherConfig) APIKey() string {
	return os.Getenv(w.APIKeyEnv)
}

func (w WeatherConfig) TimeoutDuration() time.Duration {
	return time.Duration(w.Timeout) * time.Second
}

type DisplayConfig struct {
	AssetsDir string `mapstructure:"assets_dir"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		Weather: WeatherConfig{
			Endpoint:    "https://api.openweathermap.org/data/2.5/weather",
			APIKeyEnv:   "OPENWEATHER_API_KEY",
			DefaultCity: "Lahore",
			Timeout:     10,
		},
		Display: DisplayConfig{
			AssetsDir: ".",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Endpoint: "tempo:4317",
		},
	}
}

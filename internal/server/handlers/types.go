package handlers

import "github.com/vzahanych/weather-display/internal/display"

// WeatherRequest is the query of GET /weather.
type WeatherRequest struct {
	City string `form:"city" json:"city" validate:"required,max=99,city" binding:"required"`
}

// WeatherResponse is a successful fetch as served over HTTP.
type WeatherResponse struct {
	City            string              `json:"city"`
	Country         string              `json:"country"`
	Location        string              `json:"location"`
	Summary         string              `json:"summary,omitempty"`
	Description     string              `json:"description"`
	ConditionCode   int                 `json:"condition_code"`
	Category        string              `json:"category"`
	TemperatureC    int                 `json:"temperature_c"`
	FeelsLikeC      int                 `json:"feels_like_c"`
	HumidityPercent int                 `json:"humidity_percent"`
	WindSpeedKmh    int                 `json:"wind_speed_kmh"`
	Assets          *display.AssetPaths `json:"assets,omitempty"`
}

// ErrorResponse represents an error response with validation
type ErrorResponse struct {
	Error   string      `json:"error" validate:"required,min=1,max=500"`
	Code    string      `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Details interface{} `json:"details,omitempty"`
}

// HealthResponse represents health check response with validation
type HealthResponse struct {
	Status    string            `json:"status" validate:"required,oneof=ok alive ready degraded unavailable"`
	Uptime    string            `json:"uptime" validate:"required"`
	Timestamp string            `json:"timestamp,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Checks    map[string]string `json:"checks,omitempty"`
}

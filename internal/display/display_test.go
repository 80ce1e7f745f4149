package display

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/weather-display/internal/weather"
)

func TestAssets(t *testing.T) {
	tests := []struct {
		category weather.Category
		banner   string
		icon     string
	}{
		{weather.CategoryThunderstorm, "thunderStorm.jpg", "thunderStorm.png"},
		{weather.CategoryDrizzle, "rain.jpg", "rain.png"},
		{weather.CategoryRain, "rain.jpg", "rain.png"},
		{weather.CategorySnow, "snow.jpg", "snow.png"},
		{weather.CategoryAtmosphere, "fog.jpg", "fog.png"},
		{weather.CategoryClear, "clear.jpg", "sunny.png"},
		{weather.CategoryClouds, "clouds.jpg", "clouds.png"},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			paths, ok := Assets("/opt/app", tt.category)
			require.True(t, ok)
			assert.Equal(t, filepath.Join("/opt/app", "assets", "weatherBanner", tt.banner), paths.Banner)
			assert.Equal(t, filepath.Join("/opt/app", "assets", "weatherLogos", tt.icon), paths.Icon)
		})
	}

	_, ok := Assets("/opt/app", weather.CategoryUnknown)
	assert.False(t, ok)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "Zü", Truncate("Zürich", 2))
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, 99, len([]rune(Truncate(strings.Repeat("x", 150), MaxCityLen))))
}

func TestNewView(t *testing.T) {
	snap := weather.WeatherSnapshot{
		City:            strings.Repeat("c", 120),
		Country:         "PK",
		Description:     "Clear sky",
		Category:        weather.CategoryClear,
		TemperatureC:    27,
		FeelsLikeC:      28,
		HumidityPercent: 50,
		WindSpeedKmh:    7,
	}

	v := NewView(snap, ".")

	assert.Equal(t, strings.Repeat("c", MaxCityLen)+", PK", v.Location)
	assert.Equal(t, "27C", v.Temperature)
	assert.Equal(t, "50%", v.Humidity)
	assert.Equal(t, "7 km/h", v.Wind)
	assert.True(t, v.HasAssets)

	v = NewView(weather.WeatherSnapshot{Country: "PK"}, ".")
	assert.Equal(t, "PK", v.Location)
	assert.False(t, v.HasAssets)
}

func TestRender_Success(t *testing.T) {
	var buf bytes.Buffer
	r := weather.Success(weather.WeatherSnapshot{
		City:         "Lahore",
		Country:      "PK",
		Description:  "Haze",
		Category:     weather.CategoryAtmosphere,
		TemperatureC: 33,
	})

	require.NoError(t, Render(&buf, r, "/srv"))

	out := buf.String()
	assert.Contains(t, out, "Haze\n")
	assert.Contains(t, out, "Lahore, PK\n")
	assert.Contains(t, out, "Temperature: 33C")
	assert.Contains(t, out, filepath.Join("/srv", "assets", "weatherLogos", "fog.png"))
}

func TestRender_Failures(t *testing.T) {
	tests := []struct {
		kind weather.FailureKind
		msg  string
		want string
	}{
		{weather.MissingCredential, "Set OPENWEATHER_API_KEY", "Missing API key. Set OPENWEATHER_API_KEY and try again."},
		{weather.CityNotFound, "City not found", "City not found. Check the spelling and retry."},
		{weather.MalformedResponse, "Failed to parse API response", "Failed to parse API response. Retry in a moment."},
		{weather.Transport, "dial tcp: refused", "Could not reach the weather service: dial tcp: refused. Check your connection and retry."},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, weather.Failure(tt.kind, tt.msg), "."))
			assert.Equal(t, tt.want+"\n", buf.String())
		})
	}
}

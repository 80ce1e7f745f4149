package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/weather-display/internal/config"
	"github.com/vzahanych/weather-display/internal/server/handlers"
	"github.com/vzahanych/weather-display/internal/server/middlewares"
	"github.com/vzahanych/weather-display/internal/weather"
	"go.uber.org/zap/zaptest"
)

const testKeyEnv = "WEATHER_DISPLAY_TEST_KEY"

type fakeFetcher struct {
	result weather.FetchResult
	city   string
	key    string
}

func (f *fakeFetcher) Fetch(ctx context.Context, city, apiKey string) weather.FetchResult {
	f.city = city
	f.key = apiKey
	return f.result
}

func testConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Weather.APIKeyEnv = testKeyEnv
	cfg.Display.AssetsDir = "/srv/app"
	return cfg
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetWeather_Success(t *testing.T) {
	t.Setenv(testKeyEnv, "secret")
	fetcher := &fakeFetcher{result: weather.Success(weather.WeatherSnapshot{
		City:            "Lahore",
		Country:         "PK",
		Description:     "Clear sky",
		ConditionCode:   800,
		Category:        weather.CategoryClear,
		TemperatureC:    27,
		HumidityPercent: 50,
		WindSpeedKmh:    7,
	})}
	srv := NewServer(testConfig(), fetcher, zaptest.NewLogger(t), nil)

	rec := doGet(t, srv.Handler(), "/weather?city="+url.QueryEscape("Lahore"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middlewares.RequestIDHeader))
	assert.Equal(t, "Lahore", fetcher.city)
	assert.Equal(t, "secret", fetcher.key)

	var body handlers.WeatherResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Lahore, PK", body.Location)
	assert.Equal(t, "clear", body.Category)
	assert.Equal(t, 27, body.TemperatureC)
	assert.Equal(t, 7, body.WindSpeedKmh)
	require.NotNil(t, body.Assets)
	assert.True(t, strings.HasSuffix(body.Assets.Icon, "sunny.png"))
}

func TestGetWeather_FailureStatus(t *testing.T) {
	tests := []struct {
		kind   weather.FailureKind
		status int
		code   string
	}{
		{weather.MissingCredential, http.StatusServiceUnavailable, "MISSING_CREDENTIAL"},
		{weather.Transport, http.StatusBadGateway, "TRANSPORT_ERROR"},
		{weather.MalformedResponse, http.StatusBadGateway, "MALFORMED_RESPONSE"},
		{weather.CityNotFound, http.StatusNotFound, "CITY_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			fetcher := &fakeFetcher{result: weather.Failure(tt.kind, "message for "+tt.kind.String())}
			srv := NewServer(testConfig(), fetcher, zaptest.NewLogger(t), nil)

			rec := doGet(t, srv.Handler(), "/weather?city=Atlantis")

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "message for "+tt.kind.String(), body.Error)
		})
	}
}

func TestGetWeather_InvalidQuery(t *testing.T) {
	srv := NewServer(testConfig(), &fakeFetcher{}, zaptest.NewLogger(t), nil)

	targets := []string{
		"/weather",
		"/weather?city=",
		"/weather?city=" + url.QueryEscape("   "),
		"/weather?city=" + strings.Repeat("x", 100),
		"/weather?city=" + url.QueryEscape("Lah\x00ore"),
	}
	for _, target := range targets {
		rec := doGet(t, srv.Handler(), target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "INVALID_PARAMS", target)
	}
}

func TestGetWeather_EndToEnd(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "New York" {
			fmt.Fprint(w, `{"cod": "404", "message": "city not found"}`)
			return
		}
		fmt.Fprint(w, `{"cod": 200, "name": "New York", "sys": {"country": "US"},
			"weather": [{"id": 502, "main": "Rain", "description": "heavy intensity rain"}],
			"main": {"temp": 285.65, "humidity": 93}, "wind": {"speed": 5.1}}`)
	}))
	defer provider.Close()

	t.Setenv(testKeyEnv, "k")
	cfg := testConfig()
	logger := zaptest.NewLogger(t)
	client := weather.NewClient(provider.URL, cfg.Weather.APIKeyEnv, cfg.Weather.TimeoutDuration(), logger)
	srv := NewServer(cfg, client, logger, nil)

	rec := doGet(t, srv.Handler(), "/weather?city="+url.QueryEscape("New York"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body handlers.WeatherResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Heavy intensity rain", body.Description)
	assert.Equal(t, "rain", body.Category)
	assert.Equal(t, 12, body.TemperatureC)
	assert.Equal(t, 18, body.WindSpeedKmh)

	rec = doGet(t, srv.Handler(), "/weather?city=Atlantis")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doGet(t, srv.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `weather_fetch_total{outcome="success"} 1`)
	assert.Contains(t, rec.Body.String(), `weather_fetch_total{outcome="city_not_found"} 1`)
	assert.Contains(t, rec.Body.String(), `http_requests_total{route_status="GET /weather_200"} 1`)
}

func TestHealthEndpoints(t *testing.T) {
	t.Setenv(testKeyEnv, "")
	srv := NewServer(testConfig(), &fakeFetcher{}, zaptest.NewLogger(t), nil)

	assert.Equal(t, http.StatusOK, doGet(t, srv.Handler(), "/health/live").Code)
	assert.Equal(t, http.StatusServiceUnavailable, doGet(t, srv.Handler(), "/health/ready").Code)

	rec := doGet(t, srv.Handler(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)

	t.Setenv(testKeyEnv, "present")
	assert.Equal(t, http.StatusOK, doGet(t, srv.Handler(), "/health/ready").Code)
}

func TestRequestIDPropagation(t *testing.T) {
	srv := NewServer(testConfig(), &fakeFetcher{}, zaptest.NewLogger(t), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set(middlewares.RequestIDHeader, "abc-123")
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(middlewares.RequestIDHeader))

	rec = doGet(t, srv.Handler(), "/health/live")
	assert.Len(t, rec.Header().Get(middlewares.RequestIDHeader), 36)
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/weather-display/internal/display"
	"github.com/vzahanych/weather-display/internal/server/utils"
	"github.com/vzahanych/weather-display/internal/weather"
	"go.uber.org/zap"
)

// WeatherFetcher is satisfied by *weather.Client.
type WeatherFetcher interface {
	Fetch(ctx context.Context, city, apiKey string) weather.FetchResult
}

// FetchRecorder counts fetch outcomes by kind ("success" or a FailureKind).
type FetchRecorder interface {
	RecordFetch(ctx context.Context, outcome string)
}

type WeatherHandler struct {
	client    WeatherFetcher
	apiKey    func() string
	assetsDir string
	metrics   FetchRecorder
	logger    *zap.Logger
}

func NewWeatherHandler(client WeatherFetcher, apiKey func() string, assetsDir string, metrics FetchRecorder, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		client:    client,
		apiKey:    apiKey,
		assetsDir: assetsDir,
		metrics:   metrics,
		logger:    logger,
	}
}

func (h *WeatherHandler) GetWeather(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	requestID := utils.GetRequestIDFromGinContext(c)

	reqLogger := h.logger.With(zap.String("request_id", requestID))

	var req WeatherRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		reqLogger.Warn("Invalid request parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return
	}
	if verrs := utils.ValidateStruct(req); verrs != nil {
		reqLogger.Warn("Request failed validation", zap.Int("errors", len(verrs)))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: verrs,
		})
		return
	}

	reqLogger.Info("Processing weather request", zap.String("city", req.City))

	result := h.client.Fetch(ctx, req.City, h.apiKey())

	if kind, msg, failed := result.Failure(); failed {
		h.record(ctx, kind.String())
		status, code := failureStatus(kind)
		reqLogger.Warn("Weather request failed",
			zap.String("city", req.City),
			zap.Stringer("kind", kind))
		c.JSON(status, ErrorResponse{
			Error: msg,
			Code:  code,
		})
		return
	}

	h.record(ctx, "success")
	snap, _ := result.Snapshot()
	c.JSON(http.StatusOK, h.toResponse(snap))
}

func (h *WeatherHandler) record(ctx context.Context, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordFetch(ctx, outcome)
	}
}

func (h *WeatherHandler) toResponse(s weather.WeatherSnapshot) WeatherResponse {
	view := display.NewView(s, h.assetsDir)

	resp := WeatherResponse{
		City:            display.Truncate(s.City, display.MaxCityLen),
		Country:         display.Truncate(s.Country, display.MaxCountryLen),
		Location:        view.Location,
		Summary:         s.Summary,
		Description:     view.Description,
		ConditionCode:   s.ConditionCode,
		Category:        view.Category,
		TemperatureC:    s.TemperatureC,
		FeelsLikeC:      s.FeelsLikeC,
		HumidityPercent: s.HumidityPercent,
		WindSpeedKmh:    s.WindSpeedKmh,
	}
	if view.HasAssets {
		assets := view.Assets
		resp.Assets = &assets
	}
	return resp
}

func failureStatus(kind weather.FailureKind) (int, string) {
	switch kind {
	case weather.MissingCredential:
		return http.StatusServiceUnavailable, "MISSING_CREDENTIAL"
	case weather.CityNotFound:
		return http.StatusNotFound, "CITY_NOT_FOUND"
	case weather.MalformedResponse:
		return http.StatusBadGateway, "MALFORMED_RESPONSE"
	default:
		return http.StatusBadGateway, "TRANSPORT_ERROR"
	}
}

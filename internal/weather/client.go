package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vzahanych/weather-display/internal/config"
	"github.com/vzahanych/weather-display/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	DefaultEndpoint  = "https://api.openweathermap.org/data/2.5/weather"
	DefaultAPIKeyEnv = "OPENWEATHER_API_KEY"
	defaultTimeout   = 10 * time.Second

	// maxBodyBytes caps how much of a response is buffered before decoding.
	maxBodyBytes = 1 << 20
)

// Client fetches current weather for one city at a time. It keeps no state
// between calls and is safe for concurrent use.
type Client struct {
	endpoint  string
	apiKeyEnv string
	client    *http.Client
	logger    *zap.Logger
	tele      *telemetry.Telemetry
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its Timeout bounds each fetch.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

func WithTelemetry(tele *telemetry.Telemetry) Option {
	return func(c *Client) {
		c.tele = tele
	}
}

func NewClient(endpoint, apiKeyEnv string, timeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if apiKeyEnv == "" {
		apiKeyEnv = DefaultAPIKeyEnv
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		endpoint:  endpoint,
		apiKeyEnv: apiKeyEnv,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewClientWithConfig(cfg config.WeatherConfig, logger *zap.Logger, opts ...Option) *Client {
	return NewClient(cfg.Endpoint, cfg.APIKeyEnv, cfg.TimeoutDuration(), logger, opts...)
}

// Fetch performs one request/response cycle for city. It never panics or
// returns a nil-equivalent: every outcome is encoded in the FetchResult.
func (c *Client) Fetch(ctx context.Context, city, apiKey string) FetchResult {
	tracer := c.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "weather.Fetch")
	defer span.End()

	span.SetAttributes(attribute.String("city", city))

	result := c.fetch(ctx, city, apiKey)

	if kind, msg, failed := result.Failure(); failed {
		span.SetAttributes(
			attribute.Bool("success", false),
			attribute.String("failure_kind", kind.String()),
		)
		c.tele.RecordError(result.Err(), ctx, map[string]interface{}{"city": city})
		c.logger.Warn("Weather fetch failed",
			zap.String("city", city),
			zap.Stringer("kind", kind),
			zap.String("message", msg),
			zap.NamedError("cause", result.err.Err))
		return result
	}

	snap, _ := result.Snapshot()
	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("condition_code", snap.ConditionCode),
		attribute.String("category", snap.Category.String()),
	)
	c.logger.Debug("Weather fetch completed",
		zap.String("city", city),
		zap.String("resolved_city", snap.City),
		zap.Int("condition_code", snap.ConditionCode),
		zap.Int("temperature_c", snap.TemperatureC))

	return result
}

func (c *Client) fetch(ctx context.Context, city, apiKey string) FetchResult {
	if apiKey == "" {
		return Failure(MissingCredential, "Set "+c.apiKeyEnv)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BuildURL(city, apiKey, c.endpoint), nil)
	if err != nil {
		// A bad endpoint only surfaces when the request is built.
		cause := redactURL(err)
		return failureWithCause(Transport, cause.Error(), cause)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Requesting current weather", zap.String("city", city))

	resp, err := c.client.Do(req)
	if err != nil {
		cause := redactURL(err)
		return failureWithCause(Transport, cause.Error(), cause)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return failureWithCause(Transport, fmt.Sprintf("reading response: %v", err), err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("Provider returned non-200 status",
			zap.String("city", city),
			zap.Int("status", resp.StatusCode))
	}

	snap, ferr := parseSnapshot(body)
	if ferr != nil {
		return FetchResult{err: ferr}
	}
	return Success(snap)
}

// redactURL strips the request URL, which carries the API key, from
// errors returned by http.Client.
func redactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

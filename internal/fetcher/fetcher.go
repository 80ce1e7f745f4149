package fetcher

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/vzahanych/weather-display/internal/weather"
	"github.com/vzahanych/weather-display/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrFetchInFlight is returned by Request while an earlier fetch is still running.
var ErrFetchInFlight = errors.New("a weather fetch is already in progress")

var ErrClosed = errors.New("fetcher is closed")

// WeatherClient is the part of weather.Client the fetcher depends on.
type WeatherClient interface {
	Fetch(ctx context.Context, city, apiKey string) weather.FetchResult
}

// Result is delivered on the Results channel once a fetch finishes.
type Result struct {
	TaskID      string
	City        string
	Fetch       weather.FetchResult
	CompletedAt time.Time
}

// Fetcher runs fetches off the caller's goroutine, one at a time. A Request
// made while another fetch is outstanding is rejected with ErrFetchInFlight.
type Fetcher struct {
	client  WeatherClient
	apiKey  func() string
	logger  *zap.Logger
	tele    *telemetry.Telemetry
	results chan Result
	current atomic.Pointer[weather.WeatherSnapshot]

	mu     sync.Mutex
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// New creates a Fetcher. apiKey is resolved at each Request so a credential
// exported after startup is picked up on the next manual retry.
func New(client WeatherClient, apiKey func() string, logger *zap.Logger, tele *telemetry.Telemetry) *Fetcher {
	return &Fetcher{
		client:  client,
		apiKey:  apiKey,
		logger:  logger,
		tele:    tele,
		results: make(chan Result, 1),
	}
}

// Results delivers completed fetches. It holds at most one unread result;
// a newer result replaces a stale unread one.
func (f *Fetcher) Results() <-chan Result {
	return f.results
}

// Current returns the snapshot from the most recent successful fetch.
func (f *Fetcher) Current() (weather.WeatherSnapshot, bool) {
	snap := f.current.Load()
	if snap == nil {
		return weather.WeatherSnapshot{}, false
	}
	return *snap, true
}

func (f *Fetcher) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancel != nil
}

// Request starts a background fetch for city and returns its task id.
func (f *Fetcher) Request(ctx context.Context, city string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return "", ErrClosed
	}
	if f.cancel != nil {
		f.logger.Debug("Fetch rejected, another is in flight", zap.String("city", city))
		return "", ErrFetchInFlight
	}

	taskCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel

	taskID := uuid.New().String()
	f.wg.Add(1)
	go f.run(taskCtx, taskID, city)

	return taskID, nil
}

// Fetch is the blocking convenience form of Request: it waits for the
// result of its own task or for ctx to end.
func (f *Fetcher) Fetch(ctx context.Context, city string) (weather.FetchResult, error) {
	taskID, err := f.Request(ctx, city)
	if err != nil {
		return weather.FetchResult{}, err
	}

	for {
		select {
		case res := <-f.results:
			if res.TaskID == taskID {
				return res.Fetch, nil
			}
		case <-ctx.Done():
			return weather.FetchResult{}, ctx.Err()
		}
	}
}

func (f *Fetcher) run(ctx context.Context, taskID, city string) {
	defer f.wg.Done()

	tracer := f.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "fetcher.run")
	defer span.End()

	span.SetAttributes(
		attribute.String("task_id", taskID),
		attribute.String("city", city),
	)

	logger := f.logger.With(zap.String("task_id", taskID), zap.String("city", city))
	logger.Debug("Processing fetch")

	result := f.client.Fetch(ctx, city, f.apiKey())

	if snap, ok := result.Snapshot(); ok {
		f.current.Store(&snap)
		logger.Debug("Fetch completed successfully")
	} else {
		logger.Info("Fetch failed", zap.Error(result.Err()))
	}
	span.SetAttributes(attribute.Bool("success", result.OK()))

	// Clearing the in-flight slot and publishing happen under one lock, so a
	// consumer that reacts to this result can immediately Request again.
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancel()
	f.cancel = nil
	f.publish(Result{
		TaskID:      taskID,
		City:        city,
		Fetch:       result,
		CompletedAt: time.Now(),
	})
}

// publish must be called with f.mu held. It never blocks: publishers are
// serialized, so after draining a stale result the slot is free.
func (f *Fetcher) publish(res Result) {
	select {
	case stale := <-f.results:
		f.logger.Debug("Dropping unread result", zap.String("task_id", stale.TaskID))
	default:
	}
	f.results <- res
}

// Close cancels an in-flight fetch and waits for it to finish.
func (f *Fetcher) Close() {
	f.mu.Lock()
	f.closed = true
	if f.cancel != nil {
		f.cancel()
	}
	f.mu.Unlock()

	f.wg.Wait()
}

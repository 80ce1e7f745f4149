package weather

import (
	"errors"
	"fmt"
)

// FailureKind is the closed set of reasons a fetch can fail.
type FailureKind int

const (
	MissingCredential FailureKind = iota + 1
	Transport
	MalformedResponse
	CityNotFound
)

func (k FailureKind) String() string {
	switch k {
	case MissingCredential:
		return "missing_credential"
	case Transport:
		return "transport"
	case MalformedResponse:
		return "malformed_response"
	case CityNotFound:
		return "city_not_found"
	default:
		return fmt.Sprintf("failure_kind(%d)", int(k))
	}
}

const (
	msgMalformed    = "Failed to parse API response"
	msgCityNotFound = "City not found"
)

// FetchError carries a FailureKind and a message meant for direct display.
// Err holds the underlying cause when there is one.
type FetchError struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf reports the failure kind carried by err, if any.
func KindOf(err error) (FailureKind, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}

// FetchResult holds either a snapshot or a failure, never both. The zero
// value holds neither and is never returned by Client.Fetch.
type FetchResult struct {
	snapshot WeatherSnapshot
	ok       bool
	err      *FetchError
}

func Success(s WeatherSnapshot) FetchResult {
	return FetchResult{snapshot: s, ok: true}
}

func Failure(kind FailureKind, message string) FetchResult {
	return FetchResult{err: &FetchError{Kind: kind, Message: message}}
}

func failureWithCause(kind FailureKind, message string, cause error) FetchResult {
	return FetchResult{err: &FetchError{Kind: kind, Message: message, Err: cause}}
}

func (r FetchResult) OK() bool {
	return r.ok
}

// Snapshot returns the snapshot and true on success.
func (r FetchResult) Snapshot() (WeatherSnapshot, bool) {
	if !r.ok {
		return WeatherSnapshot{}, false
	}
	return r.snapshot, true
}

// Err returns the *FetchError on failure or nil on success.
func (r FetchResult) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// Failure returns the failure kind and message; ok is false on success.
func (r FetchResult) Failure() (kind FailureKind, message string, ok bool) {
	if r.err == nil {
		return 0, "", false
	}
	return r.err.Kind, r.err.Message, true
}

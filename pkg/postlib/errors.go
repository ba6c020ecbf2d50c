package postlib

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTriggerSpec is returned when a timer is constructed with an
	// out-of-range weekday or a malformed time-of-day string.
	ErrInvalidTriggerSpec = errors.New("invalid trigger spec")

	// ErrNotFound is returned when a local media reference does not exist.
	ErrNotFound = errors.New("media file not found")

	// ErrMalformedResponse is returned when the remote violates its response
	// contract (e.g. a missing media identifier or post id field).
	ErrMalformedResponse = errors.New("malformed response from remote")

	// ErrRateLimitExceeded is returned for any 429 response. It is never
	// retried inside the pipeline; the caller decides whether to defer the
	// post to the next scheduled cycle.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrChunkerConsumed is returned when Next is called on an already
	// drained chunk sequence.
	ErrChunkerConsumed = errors.New("chunk sequence already consumed")

	// ErrMissingCredentials is returned when any of the four credential
	// fields is empty.
	ErrMissingCredentials = errors.New("missing credential")

	// ErrEmptyReference is returned when an empty media reference is passed
	// for resolution.
	ErrEmptyReference = errors.New("empty media reference")
)

// FetchError reports a failed remote media fetch.
type FetchError struct {
	URL    string
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %q failed with status code %d", e.URL, e.Status)
}

// RemoteRequestError reports a non-2xx, non-429 response from the remote API.
// It is not retried within the current attempt.
type RemoteRequestError struct {
	Status int
}

func (e *RemoteRequestError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.Status)
}

// IncompatibleMediaError reports a media file whose category is recognized
// but whose size exceeds the category limit.
type IncompatibleMediaError struct {
	Category string
	Limit    int64
}

func (e *IncompatibleMediaError) Error() string {
	return fmt.Sprintf("%s file can not be larger than %d MiB", e.Category, e.Limit/MB)
}

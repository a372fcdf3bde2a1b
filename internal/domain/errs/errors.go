// Package errs holds the error taxonomy shared by the fetch, client and
// analytics layers. Callers classify with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the provider answered 404 or the series does not exist.
	ErrNotFound = errors.New("series not found for requested period")
	// ErrTimeout means a single attempt exceeded its deadline.
	ErrTimeout = errors.New("upstream timeout")
	// ErrUpstream covers non-success statuses other than 404 and network failures.
	ErrUpstream = errors.New("upstream error")
	// ErrExhausted is matched by *RetryError once every attempt failed.
	ErrExhausted = errors.New("retries exhausted")
	// ErrInvalidInput is returned before any network activity.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIntegrity means the response body had an unexpected shape.
	ErrIntegrity = errors.New("unexpected response shape")

	// ErrNoData is a normal outcome: the window holds no observations.
	ErrNoData = errors.New("no data for requested period")
	// ErrInsufficientData is a normal outcome: fewer than two points.
	ErrInsufficientData = errors.New("insufficient data: at least 2 values are required")
)

// RetryError reports the attempt count and the last classified cause.
type RetryError struct {
	Attempts int
	Last     error
}

func (e *RetryError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("failed after %d attempts", e.Attempts)
	}
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.Last)
}

// Is lets errors.Is(err, ErrExhausted) match without losing the cause chain.
func (e *RetryError) Is(target error) bool { return target == ErrExhausted }

func (e *RetryError) Unwrap() error { return e.Last }

// Retryable reports whether another attempt may succeed.
func Retryable(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrUpstream)
}

// Invalidf wraps ErrInvalidInput with a formatted message.
func Invalidf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, a...))
}

// Integrityf wraps ErrIntegrity with a formatted message.
func Integrityf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrIntegrity, fmt.Sprintf(format, a...))
}

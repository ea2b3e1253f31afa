// Package engine guards every dependency on the external extraction engine:
// it bounds calls by time, serializes local bootstrap, and translates
// transport failures into a typed error taxonomy so raw network errors never
// cross into the caller's domain.
package engine

import (
	"errors"
	"fmt"
)

// UnavailableError indicates the engine is unreachable or could not be
// started within the configured timeout.
type UnavailableError struct {
	Endpoint string
	Message  string
	Cause    error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction engine unavailable at %s: %s: %v", e.Endpoint, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction engine unavailable at %s: %s", e.Endpoint, e.Message)
}

func (e *UnavailableError) Unwrap() error { return e.Cause }

// TimeoutError indicates the engine is reachable but did not answer in time.
type TimeoutError struct {
	Endpoint string
	Cause    error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("extraction engine timed out at %s: %v", e.Endpoint, e.Cause)
}

func (e *TimeoutError) Unwrap() error { return e.Cause }

// ProtocolMismatchError indicates the engine answered but not with the
// contract this build expects, typically a stale engine missing the
// extraction endpoint or returning a malformed payload.
type ProtocolMismatchError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *ProtocolMismatchError) Error() string {
	return fmt.Sprintf("extraction engine protocol mismatch at %s (status %d): %s", e.Endpoint, e.Status, e.Message)
}

// UpstreamError carries an application error reported by the engine itself.
type UpstreamError struct {
	Endpoint string
	Status   int
	Detail   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("extraction engine error at %s (status %d): %s", e.Endpoint, e.Status, e.Detail)
}

// IsUnavailable reports whether err is an availability failure.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

// IsTimeout reports whether err is an engine timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

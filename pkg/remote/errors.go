package remote

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork matches every *NetworkError.
	ErrNetwork = errors.New("remote: network failure")
	// ErrService matches every *ServiceError.
	ErrService = errors.New("remote: service reported failure")
)

// NetworkError reports a request that did not complete: connectivity, a
// non-success status or a body that could not be understood.
type NetworkError struct {
	Op      string
	URL     string
	Status  int
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s %s: status %d: %s", e.Op, e.URL, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s %s: %s", e.Op, e.URL, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s %s: unexpected status %d", e.Op, e.URL, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s %s: request failed", e.Op, e.URL)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// ServiceError reports a transport-level success whose body carries a logical
// failure.
type ServiceError struct {
	Op      string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ServiceError) Is(target error) bool { return target == ErrService }

// Message extracts the text shown to the user. Remote messages win over the
// wrapped cause; fallback is used when err carries nothing printable.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var svc *ServiceError
	if errors.As(err, &svc) && svc.Message != "" {
		return svc.Message
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		if netErr.Message != "" {
			return netErr.Message
		}
		if netErr.Err != nil {
			return netErr.Err.Error()
		}
		if fallback != "" {
			return fallback
		}
		return netErr.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

package costapi

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError means the request never completed: dial failure, reset
// connection, or a canceled context.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("costapi: %s: request failed: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a completed request answered with a non-2xx status.
type HTTPError struct {
	Op         string
	StatusCode int
	Body       string // first bytes of the response body, trimmed
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("costapi: %s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("costapi: %s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// NotFound reports whether the backend answered 404.
func (e *HTTPError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// ParseError means the response body did not decode into the expected shape.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("costapi: %s: parsing response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TooLargeError means the response body exceeded the size accepted for the
// operation. Nothing is returned in that case.
type TooLargeError struct {
	Op    string
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("costapi: %s: response larger than %d bytes", e.Op, e.Limit)
}

// Kind classifies err for log fields and status lines.
func Kind(err error) string {
	var (
		netErr   *NetworkError
		httpErr  *HTTPError
		parseErr *ParseError
		bigErr   *TooLargeError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &netErr):
		return "network"
	case errors.As(err, &httpErr):
		return "http"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &bigErr):
		return "too_large"
	default:
		return "unknown"
	}
}

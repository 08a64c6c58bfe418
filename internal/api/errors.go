// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
)

var (
	// ErrMaxRetriesExceeded wraps the last failure once every attempt is used.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")

	// ErrMalformedResponse marks a body that is not a JSON document.
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is an error object reported by the API in an otherwise valid
// response. It is never retried.
type APIError struct {
	Code string
	Info string
}

func (e *APIError) Error() string {
	info := e.Info
	if info == "" {
		info = "Unknown error"
	}
	if e.Code == "" {
		return "api error: " + info
	}
	return fmt.Sprintf("api error: %s: %s", e.Code, info)
}

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// IsAPIError reports whether err carries an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

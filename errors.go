package gotenberg

import (
	"errors"
	"fmt"
)

// Sentinel errors for request construction. All of them surface before any
// network activity: a request is either fully valid or never sent.
var (
	// ErrInvalidOptionValue reports a single option field holding an
	// out-of-range or malformed value.
	ErrInvalidOptionValue = errors.New("invalid option value")

	// ErrConflictingOptions reports option fields that are individually
	// valid but jointly impossible.
	ErrConflictingOptions = errors.New("conflicting options")

	// ErrInvalidFilename reports a missing or malformed filename for a file
	// part (e.g. a markdown file without the .md extension).
	ErrInvalidFilename = errors.New("invalid filename")
)

// ServiceError is returned when the Gotenberg server rejects or fails a
// conversion. Every non-2xx response is terminal: no partial content is ever
// returned and no retry is attempted.
type ServiceError struct {
	// Status is the HTTP status code of the response.
	Status int

	// TraceID correlates the failed call with the server's logs. It is taken
	// from the Gotenberg-Trace response header, falling back to the trace
	// sent with the request.
	TraceID string

	// Message is the response body as supplied by the server.
	Message string
}

func (e *ServiceError) Error() string {
	if e.TraceID != "" {
		return fmt.Sprintf("gotenberg: conversion failed: %d: %s (trace %s)", e.Status, e.Message, e.TraceID)
	}
	return fmt.Sprintf("gotenberg: conversion failed: %d: %s", e.Status, e.Message)
}

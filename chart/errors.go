package chart

import (
	"errors"
	"fmt"
)

// Custom errors for chart operations
var (
	ErrChartNotFound = errors.New("chart not found (perhaps the name is misspelled?)")
	ErrInvalidDate   = errors.New("date argument is not a valid YYYY-MM-DD date")
)

// TransportError reports a failed or non-success HTTP exchange with the chart
// site, after any transport-level retries have been exhausted.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request for %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request for %s failed: HTTP status %d", e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError reports a required field that could not be located or coerced on
// an otherwise successful fetch. It aborts the whole snapshot; no partial
// entry lists are returned.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s", e.Field)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

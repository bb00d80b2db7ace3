package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery is returned when a query normalizes to an empty string
	ErrEmptyQuery = errors.New("query is empty after normalization")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCatalogClientError is returned for 4xx-class catalog responses
	ErrCatalogClientError = errors.New("catalog rejected request")

	// ErrCatalogServerError is returned for 5xx-class (transient) catalog responses
	ErrCatalogServerError = errors.New("catalog server error")

	// ErrCatalogUnreachable is returned when the catalog cannot be reached at all
	ErrCatalogUnreachable = errors.New("catalog unreachable")

	// ErrCatalogBadResponse is returned when a response body is not a list of records
	ErrCatalogBadResponse = errors.New("catalog response not in expected shape")
)

// FaultKind classifies a failed page fetch
type FaultKind int

const (
	FaultClient FaultKind = iota
	FaultServer
	FaultNetwork
	FaultParse
)

func (k FaultKind) String() string {
	switch k {
	case FaultClient:
		return "client"
	case FaultServer:
		return "server"
	case FaultNetwork:
		return "network"
	case FaultParse:
		return "parse"
	default:
		return "unknown"
	}
}

// FetchError describes a single page fetch that did not yield records.
type FetchError struct {
	Page       int // 1-based
	Offset     int
	StatusCode int // zero when no response was received
	Kind       FaultKind
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("page %d (offset %d): %s fault, status %d: %v", e.Page, e.Offset, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("page %d (offset %d): %s fault: %v", e.Page, e.Offset, e.Kind, e.Err)
}

// Unwrap exposes both the underlying cause and the sentinel for the fault kind,
// so errors.Is works against either.
func (e *FetchError) Unwrap() []error {
	return []error{e.sentinel(), e.Err}
}

func (e *FetchError) sentinel() error {
	switch e.Kind {
	case FaultClient:
		return ErrCatalogClientError
	case FaultServer:
		return ErrCatalogServerError
	case FaultNetwork:
		return ErrCatalogUnreachable
	default:
		return ErrCatalogBadResponse
	}
}

// AsFetchError extracts a *FetchError from err, if any.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

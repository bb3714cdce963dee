package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	ErrTimeout   = errors.New("operation timed out")
	ErrNotFound  = errors.New("resource not found")
	ErrCacheMiss = errors.New("cache miss")
)

// UnsupportedSourceError indicates the reference does not name a source any
// acquirer can handle. It is returned before any network or filesystem
// activity happens.
type UnsupportedSourceError struct {
	Reference string
}

func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("unsupported source reference: %s", e.Reference)
}

// NewUnsupportedSourceError creates an UnsupportedSourceError.
func NewUnsupportedSourceError(reference string) *UnsupportedSourceError {
	return &UnsupportedSourceError{Reference: reference}
}

// FetchError indicates content acquisition failed for a supported reference.
// Transient marks failures worth retrying (network flakes, timeouts) as
// opposed to definitive ones (missing repository, bad credentials).
type FetchError struct {
	Reference string
	Transient bool
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to acquire %s: %v", e.Reference, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a non-transient FetchError.
func NewFetchError(reference string, err error) *FetchError {
	return &FetchError{Reference: reference, Err: err}
}

// NewTransientFetchError creates a FetchError eligible for retry.
func NewTransientFetchError(reference string, err error) *FetchError {
	return &FetchError{Reference: reference, Transient: true, Err: err}
}

// ParseError indicates a single file could not be parsed. Extraction records
// it as a warning and continues with the remaining files.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a ParseError.
func NewParseError(path string, err error) *ParseError {
	return &ParseError{Path: path, Err: err}
}

// GraphCycleError indicates a prerequisite cycle among the named concepts.
// The orchestrator drops the offending edges and degrades it to a warning.
type GraphCycleError struct {
	Nodes []string
}

func (e *GraphCycleError) Error() string {
	return fmt.Sprintf("prerequisite cycle involving: %v", e.Nodes)
}

// NewGraphCycleError creates a GraphCycleError.
func NewGraphCycleError(nodes []string) *GraphCycleError {
	return &GraphCycleError{Nodes: nodes}
}

// RenderError indicates a document could not be rendered because an entity in
// it is malformed. One bad document never affects the others.
type RenderError struct {
	Document DocumentKind
	Entity   string
	Reason   string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot render %s document: %s: %s", e.Document, e.Entity, e.Reason)
}

// NewRenderError creates a RenderError.
func NewRenderError(kind DocumentKind, entity, reason string) *RenderError {
	return &RenderError{Document: kind, Entity: entity, Reason: reason}
}

// IsRetryable reports whether an acquisition error is worth retrying.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) {
		return true
	}
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Transient
	}
	return false
}

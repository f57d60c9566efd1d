package domain

import (
	"errors"
	"fmt"
)

var ErrNoChoices = errors.New("completion response contained no choices")

// ConfigurationError is fatal at startup.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Setting, e.Reason)
}

// UpstreamError wraps any failure of the remote completion call.
// StatusCode is zero when no HTTP response was received.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream completion failed (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream completion failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

type UnknownUseCaseError struct {
	Name string
}

func (e *UnknownUseCaseError) Error() string {
	return fmt.Sprintf("unknown use-case %q", e.Name)
}

// InputParseError reports a malformed uploaded table.
type InputParseError struct {
	Line int
	Err  error
}

func (e *InputParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("cannot parse uploaded table at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("cannot parse uploaded table: %v", e.Err)
}

func (e *InputParseError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}

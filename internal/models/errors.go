package models

import "fmt"

// MalformedInputError reports an input table defect. It always identifies
// the offending line (1-based, header is line 1) and, when known, the
// column. Parsing aborts on the first one; no output is written.
type MalformedInputError struct {
	Line   int
	Column string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("malformed input at line %d, column %s: %s", e.Line, e.Column, e.Reason)
	}
	if e.Line > 0 {
		return fmt.Sprintf("malformed input at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed input: %s", e.Reason)
}

// ConsistencyError indicates a logic violation inside the scheduling pass,
// not a data problem. It is fatal and never swallowed.
type ConsistencyError struct {
	Detail string
}

func (e *ConsistencyError) Error() string {
	return "scheduling consistency violation: " + e.Detail
}

// RenderingUnavailableError means the map artifact could not be produced.
// The schedule itself is unaffected; callers log a warning and carry on.
type RenderingUnavailableError struct {
	Reason string
	Err    error
}

func (e *RenderingUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("map rendering unavailable: %s: %v", e.Reason, e.Err)
	}
	return "map rendering unavailable: " + e.Reason
}

func (e *RenderingUnavailableError) Unwrap() error { return e.Err }

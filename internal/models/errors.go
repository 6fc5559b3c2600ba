package models

import "fmt"

// TransportError wraps a failed or empty model call. Surfaced verbatim as the
// slot's error message; there is no retry policy.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("model transport failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SummaryParseError records a malformed embedded summary. It is logged and
// recovered from silently - the markdown body still renders.
type SummaryParseError struct {
	Err error
}

func (e *SummaryParseError) Error() string {
	return fmt.Sprintf("summary parse failed: %v", e.Err)
}

func (e *SummaryParseError) Unwrap() error { return e.Err }

// MalformedListError means a trending or calendar payload was not parseable
// JSON. The whole slot fails; there is no partial-list recovery because no
// sub-element boundaries are known reliable.
type MalformedListError struct {
	Slot string
	Err  error
}

func (e *MalformedListError) Error() string {
	return fmt.Sprintf("malformed %s list payload: %v", e.Slot, e.Err)
}

func (e *MalformedListError) Unwrap() error { return e.Err }

// PersistenceError wraps a local store failure. Logged only, never surfaced
// to the user - calling flows complete in-memory regardless.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

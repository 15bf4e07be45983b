package fio

import "fmt"

// TransportError wraps any failure from the Fetcher. The client never
// retries; callers decide whether a transport failure is worth repeating.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fio: fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError wraps a failure from the Decoder: the bytes did not parse
// into the expected payload shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("fio: decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// MappingReason says what went wrong while converting a decoded record
// into the domain model. The wire format is sparse, so diagnosing a bad
// statement needs to distinguish an absent column from a mistyped one.
type MappingReason string

const (
	ReasonMissing      MappingReason = "missing"
	ReasonWrongType    MappingReason = "wrong type"
	ReasonUnknownLabel MappingReason = "unknown label"
)

// MappingError reports one field of one record that could not be mapped.
// A single MappingError fails the whole statement; partial results are
// never returned.
type MappingError struct {
	Field  string
	Column string
	Reason MappingReason
	Detail string
}

func (e *MappingError) Error() string {
	msg := fmt.Sprintf("fio: field %q (column %s): %s", e.Field, e.Column, e.Reason)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// ParseError is the single error type callers see from Parse, regardless
// of which record or field failed. Unwrap exposes the underlying
// DecodeError or MappingError.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fio: could not parse statement: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

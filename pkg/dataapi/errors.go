package dataapi

import "fmt"

// ErrorKind classifies what stage of an action round trip failed.
type ErrorKind string

const (
	// ErrorKindFormat: the request could not be serialized to extended JSON.
	ErrorKindFormat ErrorKind = "format"

	// ErrorKindTransport: the request could not be sent or the response body
	// could not be read.
	ErrorKindTransport ErrorKind = "transport"

	// ErrorKindRemote: the Data API answered with a non-2xx status.
	ErrorKindRemote ErrorKind = "remote"

	// ErrorKindDecode: the response body did not match the expected shape.
	ErrorKindDecode ErrorKind = "decode"
)

// Error is the failure value returned by every action. StatusCode is only
// set for ErrorKindRemote; all four kinds are recoverable at the call site
// and nothing is retried or logged on the caller's behalf.
type Error struct {
	Kind       ErrorKind
	StatusCode int // 0 unless Kind is ErrorKindRemote
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("dataapi: status %d: %s", e.StatusCode, e.Message)
	}
	return "dataapi: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

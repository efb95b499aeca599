package board

import (
	"errors"

	"github.com/drawwire/drawwire-server/internal/proto"
)

// Error codes for client-side failures.
const (
	ErrorConnection    = "connection"
	ErrorSerialization = "serialization"
	ErrorProtocol      = "protocol"
)

var (
	// ErrNotConnected is returned for operations on a closed client.
	ErrNotConnected = errors.New("not connected")
	// ErrAlreadyConnected is returned when Connect is called twice.
	ErrAlreadyConnected = errors.New("already connected")
)

// Error wraps a failure with a classification code.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// WrapError builds a classified error around an underlying cause.
func WrapError(code, msg string, err error) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// FromProtocolError converts a server error reply into a client error.
func FromProtocolError(pe *proto.Error) *Error {
	if pe == nil {
		return &Error{Code: ErrorProtocol, Message: "unknown protocol error"}
	}
	return &Error{Code: ErrorProtocol, Message: pe.Code + ": " + pe.Msg}
}

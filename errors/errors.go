package errors

import (
	"errors"
)

// Kind classifies every error produced by the engine.
type Kind uint8

const (
	Unknown Kind = iota
	// Overflow means some fixed buffer's capacity was exceeded.
	Overflow
	// Protocol means malformed or unexpected data on the wire.
	Protocol
	// Unsupported means the peer used a feature the engine deliberately doesn't implement.
	Unsupported
	// Transport is reported for any error coming from the transport itself.
	Transport
)

func (k Kind) String() string {
	switch k {
	case Overflow:
		return "overflow"
	case Protocol:
		return "protocol"
	case Unsupported:
		return "unsupported feature"
	case Transport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error is a comparable error value, so sentinels declared below may be matched
// both by == and errors.Is.
type Error struct {
	Message string
	Kind    Kind
}

func New(kind Kind, message string) error {
	return Error{
		Kind:    kind,
		Message: message,
	}
}

func (e Error) Error() string {
	return e.Message
}

var (
	ErrOverflow        = New(Overflow, "buffer capacity exceeded")
	ErrRequestTooLarge = New(Overflow, "request head does not fit into the output buffer")
	ErrLineTooLong     = New(Overflow, "status or header line is too long")
	ErrBufferFull      = New(Overflow, "response payload buffer is full")
	ErrReasonTooLong   = New(Overflow, "reason phrase is too long")
	ErrTooManyHeaders  = New(Overflow, "too many headers")

	ErrInvalidRequest      = New(Protocol, "invalid request")
	ErrBadStatusLine       = New(Protocol, "malformed status line")
	ErrUnsupportedProtocol = New(Protocol, "protocol is not supported")
	ErrBadHeader           = New(Protocol, "malformed header line")
	ErrBadContentLength    = New(Protocol, "invalid value for content-length header")
	ErrUnexpectedEOF       = New(Protocol, "stream ended before the response was complete")

	ErrChunkedNotSupported = New(Unsupported, "chunked transfer encoding is not supported")
)

// TransportError carries an error returned by the transport without interpreting it.
type TransportError struct {
	cause error
}

// WrapTransport marks err as a transport failure. Nil stays nil.
func WrapTransport(err error) error {
	if err == nil {
		return nil
	}

	var te TransportError
	if errors.As(err, &te) {
		return err
	}

	return TransportError{cause: err}
}

func (t TransportError) Error() string {
	return "transport: " + t.cause.Error()
}

func (t TransportError) Unwrap() error {
	return t.cause
}

// KindOf returns the kind of the error, or Unknown if it didn't originate from the engine.
func KindOf(err error) Kind {
	var (
		e  Error
		te TransportError
	)

	switch {
	case errors.As(err, &te):
		return Transport
	case errors.As(err, &e):
		return e.Kind
	default:
		return Unknown
	}
}

package parser

import (
	"github.com/indigo-web/microclient/handler"
)

// State of the response being received. States only move forward: AwaitingStatusLine,
// AwaitingHeaders, AwaitingBody, then either Complete or Failed.
type State uint8

const (
	AwaitingStatusLine State = iota
	AwaitingHeaders
	AwaitingBody
	Complete
	Failed
)

func (s State) String() string {
	switch s {
	case AwaitingStatusLine:
		return "awaiting status line"
	case AwaitingHeaders:
		return "awaiting headers"
	case AwaitingBody:
		return "awaiting body"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no more input is expected.
func (s State) Terminal() bool {
	return s == Complete || s == Failed
}

// Parser consumes response bytes pushed into it and reports recognized parts to the
// handler set by Init.
type Parser interface {
	Init(head bool, h handler.Handler)
	Feed(data []byte) error
	Close() error
	State() State
	Remaining() (n int, sized bool)
	Err() error
}

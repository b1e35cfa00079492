package handler

import (
	"github.com/indigo-web/microclient/http/proto"
	"github.com/indigo-web/microclient/http/status"
)

// Handler receives the parts of a response as soon as the parser recognizes them. Passed
// slices are valid only until the callback returns, so everything needed later must be
// copied. A non-nil error returned from any callback fails the exchange with that error.
type Handler interface {
	OnStatus(protocol proto.Proto, code status.Code, reason []byte) error
	OnHeader(key, value []byte) error
	OnBody(chunk []byte) error
	// OnComplete is called exactly once, when the response is fully received. It isn't
	// called for failed responses.
	OnComplete()
}

var _ Handler = NoOp{}

// NoOp discards the whole response.
type NoOp struct{}

func (NoOp) OnStatus(proto.Proto, status.Code, []byte) error { return nil }
func (NoOp) OnHeader(_, _ []byte) error { return nil }
func (NoOp) OnBody([]byte) error { return nil }
func (NoOp) OnComplete() {}

var _ Handler = new(Stream)

// Stream hands every body chunk to the callback as-is, skipping the rest. It suits responses
// whose size isn't known in advance, as nothing is stored.
type Stream struct {
	code     status.Code
	complete bool
	onChunk  func(chunk []byte) error
}

func NewStream(onChunk func(chunk []byte) error) *Stream {
	return &Stream{
		onChunk: onChunk,
	}
}

func (s *Stream) OnStatus(_ proto.Proto, code status.Code, _ []byte) error {
	s.code = code
	return nil
}

func (s *Stream) OnHeader(_, _ []byte) error {
	return nil
}

func (s *Stream) OnBody(chunk []byte) error {
	return s.onChunk(chunk)
}

func (s *Stream) OnComplete() {
	s.complete = true
}

func (s *Stream) Code() status.Code {
	return s.code
}

func (s *Stream) IsComplete() bool {
	return s.complete
}

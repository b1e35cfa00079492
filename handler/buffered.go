package handler

import (
	"github.com/indigo-web/microclient/config"
	"github.com/indigo-web/microclient/errors"
	"github.com/indigo-web/microclient/http/proto"
	"github.com/indigo-web/microclient/http/status"
	"github.com/indigo-web/microclient/internal/buffer"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

var _ Handler = new(Buffered)

// Buffered collects the whole response into fixed buffers. A payload that doesn't fit fails
// the exchange with errors.ErrBufferFull instead of being truncated.
type Buffered struct {
	protocol proto.Proto
	code     status.Code
	complete bool
	reason   *buffer.Buffer
	payload  *buffer.Buffer
}

// NewBuffered uses the passed memory for storing the payload and the reason phrase. Their
// capacities are the limits, lengths are ignored.
func NewBuffered(payload, reason []byte) *Buffered {
	return &Buffered{
		reason:  buffer.New(reason),
		payload: buffer.New(payload),
	}
}

// Initialize allocates the buffers of sizes taken from the config.
func Initialize(cfg *config.Config) *Buffered {
	return NewBuffered(
		make([]byte, 0, cfg.Body.BufferSize),
		make([]byte, 0, cfg.Status.ReasonSize),
	)
}

func (b *Buffered) OnStatus(protocol proto.Proto, code status.Code, reason []byte) error {
	b.protocol = protocol
	b.code = code
	b.reason.Clear()

	if b.reason.Append(reason) != nil {
		return errors.ErrReasonTooLong
	}

	return nil
}

func (b *Buffered) OnHeader(_, _ []byte) error {
	return nil
}

func (b *Buffered) OnBody(chunk []byte) error {
	if b.payload.Append(chunk) != nil {
		return errors.ErrBufferFull
	}

	return nil
}

func (b *Buffered) OnComplete() {
	b.complete = true
}

func (b *Buffered) Protocol() proto.Proto {
	return b.protocol
}

func (b *Buffered) Code() status.Code {
	return b.code
}

// Reason returns the reason phrase. The string shares the memory with the buffer, so it's
// valid until Reset.
func (b *Buffered) Reason() string {
	return uf.B2S(b.reason.Bytes())
}

// Payload returns the collected body. It's valid until Reset.
func (b *Buffered) Payload() []byte {
	return b.payload.Bytes()
}

// JSON decodes the payload into v.
func (b *Buffered) JSON(v any) error {
	return json.ConfigCompatibleWithStandardLibrary.Unmarshal(b.payload.Bytes(), v)
}

// IsComplete reports whether the whole response was received.
func (b *Buffered) IsComplete() bool {
	return b.complete
}

// Reset prepares the handler for the next response, keeping the memory.
func (b *Buffered) Reset() {
	b.protocol = proto.Unknown
	b.code = 0
	b.complete = false
	b.reason.Clear()
	b.payload.Clear()
}

package handler

import (
	"github.com/indigo-web/microclient/config"
	"github.com/indigo-web/microclient/errors"
	"github.com/indigo-web/microclient/http/proto"
	"github.com/indigo-web/microclient/http/status"
	"github.com/indigo-web/microclient/internal/buffer"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

var _ Handler = new(Recorder)

type pair struct {
	key, value string
}

// Recorder keeps response headers in a fixed arena and passes everything on to the
// underlying handler. Running out of either the arena space or the headers number fails
// the exchange.
type Recorder struct {
	next  Handler
	arena *buffer.Buffer
	pairs []pair
}

// NewRecorder records headers into the arena memory, at most n of them.
func NewRecorder(next Handler, arena []byte, n int) *Recorder {
	return &Recorder{
		next:  next,
		arena: buffer.New(arena),
		pairs: make([]pair, 0, n),
	}
}

// NewRecorderFromConfig allocates the arena using the config.
func NewRecorderFromConfig(next Handler, cfg *config.Config) *Recorder {
	return NewRecorder(
		next, make([]byte, 0, cfg.Headers.RecorderSpace), cfg.Headers.RecorderNumber,
	)
}

func (r *Recorder) OnStatus(protocol proto.Proto, code status.Code, reason []byte) error {
	return r.next.OnStatus(protocol, code, reason)
}

func (r *Recorder) OnHeader(key, value []byte) error {
	if len(r.pairs) == cap(r.pairs) {
		return errors.ErrTooManyHeaders
	}

	if len(key)+len(value) > r.arena.Available() {
		return errors.ErrOverflow
	}

	// the arena never reallocates, so finished segments stay valid until Reset
	_ = r.arena.Append(key)
	recordedKey := uf.B2S(r.arena.Finish())
	_ = r.arena.Append(value)
	r.pairs = append(r.pairs, pair{
		key:   recordedKey,
		value: uf.B2S(r.arena.Finish()),
	})

	return r.next.OnHeader(key, value)
}

func (r *Recorder) OnBody(chunk []byte) error {
	return r.next.OnBody(chunk)
}

func (r *Recorder) OnComplete() {
	r.next.OnComplete()
}

// Value returns the first value of the header, matching the key case-insensitively.
func (r *Recorder) Value(key string) (value string, found bool) {
	for i := range r.pairs {
		if strcomp.EqualFold(r.pairs[i].key, key) {
			return r.pairs[i].value, true
		}
	}

	return "", false
}

// Values returns all the values of the header. It allocates.
func (r *Recorder) Values(key string) (values []string) {
	for i := range r.pairs {
		if strcomp.EqualFold(r.pairs[i].key, key) {
			values = append(values, r.pairs[i].value)
		}
	}

	return values
}

// Len returns the number of recorded headers.
func (r *Recorder) Len() int {
	return len(r.pairs)
}

// Each calls the callback for every recorded header in the order they were received.
func (r *Recorder) Each(cb func(key, value string)) {
	for i := range r.pairs {
		cb(r.pairs[i].key, r.pairs[i].value)
	}
}

// Next returns the underlying handler.
func (r *Recorder) Next() Handler {
	return r.next
}

// Reset forgets recorded headers. The underlying handler isn't touched.
func (r *Recorder) Reset() {
	r.arena.Clear()
	r.pairs = r.pairs[:0]
}


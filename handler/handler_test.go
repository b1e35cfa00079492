package handler

import (
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/microclient/config"
	"github.com/indigo-web/microclient/errors"
	"github.com/indigo-web/microclient/http/proto"
	"github.com/indigo-web/microclient/http/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffered(t *testing.T) {
	t.Run("collect", func(t *testing.T) {
		h := NewBuffered(make([]byte, 0, 16), make([]byte, 0, 8))
		require.NoError(t, h.OnStatus(proto.HTTP11, status.OK, []byte("OK")))
		require.NoError(t, h.OnHeader([]byte("Content-Length"), []byte("5")))
		require.NoError(t, h.OnBody([]byte("he")))
		require.NoError(t, h.OnBody([]byte("llo")))
		require.False(t, h.IsComplete())
		h.OnComplete()

		assert.True(t, h.IsComplete())
		assert.Equal(t, proto.HTTP11, h.Protocol())
		assert.Equal(t, status.OK, h.Code())
		assert.Equal(t, "OK", h.Reason())
		assert.Equal(t, "hello", string(h.Payload()))
	})

	t.Run("payload overflow", func(t *testing.T) {
		h := NewBuffered(make([]byte, 0, 4), make([]byte, 0, 8))
		require.NoError(t, h.OnBody([]byte("abc")))
		require.ErrorIs(t, h.OnBody([]byte("de")), errors.ErrBufferFull)
		require.Equal(t, "abc", string(h.Payload()))
	})

	t.Run("reason overflow", func(t *testing.T) {
		h := NewBuffered(make([]byte, 0, 4), make([]byte, 0, 2))
		err := h.OnStatus(proto.HTTP10, status.NotFound, []byte("Not Found"))
		require.ErrorIs(t, err, errors.ErrReasonTooLong)
		require.Equal(t, errors.Overflow, errors.KindOf(err))
	})

	t.Run("reason is replaced", func(t *testing.T) {
		h := NewBuffered(make([]byte, 0, 4), make([]byte, 0, 8))
		require.NoError(t, h.OnStatus(proto.HTTP11, status.OK, []byte("OK")))
		require.NoError(t, h.OnStatus(proto.HTTP11, status.Created, []byte("Created")))
		require.Equal(t, "Created", h.Reason())
	})

	t.Run("json", func(t *testing.T) {
		h := Initialize(config.Default())
		require.NoError(t, h.OnBody([]byte(`{"temperature":21.5,"unit":"C"}`)))

		var reading struct {
			Temperature float64 `json:"temperature"`
			Unit        string  `json:"unit"`
		}
		require.NoError(t, h.JSON(&reading))
		require.Equal(t, 21.5, reading.Temperature)
		require.Equal(t, "C", reading.Unit)
	})

	t.Run("reset", func(t *testing.T) {
		h := Initialize(config.Default())
		require.NoError(t, h.OnStatus(proto.HTTP11, status.Created, []byte("Created")))
		require.NoError(t, h.OnBody([]byte(uniuri.New())))
		h.OnComplete()
		h.Reset()

		require.False(t, h.IsComplete())
		require.Empty(t, h.Payload())
		require.Empty(t, h.Reason())
		require.Equal(t, proto.Unknown, h.Protocol())
		require.Zero(t, h.Code())
	})
}

func TestStream(t *testing.T) {
	var received []byte
	h := NewStream(func(chunk []byte) error {
		received = append(received, chunk...)
		return nil
	})

	require.NoError(t, h.OnStatus(proto.HTTP11, status.OK, nil))
	require.NoError(t, h.OnHeader([]byte("Hello"), []byte("world")))
	require.NoError(t, h.OnBody([]byte("Hello, ")))
	require.NoError(t, h.OnBody([]byte("world!")))
	h.OnComplete()

	require.Equal(t, "Hello, world!", string(received))
	require.Equal(t, status.OK, h.Code())
	require.True(t, h.IsComplete())
}

func TestRecorder(t *testing.T) {
	t.Run("lookup", func(t *testing.T) {
		next := Initialize(config.Default())
		r := NewRecorderFromConfig(next, config.Default())
		require.NoError(t, r.OnStatus(proto.HTTP11, status.OK, []byte("OK")))
		require.NoError(t, r.OnHeader([]byte("Content-Type"), []byte("application/json")))
		require.NoError(t, r.OnHeader([]byte("X-Trace"), []byte("a")))
		require.NoError(t, r.OnHeader([]byte("x-trace"), []byte("b")))
		require.NoError(t, r.OnBody([]byte("{}")))
		r.OnComplete()

		value, found := r.Value("content-type")
		require.True(t, found)
		require.Equal(t, "application/json", value)
		_, found = r.Value("Content-Length")
		require.False(t, found)
		require.Equal(t, []string{"a", "b"}, r.Values("X-TRACE"))
		require.Equal(t, 3, r.Len())

		var keys []string
		r.Each(func(key, _ string) {
			keys = append(keys, key)
		})
		require.Equal(t, []string{"Content-Type", "X-Trace", "x-trace"}, keys)

		require.True(t, next.IsComplete())
		require.Equal(t, "{}", string(next.Payload()))
		require.Same(t, next, r.Next())
	})

	t.Run("too many headers", func(t *testing.T) {
		r := NewRecorder(NoOp{}, make([]byte, 0, 64), 1)
		require.NoError(t, r.OnHeader([]byte("A"), []byte("1")))
		require.ErrorIs(t, r.OnHeader([]byte("B"), []byte("2")), errors.ErrTooManyHeaders)
	})

	t.Run("arena overflow", func(t *testing.T) {
		r := NewRecorder(NoOp{}, make([]byte, 0, 8), 4)
		require.NoError(t, r.OnHeader([]byte("Key"), []byte("val")))
		require.ErrorIs(t, r.OnHeader([]byte("Key"), []byte("val")), errors.ErrOverflow)
		require.Equal(t, 1, r.Len())
	})

	t.Run("reset", func(t *testing.T) {
		r := NewRecorder(NoOp{}, make([]byte, 0, 8), 1)
		require.NoError(t, r.OnHeader([]byte("Key"), []byte("val")))
		r.Reset()
		require.Zero(t, r.Len())
		require.NoError(t, r.OnHeader([]byte("Key"), []byte("val")))
	})
}

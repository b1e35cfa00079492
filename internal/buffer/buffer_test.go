package buffer

import (
	"strings"
	"testing"

	"github.com/indigo-web/microclient/errors"
	"github.com/stretchr/testify/require"
)

func pushSegment(t *testing.T, buff *Buffer, text string) {
	require.NoError(t, buff.Append([]byte(text)))
	segment := buff.Finish()
	require.Equal(t, text, string(segment))
}

func BenchmarkBuffer(b *testing.B) {
	buff := Make(4096)
	smallString := []byte(strings.Repeat("a", 1023))
	bigString := []byte(strings.Repeat("a", 4097))

	b.Run("fits", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(smallString)))
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_ = buff.Append(smallString)
			buff.Clear()
		}
	})

	b.Run("overflow", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(bigString)))
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_ = buff.Append(bigString)
		}
	})
}

func TestBuffer(t *testing.T) {
	t.Run("segments", func(t *testing.T) {
		buff := Make(20)
		pushSegment(t, buff, "Hello, ")
		pushSegment(t, buff, "World!")
		require.Equal(t, "Hello, World!", string(buff.Bytes()))
		require.Equal(t, 13, buff.Len())
		require.Equal(t, 7, buff.Available())
	})

	t.Run("overflow is atomic", func(t *testing.T) {
		buff := Make(10)
		require.NoError(t, buff.AppendString("Hello"))
		require.ErrorIs(t, buff.Append([]byte("overflow")), errors.ErrOverflow)
		require.Equal(t, "Hello", string(buff.Bytes()))
		require.NoError(t, buff.AppendString("World"))
		require.ErrorIs(t, buff.AppendByte('!'), errors.ErrOverflow)
		require.ErrorIs(t, buff.AppendString("!"), errors.ErrOverflow)
		require.Equal(t, "HelloWorld", string(buff.Bytes()))
	})

	t.Run("exact fit", func(t *testing.T) {
		buff := Make(5)
		require.NoError(t, buff.AppendString("Hello"))
		require.Zero(t, buff.Available())
	})

	t.Run("never reallocates", func(t *testing.T) {
		memory := make([]byte, 0, 8)
		buff := New(memory)
		require.NoError(t, buff.AppendString("12345678"))
		require.Same(t, &memory[:1][0], &buff.Bytes()[0])
		require.Equal(t, 8, buff.Cap())
	})

	t.Run("length of supplied memory is ignored", func(t *testing.T) {
		buff := New(make([]byte, 3, 6))
		require.Zero(t, buff.Len())
		require.Equal(t, 6, buff.Available())
	})

	t.Run("segment length", func(t *testing.T) {
		buff := Make(20)
		require.NoError(t, buff.AppendString("Hello, "))
		require.Equal(t, 7, buff.SegmentLength())
		buff.Finish()
		require.Zero(t, buff.SegmentLength())
		require.NoError(t, buff.AppendString("World"))
		require.Equal(t, 5, buff.SegmentLength())
		require.Equal(t, "World", string(buff.Finish()))
	})

	t.Run("clear", func(t *testing.T) {
		buff := Make(10)
		require.NoError(t, buff.AppendString("Hello"))
		buff.Finish()
		buff.Clear()
		require.Zero(t, buff.Len())
		require.Zero(t, buff.SegmentLength())
		require.Equal(t, 10, buff.Available())
	})
}

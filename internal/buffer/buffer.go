package buffer

import (
	"github.com/indigo-web/microclient/errors"
)

// Buffer is a byte container of a fixed capacity. Its memory is supplied once and is never
// reallocated, so every write past the capacity fails instead of growing. Besides plain
// appending, it allows collecting byte sequences streamingly via segments: the current
// segment begins where the previous Finish call left off.
type Buffer struct {
	memory []byte
	begin  int
}

// New returns a buffer backed by the passed memory. The capacity of the slice becomes the
// capacity of the buffer, its length is ignored.
func New(memory []byte) *Buffer {
	return &Buffer{
		memory: memory[:0],
	}
}

// Make allocates memory for the buffer. This must be done only during initialization.
func Make(capacity int) *Buffer {
	return New(make([]byte, 0, capacity))
}

// Append writes the whole slice or nothing at all, returning errors.ErrOverflow in the latter
// case. The buffer stays unchanged on failure.
func (b *Buffer) Append(elements []byte) error {
	if len(elements) > b.Available() {
		return errors.ErrOverflow
	}

	b.memory = append(b.memory, elements...)
	return nil
}

// AppendString is the same as Append, but for strings.
func (b *Buffer) AppendString(str string) error {
	if len(str) > b.Available() {
		return errors.ErrOverflow
	}

	b.memory = append(b.memory, str...)
	return nil
}

// AppendByte writes a single byte, checking whether it won't exceed the limit.
func (b *Buffer) AppendByte(c byte) error {
	if b.Available() == 0 {
		return errors.ErrOverflow
	}

	b.memory = append(b.memory, c)
	return nil
}

// Bytes returns all the stored data. The view is valid until the next write or Clear.
func (b *Buffer) Bytes() []byte {
	return b.memory
}

func (b *Buffer) Len() int {
	return len(b.memory)
}

func (b *Buffer) Cap() int {
	return cap(b.memory)
}

// Available returns how many bytes can still be written.
func (b *Buffer) Available() int {
	return cap(b.memory) - len(b.memory)
}

// SegmentLength returns a number of bytes, taken by current segment.
func (b *Buffer) SegmentLength() int {
	return len(b.memory) - b.begin
}

// Finish completes current segment, returning its value.
func (b *Buffer) Finish() []byte {
	segment := b.memory[b.begin:]
	b.begin = len(b.memory)

	return segment
}

// Clear just resets the pointers, so old values may be overridden by new ones. The memory
// itself isn't zeroed.
func (b *Buffer) Clear() {
	b.begin = 0
	b.memory = b.memory[:0]
}

package dummy

import (
	"io"

	"github.com/indigo-web/microclient/transport"
)

var _ transport.Transport = new(Transport)

// Transport is a scripted transport: every read hands out the next piece of data it was
// initialised with, and every write is journaled. An empty piece simulates a read with no
// data available yet. After the script is over, reads keep reporting no data, unless set to
// shoot once, in which case io.EOF is returned.
type Transport struct {
	once       bool
	journaling bool
	pointer    int
	writes     int
	reads      int
	writeLimit int
	readErr    error
	writeErr   error
	pending    []byte
	written    []byte
	data       [][]byte
}

func NewMockTransport(data ...[]byte) *Transport {
	return &Transport{
		data:       data,
		journaling: true,
	}
}

func (t *Transport) Read(b []byte) (n int, err error) {
	t.reads++

	if len(t.pending) == 0 {
		if t.pointer >= len(t.data) {
			switch {
			case t.readErr != nil:
				return 0, t.readErr
			case t.once:
				return 0, io.EOF
			default:
				return 0, nil
			}
		}

		t.pending = t.data[t.pointer]
		t.pointer++
	}

	n = copy(b, t.pending)
	t.pending = t.pending[n:]

	return n, nil
}

func (t *Transport) Write(p []byte) (int, error) {
	t.writes++

	if t.writeErr != nil {
		return 0, t.writeErr
	}

	n := len(p)
	if t.writeLimit > 0 && n > t.writeLimit {
		n = t.writeLimit
	}

	if t.journaling {
		t.written = append(t.written, p[:n]...)
	}

	return n, nil
}

// Once makes the transport report io.EOF after the script is over.
func (t *Transport) Once() *Transport {
	t.once = true
	return t
}

// WriteLimit caps the number of bytes accepted by a single write.
func (t *Transport) WriteLimit(n int) *Transport {
	t.writeLimit = n
	return t
}

// FailWrites makes every write return the error.
func (t *Transport) FailWrites(err error) *Transport {
	t.writeErr = err
	return t
}

// FailReads makes the reads return the error after the script is over.
func (t *Transport) FailReads(err error) *Transport {
	t.readErr = err
	return t
}

func (t *Transport) Journaling(flag bool) *Transport {
	t.journaling = flag
	return t
}

// Written returns everything that was written so far.
func (t *Transport) Written() string {
	if !t.journaling {
		panic("mock transport: cannot access written data: journaling is disabled!")
	}

	return string(t.written)
}

// Writes returns how many times Write was called.
func (t *Transport) Writes() int {
	return t.writes
}

// Reads returns how many times Read was called.
func (t *Transport) Reads() int {
	return t.reads
}

// Reset forgets the journal and sets a new script.
func (t *Transport) Reset(data ...[]byte) {
	t.data = data
	t.pointer = 0
	t.pending = nil
	t.written = t.written[:0]
	t.writes, t.reads = 0, 0
}

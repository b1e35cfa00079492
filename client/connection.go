package client

import (
	"github.com/indigo-web/microclient/client/internal/parser/http1"
	render "github.com/indigo-web/microclient/client/internal/render/http1"
	"github.com/indigo-web/microclient/config"
	"github.com/indigo-web/microclient/http/method"
	"github.com/indigo-web/microclient/internal/buffer"
	"github.com/rs/zerolog"
)

// Connection owns all the memory an exchange needs: the output buffer for request heads,
// the buffer for reassembling split response lines and the scratch buffer transport reads
// land in. It serves one exchange at a time and may be reused after the exchange
// is completed.
type Connection struct {
	busy     bool
	out      *buffer.Buffer
	read     []byte
	renderer *render.Renderer
	parser   *http1.Parser
	log      zerolog.Logger
}

// New returns a connection working on the passed memory. Capacities of the slices are used
// as the limits, lengths are ignored.
func New(cfg *config.Config, out, line, read []byte) *Connection {
	outBuff := buffer.New(out)

	return &Connection{
		out:      outBuff,
		read:     read[:cap(read)],
		renderer: render.NewRenderer(outBuff),
		parser:   http1.NewParser(line, cfg.Headers.FoldCase),
		log:      zerolog.Nop(),
	}
}

// Initialize allocates all the buffers of sizes taken from the config. This is the only
// moment memory is allocated.
func Initialize(cfg *config.Config) *Connection {
	return New(
		cfg,
		make([]byte, 0, cfg.NET.WriteBufferSize),
		make([]byte, 0, cfg.Headers.LineBufferSize),
		make([]byte, cfg.NET.ReadBufferSize),
	)
}

// WithLogger sets the logger debug events of exchanges are written to. By default,
// nothing is logged.
func (c *Connection) WithLogger(logger zerolog.Logger) *Connection {
	c.log = logger
	return c
}

// Begin starts building a new request. Beginning a request on a connection with an exchange
// in flight is a programming error, so it panics.
func (c *Connection) Begin(m method.Method, path string) Request {
	if c.busy {
		panic("client: connection is busy: complete the exchange first")
	}

	c.log.Debug().
		Stringer("method", m).
		Str("path", path).
		Msg("request begun")

	return Request{
		conn:   c,
		method: m,
		path:   path,
	}
}

func (c *Connection) Get(path string) Request {
	return c.Begin(method.GET, path)
}

func (c *Connection) Head(path string) Request {
	return c.Begin(method.HEAD, path)
}

func (c *Connection) Post(path string) Request {
	return c.Begin(method.POST, path)
}

func (c *Connection) Put(path string) Request {
	return c.Begin(method.PUT, path)
}

func (c *Connection) Delete(path string) Request {
	return c.Begin(method.DELETE, path)
}

// Busy reports whether an exchange is in flight.
func (c *Connection) Busy() bool {
	return c.busy
}

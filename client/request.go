package client

import (
	render "github.com/indigo-web/microclient/client/internal/render/http1"
	"github.com/indigo-web/microclient/handler"
	"github.com/indigo-web/microclient/http/headers"
	"github.com/indigo-web/microclient/http/method"
	"github.com/indigo-web/microclient/transport"
)

// Request is an immutable description of a request. Every With* method returns a modified
// copy, leaving the original untouched.
type Request struct {
	conn    *Connection
	method  method.Method
	path    string
	headers []headers.Header
}

// WithHeaders appends the headers. They are rendered in the order they were added, without
// any deduplication or case normalization.
func (r Request) WithHeaders(hdrs ...headers.Header) Request {
	// the capacity is clipped, so append always copies and siblings never share memory
	r.headers = append(r.headers[:len(r.headers):len(r.headers)], hdrs...)
	return r
}

// WithHeader is a shorthand for a single header.
func (r Request) WithHeader(key, value string) Request {
	return r.WithHeaders(headers.New(key, value))
}

func (r Request) Method() method.Method {
	return r.method
}

func (r Request) Path() string {
	return r.path
}

func (r Request) Headers() []headers.Header {
	return r.headers
}

// Execute starts an exchange of a request without a body.
func (r Request) Execute(t transport.Transport, h handler.Handler) (*Exchange, error) {
	return r.ExecuteWith(t, nil, h)
}

// ExecuteWith renders the request head into the output buffer and starts the exchange. A nil
// body means no body at all, while an empty non-nil one is sent with Content-Length: 0.
// The body isn't copied, so it must stay untouched until the exchange is completed.
//
// If the head doesn't fit into the output buffer, errors.ErrRequestTooLarge is returned
// and the transport is never touched. The connection stays free in that case.
func (r Request) ExecuteWith(t transport.Transport, body []byte, h handler.Handler) (*Exchange, error) {
	c := r.conn
	if c.busy {
		panic("client: connection is busy: complete the exchange first")
	}

	length := render.NoBody
	if body != nil {
		length = len(body)
	}

	c.out.Clear()
	if err := c.renderer.Render(r.method, r.path, r.headers, length); err != nil {
		c.log.Debug().Err(err).Msg("request refused")
		return nil, err
	}

	c.log.Debug().
		Int("head", c.out.Len()).
		Int("body", len(body)).
		Msg("request encoded")

	c.busy = true
	c.parser.Init(r.method == method.HEAD, h)

	return &Exchange{
		conn:      c,
		transport: t,
		handler:   h,
		head:      c.out.Bytes(),
		body:      body,
	}, nil
}

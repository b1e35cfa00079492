package client

import (
	"context"
	"io"

	"github.com/indigo-web/microclient/errors"
	"github.com/indigo-web/microclient/handler"
	"github.com/indigo-web/microclient/transport"
)

// Exchange is a request in flight. It's driven by the caller: every Pump call makes a single
// step, either writing the rest of the request or reading a piece of the response. The
// exchange must be completed in order to get the connection back.
type Exchange struct {
	conn      *Connection
	transport transport.Transport
	handler   handler.Handler
	head      []byte
	body      []byte
	err       error
	completed bool

	// the parser is reused by the next exchange, so the outcome is kept here
	final State
}

// Pump performs at most one transport write or one transport read. A read of zero bytes
// without an error isn't a failure, there's just nothing to consume yet. Once the exchange
// is done, Pump does nothing and returns the error the response failed with, if any.
func (e *Exchange) Pump() error {
	e.mustBeActive()

	if e.Done() {
		return e.Err()
	}

	switch {
	case len(e.head) > 0:
		n, err := e.write(e.head)
		e.head = e.head[n:]
		return err
	case len(e.body) > 0:
		n, err := e.write(e.body)
		e.body = e.body[n:]
		return err
	}

	n, err := e.transport.Read(e.conn.read)
	if n > 0 {
		if ferr := e.Feed(e.conn.read[:n]); ferr != nil {
			return ferr
		}

		if e.Done() {
			// the response is already complete, so whatever happened to the
			// transport afterwards doesn't concern this exchange
			return nil
		}
	}

	switch err {
	case nil:
		return nil
	case io.EOF:
		return e.Close()
	default:
		return e.fail(errors.WrapTransport(err))
	}
}

// Feed pushes response bytes into the exchange directly, bypassing the transport. Useful when
// reads are done by the caller.
func (e *Exchange) Feed(data []byte) error {
	e.mustBeActive()

	if e.err != nil {
		return e.err
	}

	before := e.conn.parser.State()
	e.conn.log.Debug().Int("bytes", len(data)).Msg("response data fed")
	err := e.conn.parser.Feed(data)
	e.logTransition(before)

	return err
}

// Close signals the end of the response stream. It completes responses delimited by the
// connection close, any other incomplete response fails.
func (e *Exchange) Close() error {
	e.mustBeActive()

	if e.err != nil {
		return e.err
	}

	before := e.conn.parser.State()
	err := e.conn.parser.Close()
	e.logTransition(before)

	return err
}

// Run pumps the exchange until it's done or the context is canceled. Cancellation leaves the
// exchange as it is, so it may be resumed by calling Run or Pump again.
func (e *Exchange) Run(ctx context.Context) error {
	for !e.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := e.Pump(); err != nil {
			return err
		}
	}

	return e.Err()
}

// Complete finishes the exchange, releasing the connection and returning the handler.
// Completing an exchange that isn't done yet is a programming error, so it panics. After
// completion the exchange must not be used anymore: Pump, Feed, Close and Complete panic.
func (e *Exchange) Complete() (*Connection, handler.Handler) {
	e.mustBeActive()

	if !e.Done() {
		panic("client: exchange isn't done yet: " + e.State().String())
	}

	e.final, e.err = e.State(), e.Err()
	e.completed = true
	e.conn.busy = false
	return e.conn, e.handler
}

// State returns the current state of the response.
func (e *Exchange) State() State {
	switch {
	case e.completed:
		return e.final
	case e.err != nil:
		return Failed
	}

	return e.conn.parser.State()
}

// Remaining returns how many body bytes are still expected. The second value is false when
// the body is delimited by the connection close.
func (e *Exchange) Remaining() (n int, sized bool) {
	if e.completed {
		return 0, false
	}

	return e.conn.parser.Remaining()
}

// Err returns the error the exchange failed with, if any.
func (e *Exchange) Err() error {
	if e.completed || e.err != nil {
		return e.err
	}

	return e.conn.parser.Err()
}

// Done reports whether the response is either complete or failed.
func (e *Exchange) Done() bool {
	return e.State().Terminal()
}

// Pending returns the number of request bytes not written yet.
func (e *Exchange) Pending() int {
	return len(e.head) + len(e.body)
}

func (e *Exchange) write(data []byte) (int, error) {
	n, err := e.transport.Write(data)
	if n < 0 || n > len(data) {
		n = 0
	}

	if err != nil {
		return n, e.fail(errors.WrapTransport(err))
	}

	e.conn.log.Debug().Int("bytes", n).Int("pending", len(data)-n).Msg("request data written")

	return n, nil
}

func (e *Exchange) mustBeActive() {
	if e.completed {
		panic("client: exchange is already completed")
	}
}

func (e *Exchange) fail(err error) error {
	e.err = err
	e.conn.log.Debug().Err(err).Msg("exchange failed")

	return err
}

func (e *Exchange) logTransition(before State) {
	state := e.conn.parser.State()
	if state == before {
		return
	}

	switch state {
	case Complete:
		e.conn.log.Debug().Msg("response complete")
	case Failed:
		e.conn.log.Debug().Err(e.conn.parser.Err()).Msg("response failed")
	}
}

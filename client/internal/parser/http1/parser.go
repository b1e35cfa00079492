package http1

import (
	"bytes"

	"github.com/indigo-web/microclient/client/internal/parser"
	"github.com/indigo-web/microclient/errors"
	"github.com/indigo-web/microclient/handler"
	"github.com/indigo-web/microclient/http/headers"
	"github.com/indigo-web/microclient/http/proto"
	"github.com/indigo-web/microclient/http/status"
	"github.com/indigo-web/microclient/internal/buffer"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

var _ parser.Parser = new(Parser)

const maxContentLength = (int(^uint(0)>>1) - 9) / 10

// Parser is a stream-based HTTP/1.x response parser. Data may be pushed in arbitrary
// pieces: lines split among multiple feeds are reassembled in the line buffer, while lines
// coming whole are parsed in-place. Either way, a line longer than the line buffer fails
// the response, so the outcome never depends on how the input was split.
type Parser struct {
	state      parser.State
	head       bool
	foldCase   bool
	chunked    bool
	lengthSeen bool
	sized      bool
	code       status.Code
	remaining  int
	err        error
	line       *buffer.Buffer
	handler    handler.Handler
}

// NewParser returns a parser reassembling split lines in the passed memory. Its capacity
// is the maximal length of the status line and of each header line.
func NewParser(line []byte, foldCase bool) *Parser {
	return &Parser{
		state:    parser.Complete,
		foldCase: foldCase,
		line:     buffer.New(line),
	}
}

// Init prepares the parser for a new response. Responses to HEAD requests are considered
// complete right after the headers, whatever the headers say.
func (p *Parser) Init(head bool, h handler.Handler) {
	*p = Parser{
		state:    parser.AwaitingStatusLine,
		head:     head,
		foldCase: p.foldCase,
		line:     p.line,
		handler:  h,
	}
	p.line.Clear()
}

// Feed consumes the whole data. Bytes past the end of the response are discarded. After the
// response is complete, feeding is a no-op. After it failed, the same error is returned
// on every call.
func (p *Parser) Feed(data []byte) error {
	switch p.state {
	case parser.AwaitingStatusLine:
		goto statusLine
	case parser.AwaitingHeaders:
		goto headerLine
	case parser.AwaitingBody:
		goto body
	case parser.Complete:
		return nil
	case parser.Failed:
		return p.err
	default:
		panic("BUG: response parser: unknown state")
	}

statusLine:
	{
		line, rest, ok, err := p.nextLine(data)
		if err != nil {
			return p.fail(err)
		}

		if !ok {
			return nil
		}

		if err = p.parseStatusLine(line); err != nil {
			return p.fail(err)
		}

		data = rest
		p.state = parser.AwaitingHeaders
		goto headerLine
	}

headerLine:
	{
		line, rest, ok, err := p.nextLine(data)
		if err != nil {
			return p.fail(err)
		}

		if !ok {
			return nil
		}

		data = rest

		if len(line) == 0 {
			goto headersCompleted
		}

		if err = p.parseHeaderLine(line); err != nil {
			return p.fail(err)
		}

		goto headerLine
	}

headersCompleted:
	switch {
	case p.head, status.BodyForbidden(p.code):
		p.remaining = 0
		p.complete()
		return nil
	case p.chunked:
		return p.fail(errors.ErrChunkedNotSupported)
	case p.sized && p.remaining == 0:
		p.complete()
		return nil
	}

	p.state = parser.AwaitingBody

body:
	if len(data) == 0 {
		return nil
	}

	if !p.sized {
		if err := p.handler.OnBody(data); err != nil {
			return p.fail(err)
		}

		return nil
	}

	if len(data) > p.remaining {
		data = data[:p.remaining]
	}

	if err := p.handler.OnBody(data); err != nil {
		return p.fail(err)
	}

	p.remaining -= len(data)
	if p.remaining == 0 {
		p.complete()
	}

	return nil
}

// Close signals the end of the stream. A body without Content-Length ends exactly here,
// any other incomplete response fails with errors.ErrUnexpectedEOF.
func (p *Parser) Close() error {
	switch p.state {
	case parser.Complete:
		return nil
	case parser.Failed:
		return p.err
	case parser.AwaitingBody:
		if !p.sized {
			p.complete()
			return nil
		}
	}

	return p.fail(errors.ErrUnexpectedEOF)
}

func (p *Parser) State() parser.State {
	return p.state
}

// Remaining returns how many body bytes are still expected. The second value is false when
// the body is delimited by the end of the stream.
func (p *Parser) Remaining() (n int, sized bool) {
	return p.remaining, p.sized
}

// Err returns the error the response failed with, if any.
func (p *Parser) Err() error {
	return p.err
}

// nextLine returns a line without the trailing CRLF (or bare LF) and the data following
// it. If the line isn't completed yet, its beginning is stored and ok is false.
func (p *Parser) nextLine(data []byte) (line, rest []byte, ok bool, err error) {
	lf := bytes.IndexByte(data, '\n')
	if lf == -1 {
		if p.line.Append(data) != nil {
			return nil, nil, false, errors.ErrLineTooLong
		}

		return nil, nil, false, nil
	}

	if p.line.SegmentLength() == 0 {
		if lf > p.line.Cap() {
			return nil, nil, false, errors.ErrLineTooLong
		}

		line = data[:lf]
	} else {
		if p.line.Append(data[:lf]) != nil {
			return nil, nil, false, errors.ErrLineTooLong
		}

		line = p.line.Finish()
		// the memory stays untouched until the next append, so the line may still be
		// referenced during this iteration
		p.line.Clear()
	}

	return rstripCR(line), data[lf+1:], true, nil
}

func (p *Parser) parseStatusLine(line []byte) error {
	sp := bytes.IndexByte(line, ' ')
	if sp == -1 {
		return errors.ErrBadStatusLine
	}

	protocol := proto.FromBytes(line[:sp])
	if protocol == proto.Unknown {
		if bytes.HasPrefix(line, []byte("HTTP/")) {
			return errors.ErrUnsupportedProtocol
		}

		return errors.ErrBadStatusLine
	}

	line = line[sp+1:]
	if len(line) < 3 || (len(line) > 3 && line[3] != ' ') {
		return errors.ErrBadStatusLine
	}

	var code status.Code
	for _, char := range line[:3] {
		if char < '0' || char > '9' {
			return errors.ErrBadStatusLine
		}

		code = code*10 + status.Code(char-'0')
	}

	if code < 100 {
		return errors.ErrBadStatusLine
	}

	var reason []byte
	if len(line) > 3 {
		reason = line[4:]
	}

	p.code = code

	return p.handler.OnStatus(protocol, code, reason)
}

func (p *Parser) parseHeaderLine(line []byte) error {
	colon := bytes.IndexByte(line, ':')
	if colon <= 0 {
		return errors.ErrBadHeader
	}

	key, value := line[:colon], trimOWS(line[colon+1:])

	switch {
	case p.matches(key, headers.ContentLength):
		if p.lengthSeen {
			break
		}

		length, ok := parseContentLength(value)
		if !ok {
			return errors.ErrBadContentLength
		}

		p.lengthSeen = true
		p.sized = true
		p.remaining = length
	case p.matches(key, headers.TransferEncoding):
		p.chunked = p.chunked || containsChunked(value)
	}

	return p.handler.OnHeader(key, value)
}

func (p *Parser) matches(key []byte, name string) bool {
	if p.foldCase {
		return strcomp.EqualFold(uf.B2S(key), name)
	}

	return uf.B2S(key) == name
}

func (p *Parser) complete() {
	p.state = parser.Complete
	p.handler.OnComplete()
}

func (p *Parser) fail(err error) error {
	p.state = parser.Failed
	p.err = err

	return err
}

func parseContentLength(value []byte) (length int, ok bool) {
	if len(value) == 0 {
		return 0, false
	}

	for _, char := range value {
		if char < '0' || char > '9' || length > maxContentLength {
			return 0, false
		}

		length = length*10 + int(char-'0')
	}

	return length, true
}

// containsChunked looks for the chunked token among comma-separated transfer codings.
func containsChunked(value []byte) bool {
	for len(value) > 0 {
		var token []byte
		comma := bytes.IndexByte(value, ',')
		if comma == -1 {
			token, value = value, nil
		} else {
			token, value = value[:comma], value[comma+1:]
		}

		if strcomp.EqualFold(uf.B2S(trimOWS(token)), headers.Chunked) {
			return true
		}
	}

	return false
}

func trimOWS(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}

	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}

	return b
}

func rstripCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		b = b[:len(b)-1]
	}

	return b
}

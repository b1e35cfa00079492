package http1

import (
	"strconv"
	"strings"

	"github.com/indigo-web/microclient/errors"
	"github.com/indigo-web/microclient/http/headers"
	"github.com/indigo-web/microclient/http/method"
	"github.com/indigo-web/microclient/http/proto"
	"github.com/indigo-web/microclient/internal/buffer"
)

const (
	contentLength = headers.ContentLength + ": "
	crlf          = "\r\n"
	// maxDigits fits any int64
	maxDigits = 20
)

// NoBody is passed as the content length of requests without a body. No Content-Length
// header is rendered for them.
const NoBody = -1

// Renderer serializes request heads into the output buffer. The body is never copied there:
// it's sent from the caller's memory straight after the head.
type Renderer struct {
	buff *buffer.Buffer
}

func NewRenderer(buff *buffer.Buffer) *Renderer {
	return &Renderer{
		buff: buff,
	}
}

// Render writes the request line, the headers in the order they are passed, Content-Length
// if the length isn't NoBody, and the terminating empty line. The size of the head is
// calculated in advance: if it doesn't fit into the free space of the buffer,
// errors.ErrRequestTooLarge is returned and the buffer stays untouched.
func (r *Renderer) Render(m method.Method, path string, hdrs []headers.Header, length int) error {
	if err := validate(m, path, hdrs); err != nil {
		return err
	}

	var digitsBuff [maxDigits]byte
	digits := digitsBuff[:0]
	if length != NoBody {
		if length < 0 {
			return errors.ErrInvalidRequest
		}

		digits = strconv.AppendInt(digits, int64(length), 10)
	}

	if headSize(m, path, hdrs, len(digits)) > r.buff.Available() {
		return errors.ErrRequestTooLarge
	}

	// the size was checked above, so none of the appends may fail
	_ = r.buff.AppendString(m.String())
	_ = r.buff.AppendByte(' ')
	_ = r.buff.AppendString(path)
	_ = r.buff.AppendByte(' ')
	_ = r.buff.AppendString(proto.HTTP11.String())
	_ = r.buff.AppendString(crlf)

	for _, header := range hdrs {
		_ = r.buff.AppendString(header.Key)
		_ = r.buff.AppendString(": ")
		_ = r.buff.AppendString(header.Value)
		_ = r.buff.AppendString(crlf)
	}

	if len(digits) > 0 {
		_ = r.buff.AppendString(contentLength)
		_ = r.buff.Append(digits)
		_ = r.buff.AppendString(crlf)
	}

	_ = r.buff.AppendString(crlf)

	return nil
}

func headSize(m method.Method, path string, hdrs []headers.Header, digits int) int {
	size := len(m.String()) + 1 + len(path) + 1 + len(proto.HTTP11.String()) + len(crlf)

	for _, header := range hdrs {
		size += len(header.Key) + len(": ") + len(header.Value) + len(crlf)
	}

	if digits > 0 {
		size += len(contentLength) + digits + len(crlf)
	}

	return size + len(crlf)
}

func validate(m method.Method, path string, hdrs []headers.Header) error {
	if len(m.String()) == 0 || len(path) == 0 || strings.ContainsAny(path, " \r\n") {
		return errors.ErrInvalidRequest
	}

	for _, header := range hdrs {
		if len(header.Key) == 0 || strings.ContainsAny(header.Key, ":\r\n") ||
			strings.ContainsAny(header.Value, "\r\n") {
			return errors.ErrInvalidRequest
		}
	}

	return nil
}

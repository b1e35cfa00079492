package headers

// Header is a single header field. Neither key nor value are owned by the engine: the
// request renderer copies them into its own buffer right away.
type Header struct {
	Key, Value string
}

// New is a shorthand for constructing a Header.
func New(key, value string) Header {
	return Header{Key: key, Value: value}
}

const (
	Host             = "Host"
	ContentType      = "Content-Type"
	ContentLength    = "Content-Length"
	TransferEncoding = "Transfer-Encoding"
	UserAgent        = "User-Agent"
	Connection       = "Connection"
	Accept           = "Accept"
)

// Chunked is the only transfer coding the engine recognizes.
const Chunked = "chunked"

package transport

// Transport is a byte-level duplex the engine is pumped over. It is never trusted to move
// everything at once: both operations may process fewer bytes than asked.
//
// Read fills the buffer with whatever is available. Returning 0 bytes and a nil error means
// "no data yet, retry later", while io.EOF means that the stream has ended. Any other error is
// passed to the caller as is.
//
// Write may accept fewer bytes than given (but never more). The rest is retried on the next
// pump.
type Transport interface {
	Read(b []byte) (n int, err error)
	Write(b []byte) (n int, err error)
}

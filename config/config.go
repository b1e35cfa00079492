package config

import (
	"time"
)

type (
	NET struct {
		// WriteBufferSize is the capacity of the connection's output buffer. The request line,
		// all the headers and the terminating blank line must fit into it, otherwise the request
		// is refused before anything is sent. The body isn't stored there.
		WriteBufferSize int
		// ReadBufferSize is the capacity of the scratch buffer transport reads land in. Bigger
		// values mean fewer reads per response, nothing more.
		ReadBufferSize int
		// PollTimeout limits how long a single read or write on a socket transport may block.
		// Running out of it isn't an error, it just means "no data yet".
		PollTimeout time.Duration
	}

	Headers struct {
		// LineBufferSize limits the length of the status line and of every header line. Lines
		// split among multiple reads are reassembled in a buffer of this size. Overflowing it
		// fails the response.
		LineBufferSize int
		// FoldCase enables ASCII case-insensitive matching of Content-Length and
		// Transfer-Encoding header names. Disabled by default: the minimal engine matches
		// them as-is.
		FoldCase bool `test:"nullable"`
		// RecorderSpace is the amount of memory handler.Recorder may use for keys and values.
		RecorderSpace int
		// RecorderNumber is the maximal number of headers handler.Recorder keeps.
		RecorderNumber int
	}

	Body struct {
		// BufferSize is the capacity of the payload buffer for handlers initialized from the
		// config. Responses with bigger bodies fail instead of being truncated.
		BufferSize int
	}

	Status struct {
		// ReasonSize is the capacity of the buffer storing the reason phrase.
		ReasonSize int
	}
)

// Config holds sizes of all the fixed buffers and a few behavioural switches. Everything is
// allocated once, when a connection or a handler is initialized, and never grows afterwards.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	NET     NET
	Headers Headers
	Body    Body
	Status  Status
}

// Default returns default config. Sizes are picked for small telemetry-style exchanges.
func Default() *Config {
	return &Config{
		NET: NET{
			WriteBufferSize: 1024,
			ReadBufferSize:  512,
			PollTimeout:     100 * time.Millisecond,
		},
		Headers: Headers{
			LineBufferSize: 256,
			FoldCase:       false,
			RecorderSpace:  1024,
			RecorderNumber: 16,
		},
		Body: Body{
			BufferSize: 1024,
		},
		Status: Status{
			ReasonSize: 128,
		},
	}
}

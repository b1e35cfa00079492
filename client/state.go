package client

import (
	"github.com/indigo-web/microclient/client/internal/parser"
)

// State of an exchange. See the constants below for possible values.
type State = parser.State

const (
	AwaitingStatusLine = parser.AwaitingStatusLine
	AwaitingHeaders    = parser.AwaitingHeaders
	AwaitingBody       = parser.AwaitingBody
	Complete           = parser.Complete
	Failed             = parser.Failed
)

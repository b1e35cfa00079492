package status

type Code uint16

// The codes an embedded client usually needs to branch on. Any other 3-digit code is
// still accepted by the parser, it just has no name here.
const (
	Continue           Code = 100 // RFC 9110, 15.2.1
	SwitchingProtocols Code = 101 // RFC 9110, 15.2.2

	OK        Code = 200 // RFC 9110, 15.3.1
	Created   Code = 201 // RFC 9110, 15.3.2
	Accepted  Code = 202 // RFC 9110, 15.3.3
	NoContent Code = 204 // RFC 9110, 15.3.5

	MovedPermanently  Code = 301 // RFC 9110, 15.4.2
	Found             Code = 302 // RFC 9110, 15.4.3
	NotModified       Code = 304 // RFC 9110, 15.4.5
	TemporaryRedirect Code = 307 // RFC 9110, 15.4.8

	BadRequest            Code = 400 // RFC 9110, 15.5.1
	Unauthorized          Code = 401 // RFC 9110, 15.5.2
	Forbidden             Code = 403 // RFC 9110, 15.5.4
	NotFound              Code = 404 // RFC 9110, 15.5.5
	MethodNotAllowed      Code = 405 // RFC 9110, 15.5.6
	RequestTimeout        Code = 408 // RFC 9110, 15.5.9
	RequestEntityTooLarge Code = 413 // RFC 9110, 15.5.14
	TooManyRequests       Code = 429 // RFC 6585, 4

	InternalServerError Code = 500 // RFC 9110, 15.6.1
	NotImplemented      Code = 501 // RFC 9110, 15.6.2
	BadGateway          Code = 502 // RFC 9110, 15.6.3
	ServiceUnavailable  Code = 503 // RFC 9110, 15.6.4
	GatewayTimeout      Code = 504 // RFC 9110, 15.6.5
)

// Class returns the first digit of the code, e.g. 2 for 204.
func (c Code) Class() int {
	return int(c) / 100
}

// IsSuccess reports 2xx codes.
func (c Code) IsSuccess() bool {
	return c.Class() == 2
}

// BodyForbidden reports whether a response with the code never carries a body,
// regardless of its Content-Length.
func BodyForbidden(c Code) bool {
	return c.Class() == 1 || c == NoContent || c == NotModified
}

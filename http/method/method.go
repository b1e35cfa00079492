package method

type Method uint8

const (
	Unknown Method = iota
	GET
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH
)

var names = [...]string{
	Unknown: "",
	GET:     "GET",
	HEAD:    "HEAD",
	POST:    "POST",
	PUT:     "PUT",
	DELETE:  "DELETE",
	CONNECT: "CONNECT",
	OPTIONS: "OPTIONS",
	TRACE:   "TRACE",
	PATCH:   "PATCH",
}

// String returns the token of the method as it is rendered on the wire. Unknown and
// out-of-range values result in an empty string.
func (m Method) String() string {
	if int(m) >= len(names) {
		return ""
	}

	return names[m]
}

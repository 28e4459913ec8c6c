package http11

import "fmt"

// Request is a fully parsed HTTP/1.1 request message (spec §3). It is a
// plain owned value — once the parser hands one to the dispatch pipeline,
// no further mutation of the underlying connection buffer can reach it.
type Request struct {
	Method     string
	MethodID   uint8
	Path       string // path component as received (not percent-decoded), no query string
	Query      string // raw query string, without the leading '?'
	RawTarget  string // request-target exactly as it appeared on the wire
	ProtoMajor int
	ProtoMinor int
	Header     Header
	Body       []byte
}

// Proto formats the request's HTTP version as "HTTP/major.minor".
func (r *Request) Proto() string {
	return fmt.Sprintf("HTTP/%d.%d", r.ProtoMajor, r.ProtoMinor)
}

// IsSafeMethod reports whether the method is one of GET/HEAD/OPTIONS/TRACE,
// i.e. does not mutate server-side filesystem state (spec glossary).
func (r *Request) IsSafeMethod() bool {
	switch r.MethodID {
	case MethodGET, MethodHEAD, MethodOPTIONS, MethodTRACE:
		return true
	default:
		return false
	}
}

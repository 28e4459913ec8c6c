package http11

import (
	"strconv"
)

// Response is a fully formed HTTP/1.1 response message (spec §3), ready
// for serialization by Bytes. Responses are always length
// delimited — this server never emits Transfer-Encoding: chunked (spec §6).
type Response struct {
	Status     int
	ProtoMajor int
	ProtoMinor int
	Header     Header
	Body       []byte
}

// NewResponse returns a Response defaulting to HTTP/1.1 with an empty
// header set and body.
func NewResponse(status int) *Response {
	return &Response{
		Status:     status,
		ProtoMajor: ProtoHTTP11Major,
		ProtoMinor: ProtoHTTP11Minor,
		Header:     NewHeader(),
	}
}

// SetBody assigns body and sets Content-Length accordingly. Callers that
// need HEAD semantics (headers only, no body on the wire) should call this
// to compute Content-Length and then clear Body before writing.
func (r *Response) SetBody(body []byte) {
	r.Body = body
	r.Header.Set("Content-Length", strconv.Itoa(len(body)))
}

// Bytes serializes the status line, headers and body into a single buffer
// suitable for queuing on a connection's write side (spec §4.7):
//
//	HTTP/<ver> <code> <reason>\r\n
//	Name: Value\r\n   (one per header)
//	\r\n
//	<body>
func (r *Response) Bytes() []byte {
	major, minor := r.ProtoMajor, r.ProtoMinor
	if major == 0 && minor == 0 {
		major, minor = ProtoHTTP11Major, ProtoHTTP11Minor
	}

	buf := make([]byte, 0, 256+len(r.Body))
	buf = append(buf, "HTTP/"...)
	buf = strconv.AppendInt(buf, int64(major), 10)
	buf = append(buf, '.')
	buf = strconv.AppendInt(buf, int64(minor), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(r.Status), 10)
	buf = append(buf, ' ')
	buf = append(buf, StatusText(r.Status)...)
	buf = append(buf, '\r', '\n')

	r.Header.VisitAll(func(key, value string) {
		buf = append(buf, headerDisplayName(key)...)
		buf = append(buf, ':', ' ')
		buf = append(buf, value...)
		buf = append(buf, '\r', '\n')
	})

	buf = append(buf, '\r', '\n')
	buf = append(buf, r.Body...)
	return buf
}

// headerDisplayName renders a lowercased header key in conventional
// Train-Case for the wire (Content-Length, not content-length). Purely
// cosmetic: HTTP header names are case-insensitive.
func headerDisplayName(key string) string {
	b := []byte(key)
	upperNext := true
	for i, c := range b {
		if upperNext && c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
		upperNext = c == '-'
	}
	return string(b)
}

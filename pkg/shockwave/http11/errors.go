package http11

import "errors"

// Parser errors.
var (
	// ErrInvalidRequestLine indicates the request line is malformed.
	// Request line format: METHOD SP PATH SP HTTP/X.Y
	ErrInvalidRequestLine = errors.New("http11: invalid request line")

	// ErrInvalidMethod names a method token with characters outside RFC
	// 7230's token grammar. The parser does not return it: such a token is
	// reported as ErrInvalidRequestLine.
	ErrInvalidMethod = errors.New("http11: invalid HTTP method")

	// ErrMethodNotImplemented indicates a syntactically valid method token
	// this server does not implement a handler for — maps to 501.
	ErrMethodNotImplemented = errors.New("http11: method not implemented")

	// ErrInvalidProtocol names a malformed version token. The parser does
	// not return it: every unrecognized version token is reported as
	// ErrUnsupportedVersion.
	ErrInvalidProtocol = errors.New("http11: invalid HTTP version token")

	// ErrUnsupportedVersion indicates a version token other than HTTP/0.9,
	// 1.0, 1.1, 2.0 or 3.0 — maps to 505 rather than 400.
	ErrUnsupportedVersion = errors.New("http11: unsupported HTTP version")

	// ErrInvalidHeader indicates a header line without a ": " separator.
	ErrInvalidHeader = errors.New("http11: invalid HTTP header")

	// ErrHeadTooLarge indicates the request head exceeded MaxHeadSize
	// before a terminating CRLF CRLF was found.
	ErrHeadTooLarge = errors.New("http11: request head too large")

	// ErrInvalidContentLength indicates a malformed Content-Length value.
	ErrInvalidContentLength = errors.New("http11: invalid Content-Length")

	// ErrChunkedEncoding indicates malformed chunked transfer framing:
	// a bad hex size or a missing CRLF. A buffer that merely ends early is
	// not an error; the decoder reports it as incomplete.
	ErrChunkedEncoding = errors.New("http11: chunked encoding error")

	// ErrBodyTooLarge indicates the decoded body (length-delimited or
	// chunked) exceeds the configured body_size_limit — maps to 413.
	ErrBodyTooLarge = errors.New("http11: body exceeds size limit")
)

// Connection errors.
var (
	// ErrConnectionClosed indicates the peer closed the connection.
	ErrConnectionClosed = errors.New("http11: connection closed")
)

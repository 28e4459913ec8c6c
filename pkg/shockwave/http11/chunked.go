package http11

import "bytes"

// DecodeChunked decodes an HTTP/1.1 chunked body (RFC 7230 §4.1) out of
// buf, which holds everything read past the request head so far. It does
// not block and does not own an io.Reader: the event loop can only ever
// offer the bytes currently sitting in the connection's read buffer, never
// wait for more, so the decoder takes a full buffer and reports whether
// that buffer contains a complete body yet.
//
//	chunk        = chunk-size CRLF chunk-data CRLF
//	chunk-size   = 1*HEXDIG [ ";" chunk-ext ]
//	last-chunk   = "0" CRLF
//	trailer-part = *( field-line CRLF )
//	chunked-body = *chunk last-chunk trailer-part CRLF
//
// Returns the decoded body, the number of leading bytes of buf consumed
// (the offset of the byte right after the body's final CRLF), and ok=true
// once a complete body has been assembled. ok=false with a nil err means
// buf is a valid but incomplete prefix — wait for more bytes. Chunk
// extensions are accepted but ignored; trailer fields are read and
// discarded per spec §4.2.
func DecodeChunked(buf []byte, maxBodySize int64) (body []byte, consumed int, ok bool, err error) {
	pos := 0
	var decoded []byte

	for {
		lineEnd := bytes.IndexByte(buf[pos:], '\n')
		if lineEnd < 0 {
			return nil, 0, false, nil
		}
		lineEnd += pos

		line := buf[pos:lineEnd]
		if len(line) == 0 || line[len(line)-1] != '\r' {
			return nil, 0, false, ErrChunkedEncoding
		}
		line = line[:len(line)-1]
		if idx := bytes.IndexByte(line, ';'); idx >= 0 {
			line = line[:idx]
		}
		line = bytes.TrimSpace(line)

		size, err := parseHexSize(line)
		if err != nil {
			return nil, 0, false, err
		}

		pos = lineEnd + 1

		if size == 0 {
			trailerEnd, ok := scanTrailers(buf, pos)
			if !ok {
				return nil, 0, false, nil
			}
			return decoded, trailerEnd, true, nil
		}

		need := pos + int(size) + 2
		if need > len(buf) {
			return nil, 0, false, nil
		}
		if buf[pos+int(size)] != '\r' || buf[pos+int(size)+1] != '\n' {
			return nil, 0, false, ErrChunkedEncoding
		}

		decoded = append(decoded, buf[pos:pos+int(size)]...)
		if maxBodySize > 0 && int64(len(decoded)) > maxBodySize {
			return nil, 0, false, ErrBodyTooLarge
		}
		pos += int(size) + 2
	}
}

// parseHexSize parses a chunk-size token (hex digits, no sign, no 0x
// prefix) into a byte count.
func parseHexSize(line []byte) (uint64, error) {
	if len(line) == 0 {
		return 0, ErrChunkedEncoding
	}
	var size uint64
	for _, b := range line {
		size <<= 4
		switch {
		case b >= '0' && b <= '9':
			size |= uint64(b - '0')
		case b >= 'a' && b <= 'f':
			size |= uint64(b-'a') + 10
		case b >= 'A' && b <= 'F':
			size |= uint64(b-'A') + 10
		default:
			return 0, ErrChunkedEncoding
		}
	}
	return size, nil
}

// scanTrailers skips trailer field-lines starting at pos and returns the
// offset just past the terminating blank-line CRLF. Trailer content is
// discarded; spec §4.2 says trailers are ignored.
func scanTrailers(buf []byte, pos int) (end int, ok bool) {
	for {
		if pos+1 < len(buf) && buf[pos] == '\r' && buf[pos+1] == '\n' {
			return pos + 2, true
		}
		nl := bytes.IndexByte(buf[pos:], '\n')
		if nl < 0 {
			return 0, false
		}
		pos += nl + 1
	}
}

package http11

import (
	"bytes"
	"strings"
	"testing"
)

func TestResponseBytesStatusLine(t *testing.T) {
	r := NewResponse(404)
	r.SetBody([]byte("not found"))

	out := string(r.Bytes())
	if !strings.HasPrefix(out, "HTTP/1.1 404 Not Found\r\n") {
		t.Fatalf("status line wrong, got: %q", out)
	}
	if !strings.Contains(out, "Content-Length: 9\r\n") {
		t.Fatalf("missing Content-Length header, got: %q", out)
	}
	if !strings.HasSuffix(out, "not found") {
		t.Fatalf("missing body, got: %q", out)
	}
}

func TestResponseBytesHeaderFraming(t *testing.T) {
	r := NewResponse(200)
	r.Header.Set("Host", "localhost")
	r.SetBody([]byte("hi"))

	out := r.Bytes()
	if !bytes.Contains(out, []byte("\r\n\r\nhi")) {
		t.Fatalf("expected blank-line/body framing, got: %q", out)
	}
}

func TestResponseUnknownStatus(t *testing.T) {
	r := NewResponse(999)
	out := string(r.Bytes())
	if !strings.HasPrefix(out, "HTTP/1.1 999 Unknown Status\r\n") {
		t.Fatalf("unexpected status line: %q", out)
	}
}

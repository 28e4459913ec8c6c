package handler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aniasse/localhost/internal/config"
	"github.com/aniasse/localhost/pkg/shockwave/errs"
	"github.com/aniasse/localhost/pkg/shockwave/http11"
)

func newGetRequest() *http11.Request {
	return &http11.Request{
		Method:     "GET",
		MethodID:   http11.MethodGET,
		RawTarget:  "/index.html",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http11.NewHeader(),
	}
}

func TestGetServesFileContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	if err := os.WriteFile(path, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	resp, err := Get(newGetRequest(), "x", path)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.Status != 200 {
		t.Fatalf("Status = %d, want 200", resp.Status)
	}
	if resp.Header.Get("content-length") != "2" {
		t.Fatalf("Content-Length = %q, want 2", resp.Header.Get("content-length"))
	}
	if string(resp.Body) != "hi" {
		t.Fatalf("Body = %q, want hi", resp.Body)
	}
}

func TestGetMissingFileIs404(t *testing.T) {
	_, err := Get(newGetRequest(), "x", filepath.Join(t.TempDir(), "missing.html"))
	if s, ok := err.(*errs.Status); !ok || s.Code != 404 {
		t.Fatalf("err = %v, want *errs.Status{Code:404}", err)
	}
}

func TestHeadMissingFileIs404(t *testing.T) {
	req := newGetRequest()
	req.MethodID = http11.MethodHEAD
	_, err := Head(req, "x", filepath.Join(t.TempDir(), "missing.html"))
	if s, ok := err.(*errs.Status); !ok || s.Code != 404 {
		t.Fatalf("err = %v, want *errs.Status{Code:404} (see DESIGN.md open question decision)", err)
	}
}

func TestHeadReportsSizeWithEmptyBody(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	resp, err := Head(newGetRequest(), "x", path)
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if resp.Header.Get("content-length") != "5" {
		t.Fatalf("Content-Length = %q, want 5", resp.Header.Get("content-length"))
	}
	if len(resp.Body) != 0 {
		t.Fatalf("Body = %q, want empty", resp.Body)
	}
}

func TestOptionsListsAllowedMethods(t *testing.T) {
	route := &config.Route{Methods: []string{"GET", "HEAD", "OPTIONS"}}
	resp, err := Options("x", route)
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if resp.Header.Get("allow") != "GET, HEAD, OPTIONS" {
		t.Fatalf("Allow = %q", resp.Header.Get("allow"))
	}
}

func TestTraceStripsSensitiveHeaders(t *testing.T) {
	req := newGetRequest()
	req.Method = "TRACE"
	req.MethodID = http11.MethodTRACE
	req.Header.Set("cookie", "secret=1")
	req.Header.Set("authorization", "Bearer abc")
	req.Header.Set("accept", "text/html")

	resp, err := Trace(req, "x")
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	body := string(resp.Body)
	if strings.Contains(body, "secret=1") || strings.Contains(body, "Bearer abc") {
		t.Fatalf("Trace body leaked sensitive header: %q", body)
	}
	if !strings.Contains(body, "accept: text/html") {
		t.Fatalf("Trace body missing echoed header: %q", body)
	}
}

func TestTraceMaxForwardsZero(t *testing.T) {
	req := newGetRequest()
	req.Header.Set("max-forwards", "0")
	_, err := Trace(req, "x")
	if s, ok := err.(*errs.Status); !ok || s.Code != 400 {
		t.Fatalf("err = %v, want *errs.Status{Code:400}", err)
	}
}

func TestTraceAppendsToExistingVia(t *testing.T) {
	req := newGetRequest()
	req.Header.Set("via", "1.1 upstream")
	resp, err := Trace(req, "downstream")
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if !strings.Contains(string(resp.Body), "via: 1.1 upstream, downstream") {
		t.Fatalf("Via not appended: %q", resp.Body)
	}
}

// Package errs maps an HTTP status code to the response body that should
// accompany it (spec §4.6), preferring a configured custom error page and
// falling back to a minimal built-in body.
package errs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aniasse/localhost/pkg/shockwave/http11"
)

// Status wraps an HTTP status code as a Go error, the idiom SPEC_FULL §A.3
// uses in place of the original's Result<Response, StatusCode>: a handler
// that cannot build a response returns (nil, &Status{Code: ...}) and the
// pipeline maps it here.
type Status struct {
	Code int
	Err  error // optional wrapped cause, for logging only
}

func (s *Status) Error() string {
	if s.Err != nil {
		return fmt.Sprintf("http11: status %d: %v", s.Code, s.Err)
	}
	return fmt.Sprintf("http11: status %d", s.Code)
}

func (s *Status) Unwrap() error { return s.Err }

// New returns a Status error for code, optionally wrapping cause.
func New(code int, cause error) error {
	return &Status{Code: code, Err: cause}
}

// Response builds the error response for code (spec §4.6): if
// customErrorPath is set and "<code>.html" exists under it, that file's
// bytes become the body; otherwise a minimal "<code> <reason>" body is
// used. Content-Type is always text/html.
func Response(code int, host, customErrorPath string) *http11.Response {
	body := []byte(fmt.Sprintf("%d %s", code, http11.StatusText(code)))

	if customErrorPath != "" {
		candidate := filepath.Join(customErrorPath, fmt.Sprintf("%d.html", code))
		if data, err := os.ReadFile(candidate); err == nil {
			body = data
		}
	}

	resp := http11.NewResponse(code)
	resp.Header.Set("Host", host)
	resp.Header.Set("Content-Type", "text/html; charset=utf-8")
	resp.SetBody(body)
	return resp
}

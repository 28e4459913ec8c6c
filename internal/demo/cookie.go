// Package demo supplies the cookie/session demo handlers spec.md §1
// names only by signature — grounded on
// original_source/src/server/sessions.rs's update_cookie/validate_cookie/
// cookie_demo — wired as config.Handler implementations so the route
// table's opaque handler-dispatch path is actually exercised.
package demo

import (
	"os"
	"strings"

	"github.com/aniasse/localhost/internal/config"
	"github.com/aniasse/localhost/pkg/shockwave/errs"
	"github.com/aniasse/localhost/pkg/shockwave/http11"
)

const sessionCookie = "session=cookie"

// standardHeaders mirrors methods.rs's safe::STANDARD_HEADERS, echoed onto
// demo responses the same way the static-file safe handlers do.
var standardHeaders = []string{"transfer-encoding"}

func echoStandardHeaders(resp *http11.Response, req *http11.Request) {
	for _, name := range standardHeaders {
		if v := req.Header.Get(name); v != "" {
			resp.Header.Set(name, v)
		}
	}
}

func hasSessionCookie(req *http11.Request) bool {
	return strings.EqualFold(req.Header.Get("cookie"), sessionCookie)
}

// SetCookie toggles the session cookie: present the cookie to clear it,
// absent to set it (sessions.rs's update_cookie).
type SetCookie struct{}

func (SetCookie) Name() string { return "demo.set-cookie" }

func (SetCookie) Handle(req *http11.Request, cfg *config.ServerConfig) (*http11.Response, error) {
	resp := http11.NewResponse(200)
	resp.Header.Set("Host", cfg.Host)

	if hasSessionCookie(req) {
		resp.Header.Set("Set-Cookie", sessionCookie+"; path=/; expires=Thu, 01 Jan 1970 00:00:00 GMT")
	} else {
		resp.Header.Set("Set-Cookie", sessionCookie+"; path=/; Max-Age=3600")
	}
	resp.SetBody(nil)
	return resp, nil
}

// ReadCookie echoes the session cookie's value, or 401 if absent
// (sessions.rs's validate_cookie/get_cookie).
type ReadCookie struct{}

func (ReadCookie) Name() string { return "demo.read-cookie" }

func (ReadCookie) Handle(req *http11.Request, cfg *config.ServerConfig) (*http11.Response, error) {
	if !hasSessionCookie(req) {
		return nil, errs.New(401, nil)
	}

	resp := http11.NewResponse(200)
	resp.Header.Set("Host", cfg.Host)
	resp.Header.Set("Cookie", req.Header.Get("cookie"))
	resp.SetBody(nil)
	return resp, nil
}

// CookieDemo serves the static cookie-demo page, echoing standard headers
// the same way the static-file safe handlers do (sessions.rs's
// cookie_demo).
type CookieDemo struct {
	Path string // defaults to "./assets/cookie-demo.html" when empty
}

func (CookieDemo) Name() string { return "demo.cookie-demo" }

func (c CookieDemo) Handle(req *http11.Request, cfg *config.ServerConfig) (*http11.Response, error) {
	path := c.Path
	if path == "" {
		path = "./assets/cookie-demo.html"
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.New(404, err)
	}

	resp := http11.NewResponse(200)
	resp.Header.Set("Host", cfg.Host)
	resp.Header.Set("Content-Type", http11.MIMEType("html"))
	echoStandardHeaders(resp, req)
	resp.SetBody(body)
	return resp, nil
}

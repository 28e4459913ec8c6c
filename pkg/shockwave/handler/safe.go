package handler

import (
	"os"
	"strconv"
	"strings"

	"github.com/aniasse/localhost/internal/config"
	"github.com/aniasse/localhost/pkg/shockwave/errs"
	"github.com/aniasse/localhost/pkg/shockwave/http11"
)

// standardHeaders lists the request headers that safe-method and CGI
// responses echo verbatim (spec §4.4/§4.5).
var standardHeaders = []string{"transfer-encoding"}

func contentTypeFor(path string) string {
	ext := extensionOf(path)
	return http11.MIMEType(ext)
}

func extensionOf(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	i := strings.LastIndexByte(base, '.')
	if i < 0 || i == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}

func echoStandardHeaders(resp *http11.Response, req *http11.Request) {
	for _, name := range standardHeaders {
		if v := req.Header.Get(name); v != "" {
			resp.Header.Set(name, v)
		}
	}
}

// Get reads the target file and returns it as a 200 response (spec §4.4).
// A missing file yields 404.
func Get(req *http11.Request, host, resolvedPath string) (*http11.Response, error) {
	data, err := os.ReadFile(resolvedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(404, err)
		}
		return nil, errs.New(500, err)
	}

	resp := http11.NewResponse(200)
	resp.Header.Set("Host", host)
	resp.Header.Set("Content-Type", contentTypeFor(resolvedPath))
	echoStandardHeaders(resp, req)
	resp.SetBody(data)
	return resp, nil
}

// Head stats the target file and returns the same headers GET would, with
// an empty body. A missing file yields 404 — see DESIGN.md's Open Question
// decision (the source maps this to 500; this repo does not preserve that).
func Head(req *http11.Request, host, resolvedPath string) (*http11.Response, error) {
	info, err := os.Stat(resolvedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(404, err)
		}
		return nil, errs.New(500, err)
	}

	resp := http11.NewResponse(200)
	resp.Header.Set("Host", host)
	resp.Header.Set("Content-Type", contentTypeFor(resolvedPath))
	resp.Header.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	echoStandardHeaders(resp, req)
	return resp, nil
}

// Options returns the matched route's allowed methods in an Allow header,
// with an empty body (spec §4.4).
func Options(host string, route *config.Route) (*http11.Response, error) {
	resp := http11.NewResponse(200)
	resp.Header.Set("Host", host)
	resp.Header.Set("Allow", route.AllowHeader())
	resp.Header.Set("Content-Length", "0")
	return resp, nil
}

// Trace echoes the request line and non-sensitive headers back as a
// message/http body (spec §4.4): Cookie and Authorization are stripped,
// Max-Forwards: 0 yields 400, and host is appended to an existing Via
// header (or set if absent) rather than replacing it.
func Trace(req *http11.Request, host string) (*http11.Response, error) {
	if req.Header.Get("max-forwards") == "0" {
		return nil, errs.New(400, nil)
	}

	var b strings.Builder
	b.WriteString(req.Method)
	b.WriteByte(' ')
	b.WriteString(req.RawTarget)
	b.WriteByte(' ')
	b.WriteString(req.Proto())
	b.WriteString("\r\n")

	req.Header.VisitAll(func(key, value string) {
		if key == "cookie" || key == "authorization" {
			return
		}
		if key == "via" {
			return // Via is rendered separately below, after appending host.
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\r\n")
	})

	via := req.Header.Get("via")
	if via != "" {
		via = via + ", " + host
	} else {
		via = host
	}
	b.WriteString("via: ")
	b.WriteString(via)
	b.WriteString("\r\n")

	resp := http11.NewResponse(200)
	resp.Header.Set("Host", host)
	resp.Header.Set("Content-Type", "message/http")
	resp.SetBody([]byte(b.String()))
	return resp, nil
}

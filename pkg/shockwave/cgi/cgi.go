// Package cgi implements the CGI/1.1 execution bridge (spec §4.5):
// interpreter selection by extension, environment marshaling, subprocess
// execution, and stdout capture into a response body.
package cgi

import (
	"os/exec"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aniasse/localhost/internal/config"
	"github.com/aniasse/localhost/pkg/shockwave/errs"
	"github.com/aniasse/localhost/pkg/shockwave/handler"
	"github.com/aniasse/localhost/pkg/shockwave/http11"
)

// standardHeaders is the set of request headers echoed back verbatim on a
// CGI response, matching the safe-method handlers' whitelist (spec §4.5).
var standardHeaders = []string{"transfer-encoding"}

// interpreterCommand maps a configured Interpreter to its executable name.
var interpreterCommand = map[config.Interpreter]string{
	config.InterpreterPHP:    "php",
	config.InterpreterPython: "python3",
}

// IsCGIRequest reports whether resolvedPath names a CGI script, per spec
// §4.5/§6: the path must contain the literal segment "/cgi/".
func IsCGIRequest(resolvedPath string) bool {
	return strings.Contains(resolvedPath, "/cgi/")
}

// Execute runs the CGI script resolved from req against route's cgi_def
// table and returns the interpreter's stdout wrapped in a 200 response.
func Execute(req *http11.Request, cfg *config.ServerConfig, route *config.Route) (*http11.Response, error) {
	if route.Settings == nil || route.Settings.CGIDef == nil {
		return nil, errs.New(400, nil)
	}

	resolved := handler.AddRootToPath(route, req.Path)
	ext := scriptExtension(resolved)

	interp, ok := route.Settings.CGIDef[ext]
	if !ok {
		return nil, errs.New(404, nil)
	}

	command, ok := interpreterCommand[interp]
	if !ok {
		return nil, errs.New(400, nil)
	}

	if !utf8.Valid(req.Body) {
		return nil, errs.New(400, nil)
	}

	scriptPath, pathInfo := splitPathInfo(resolved, ext)

	cmd := exec.Command(command, scriptPath, string(req.Body))
	cmd.Env = buildEnv(req, cfg, pathInfo)

	stdout, err := cmd.Output()
	if err != nil {
		return nil, errs.New(500, err)
	}

	resp := http11.NewResponse(200)
	resp.Header.Set("Host", cfg.Host)
	resp.Header.Set("Content-Type", "text/html; charset=utf-8")
	for _, name := range standardHeaders {
		if v := req.Header.Get(name); v != "" {
			resp.Header.Set(name, v)
		}
	}
	resp.SetBody(stdout)
	return resp, nil
}

// scriptExtension extracts the leading alphanumeric run after the path's
// last '.' (spec §4.5 step 1).
func scriptExtension(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 || i == len(path)-1 {
		return ""
	}
	rest := path[i+1:]
	end := len(rest)
	for j, r := range rest {
		if !isAlphanumeric(r) {
			end = j
			break
		}
	}
	return rest[:end]
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// splitPathInfo splits resolved at ".<ext>" to recover the script path and
// an optional PATH_INFO suffix — present only when the split yields
// exactly two parts (spec §4.5 step 3).
func splitPathInfo(resolved, ext string) (scriptPath, pathInfo string) {
	sep := "." + ext
	parts := strings.SplitN(resolved, sep, 2)
	if len(parts) != 2 {
		return resolved, ""
	}
	scriptPath = parts[0] + sep
	pathInfo = parts[1]
	return scriptPath, pathInfo
}

// buildEnv constructs the CGI/1.1 environment for the child process (spec
// §4.5 step 4, §6), passed via exec.Cmd.Env rather than the ambient process
// environment — see DESIGN.md's grounding note on §4.5's concurrency
// caveat and §9's open design note.
func buildEnv(req *http11.Request, cfg *config.ServerConfig, pathInfo string) []string {
	env := []string{
		"REQUEST_METHOD=" + req.Method,
		"SERVER_NAME=" + cfg.Host,
		"SERVER_SOFTWARE=localhost/1.0",
	}

	if req.Query != "" {
		env = append(env, "QUERY_STRING="+req.Query)
	}
	if pathInfo != "" {
		env = append(env, "PATH_INFO="+pathInfo)
	}
	if port := endpointPort(cfg); port != "" {
		env = append(env, "SERVER_PORT="+port)
	}

	if v := req.Header.Get("content-length"); v != "" {
		env = append(env, "CONTENT_LENGTH="+v)
	} else if len(req.Body) > 0 {
		env = append(env, "CONTENT_LENGTH="+strconv.Itoa(len(req.Body)))
	}
	if v := req.Header.Get("content-type"); v != "" {
		env = append(env, "CONTENT_TYPE="+v)
	}
	if v := req.Header.Get("cookie"); v != "" {
		env = append(env, "COOKIE="+v)
	}

	for header, name := range httpEnvWhitelist {
		if v := req.Header.Get(header); v != "" {
			env = append(env, name+"="+v)
		}
	}

	return env
}

// httpEnvWhitelist maps a lowercased request header name to its
// HTTP_-prefixed CGI environment variable (spec §4.5 step 4, §6).
var httpEnvWhitelist = map[string]string{
	"accept":              "HTTP_ACCEPT",
	"accept-charset":      "HTTP_ACCEPT_CHARSET",
	"accept-encoding":     "HTTP_ACCEPT_ENCODING",
	"accept-language":     "HTTP_ACCEPT_LANGUAGE",
	"forwarded":           "HTTP_FORWARDED",
	"host":                "HTTP_HOST",
	"proxy-authorization": "HTTP_PROXY_AUTHORIZATION",
	"user-agent":          "HTTP_USER_AGENT",
}

// endpointPort extracts the port segment from the first configured
// endpoint ("bind_address:port"), matching config.rs's SERVER_PORT source.
func endpointPort(cfg *config.ServerConfig) string {
	if len(cfg.Endpoints) == 0 {
		return ""
	}
	if i := strings.LastIndexByte(cfg.Endpoints[0], ':'); i >= 0 {
		return cfg.Endpoints[0][i+1:]
	}
	return ""
}

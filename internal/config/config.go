// Package config owns the static server configuration: the ServerConfig/
// Route/RouteSettings data model (spec §3), its YAML serialization, and
// the defaults used when no config file is supplied.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/aniasse/localhost/pkg/shockwave/http11"
	"gopkg.in/yaml.v3"
)

// Interpreter names a CGI interpreter family (spec §3's RouteSettings.cgi_def).
type Interpreter string

const (
	InterpreterPHP    Interpreter = "php"
	InterpreterPython Interpreter = "python"
)

// Handler is the opaque dynamic-dispatch hook spec §9 describes: "(Request,
// ServerConfig) -> Result<Response, StatusCode>", realized here as a Go
// interface (spec §9: "implementers may realize this as function pointers,
// tagged variants, or interfaces"). A route carrying a non-nil Handler
// bypasses default file handling entirely (spec §3).
type Handler interface {
	Name() string
	Handle(req *http11.Request, cfg *ServerConfig) (*http11.Response, error)
}

// RouteSettings configures file-serving and CGI behavior for one Route.
// Fields mirror spec §3 exactly.
type RouteSettings struct {
	RootPath               string                 `yaml:"root_path"`
	CGIDef                 map[string]Interpreter `yaml:"cgi_def,omitempty"`
	ListDirectory          bool                   `yaml:"list_directory"`
	HTTPRedirections       []string               `yaml:"http_redirections,omitempty"`
	RedirectStatusCode     int                    `yaml:"redirect_status_code,omitempty"`
	DefaultIfURLIsDir      string                 `yaml:"default_if_url_is_dir,omitempty"`
	DefaultIfRequestIsDir  string                 `yaml:"default_if_request_is_dir,omitempty"`
}

// RedirectStatus returns the configured redirect status, defaulting to
// 307 Temporary Redirect per spec §3.
func (s *RouteSettings) RedirectStatus() int {
	if s == nil || s.RedirectStatusCode == 0 {
		return 307
	}
	return s.RedirectStatusCode
}

// Route is one entry of ServerConfig.Routes (spec §3).
type Route struct {
	URLPath  string         `yaml:"url_path"`
	Methods  []string       `yaml:"methods"`
	Handler  Handler        `yaml:"-"`
	Settings *RouteSettings `yaml:"settings,omitempty"`
}

// AllowsMethod reports whether method is in this route's allowed set.
func (r *Route) AllowsMethod(method string) bool {
	for _, m := range r.Methods {
		if m == method {
			return true
		}
	}
	return false
}

// AllowHeader renders this route's method set for a 405 response's Allow
// header (spec §4.3).
func (r *Route) AllowHeader() string {
	return strings.Join(r.Methods, ", ")
}

// ServerConfig is the immutable, per-process server configuration (spec §3).
type ServerConfig struct {
	Host            string   `yaml:"host"`
	Endpoints       []string `yaml:"endpoints"` // "bind_address:port" pairs
	BodySizeLimit   int64    `yaml:"body_size_limit"`
	CustomErrorPath string   `yaml:"custom_error_path,omitempty"`
	Routes          []Route  `yaml:"routes"`
}

// Default returns an in-code configuration equivalent to the original
// server's literal server_config(): one endpoint, an /assets route and a
// /cgi route with php/python interpreters wired in.
func Default() *ServerConfig {
	return &ServerConfig{
		Host:          "localhost",
		Endpoints:     []string{"127.0.0.1:8080"},
		BodySizeLimit: 10 * 1024 * 1024,
		Routes: []Route{
			{
				URLPath: "/cgi",
				Methods: []string{"GET", "POST"},
				Settings: &RouteSettings{
					CGIDef: map[string]Interpreter{
						"php": InterpreterPHP,
						"py":  InterpreterPython,
					},
					ListDirectory: true,
				},
			},
			{
				URLPath: "/test.txt",
				Methods: []string{"GET", "POST"},
				Settings: &RouteSettings{
					RootPath:           "/assets",
					HTTPRedirections:   []string{"/redirection-test"},
					RedirectStatusCode: 301,
				},
			},
			{
				URLPath: "/assets",
				Methods: []string{"GET", "HEAD", "OPTIONS", "TRACE", "POST", "PUT", "PATCH", "DELETE"},
				Settings: &RouteSettings{
					ListDirectory: true,
				},
			},
		},
	}
}

// Load reads a YAML document at path into a ServerConfig.
func Load(path string) (*ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg ServerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate rejects configurations that cannot possibly serve a request:
// no endpoints, a route with an empty url_path, or a cgi_def interpreter
// this binary doesn't implement.
func (c *ServerConfig) Validate() error {
	if len(c.Endpoints) == 0 {
		return fmt.Errorf("config: at least one endpoint is required")
	}
	if c.BodySizeLimit < 0 {
		return fmt.Errorf("config: body_size_limit must be nonnegative")
	}
	for i, r := range c.Routes {
		if r.URLPath == "" {
			return fmt.Errorf("config: routes[%d] has an empty url_path", i)
		}
		if r.Settings == nil {
			continue
		}
		if strings.Contains(r.Settings.RootPath, "..") {
			return fmt.Errorf("config: routes[%d] root_path %q must not contain \"..\"", i, r.Settings.RootPath)
		}
		for ext, interp := range r.Settings.CGIDef {
			switch interp {
			case InterpreterPHP, InterpreterPython:
			default:
				return fmt.Errorf("config: routes[%d] cgi_def[%q] names unknown interpreter %q", i, ext, interp)
			}
		}
	}
	return nil
}

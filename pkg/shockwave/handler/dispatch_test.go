package handler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aniasse/localhost/internal/config"
	"github.com/aniasse/localhost/pkg/shockwave/errs"
	"github.com/aniasse/localhost/pkg/shockwave/http11"
)

// chdirToTemp switches the working directory to a fresh temp dir for the
// test, since AddRootToPath resolves "."+root_path+uri_path relative to it.
func chdirToTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })
	return dir
}

func TestDispatchServesPlainFile(t *testing.T) {
	dir := chdirToTemp(t)
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.ServerConfig{Host: "x"}
	route := &config.Route{
		URLPath:  "/",
		Methods:  []string{"GET"},
		Settings: &config.RouteSettings{},
	}
	req := newGetRequest()
	req.Path = "/index.html"

	resp, err := Dispatch(req, cfg, route)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if string(resp.Body) != "hi" {
		t.Fatalf("Body = %q, want hi", resp.Body)
	}
}

func TestDispatchDefaultIfURLIsDir(t *testing.T) {
	dir := chdirToTemp(t)
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "index.html"), []byte("default"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.ServerConfig{Host: "x"}
	route := &config.Route{
		URLPath: "/sub",
		Methods: []string{"GET"},
		Settings: &config.RouteSettings{
			DefaultIfURLIsDir: "/index.html",
		},
	}
	req := newGetRequest()
	req.Path = "/sub"

	resp, err := Dispatch(req, cfg, route)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if string(resp.Body) != "default" {
		t.Fatalf("Body = %q, want default", resp.Body)
	}
}

func TestDispatchListsDirectoryWhenEnabled(t *testing.T) {
	dir := chdirToTemp(t)
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.ServerConfig{Host: "x"}
	route := &config.Route{
		URLPath:  "/sub",
		Methods:  []string{"GET"},
		Settings: &config.RouteSettings{ListDirectory: true},
	}
	req := newGetRequest()
	req.Path = "/sub"

	resp, err := Dispatch(req, cfg, route)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if resp.Header.Get("content-type") == "" {
		t.Fatal("missing Content-Type on directory listing")
	}
}

func TestDispatchDirectoryListingDisabledIs404(t *testing.T) {
	dir := chdirToTemp(t)
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := &config.ServerConfig{Host: "x"}
	route := &config.Route{
		URLPath:  "/sub",
		Methods:  []string{"GET"},
		Settings: &config.RouteSettings{},
	}
	req := newGetRequest()
	req.Path = "/sub"

	_, err := Dispatch(req, cfg, route)
	if s, ok := err.(*errs.Status); !ok || s.Code != 404 {
		t.Fatalf("err = %v, want *errs.Status{Code:404}", err)
	}
}

func TestDispatchUsesRouteHandlerWhenSet(t *testing.T) {
	cfg := &config.ServerConfig{Host: "x"}
	route := &config.Route{URLPath: "/demo", Handler: stubHandler{}}
	req := newGetRequest()
	req.Path = "/demo"

	resp, err := Dispatch(req, cfg, route)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if resp.Status != 204 {
		t.Fatalf("Status = %d, want 204 (from stub handler)", resp.Status)
	}
}

type stubHandler struct{}

func (stubHandler) Name() string { return "stub" }

func (stubHandler) Handle(req *http11.Request, cfg *config.ServerConfig) (*http11.Response, error) {
	return http11.NewResponse(204), nil
}

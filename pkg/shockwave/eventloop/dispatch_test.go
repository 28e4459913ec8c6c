package eventloop

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aniasse/localhost/internal/config"
	"github.com/aniasse/localhost/pkg/shockwave/http11"
)

// chdirToTemp switches the process working directory to a fresh temp dir
// for the duration of the test, since AddRootToPath resolves
// "."+root_path+uri_path relative to the process cwd (spec §3).
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

func testCfg() *config.ServerConfig {
	return &config.ServerConfig{
		Host:          "localhost",
		Endpoints:     []string{"127.0.0.1:0"},
		BodySizeLimit: 1024,
		Routes: []config.Route{
			{
				URLPath: "/assets",
				Methods: []string{"GET", "HEAD"},
				Settings: &config.RouteSettings{},
			},
		},
	}
}

func TestDispatchServesMatchedFile(t *testing.T) {
	dir := chdirToTemp(t)
	if err := os.MkdirAll(filepath.Join(dir, "assets"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "assets", "page.html"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := &Loop{cfg: testCfg()}
	req := &http11.Request{Method: "GET", MethodID: http11.MethodGET, Path: "/assets/page.html", Header: http11.NewHeader()}

	resp := l.dispatch(req)
	if resp.Status != 200 {
		t.Fatalf("status = %d, want 200", resp.Status)
	}
	if string(resp.Body) != "hi" {
		t.Errorf("body = %q, want hi", resp.Body)
	}
}

func TestDispatchUnmatchedRouteIs404(t *testing.T) {
	chdirToTemp(t)
	l := &Loop{cfg: testCfg()}
	req := &http11.Request{Method: "GET", Path: "/nowhere", Header: http11.NewHeader()}

	resp := l.dispatch(req)
	if resp.Status != 404 {
		t.Fatalf("status = %d, want 404", resp.Status)
	}
}

func TestDispatchDisallowedMethodIs405WithAllow(t *testing.T) {
	dir := chdirToTemp(t)
	if err := os.MkdirAll(filepath.Join(dir, "assets"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "assets", "page.html"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := &Loop{cfg: testCfg()}
	req := &http11.Request{Method: "DELETE", Path: "/assets/page.html", Header: http11.NewHeader()}

	resp := l.dispatch(req)
	if resp.Status != 405 {
		t.Fatalf("status = %d, want 405", resp.Status)
	}
	if resp.Header.Get("Allow") != "GET, HEAD" {
		t.Errorf("Allow = %q, want %q", resp.Header.Get("Allow"), "GET, HEAD")
	}
}

package server

import (
	"testing"

	"github.com/aniasse/localhost/internal/config"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := &config.ServerConfig{} // no endpoints

	_, code, err := New(cfg)
	if err == nil {
		t.Fatal("expected an error for a config with no endpoints")
	}
	if code != ExitConfigError {
		t.Errorf("code = %v, want ExitConfigError", code)
	}
}

func TestNewBindsConfiguredEndpoint(t *testing.T) {
	cfg := &config.ServerConfig{
		Host:          "localhost",
		Endpoints:     []string{"127.0.0.1:0"},
		BodySizeLimit: 1024,
	}

	srv, code, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer srv.Close()
	if code != ExitOK {
		t.Errorf("code = %v, want ExitOK", code)
	}
}

func TestNewReportsBindFailureOnBadEndpoint(t *testing.T) {
	cfg := &config.ServerConfig{
		Host:          "localhost",
		Endpoints:     []string{"not-an-endpoint"},
		BodySizeLimit: 1024,
	}

	_, code, err := New(cfg)
	if err == nil {
		t.Fatal("expected a bind error for a malformed endpoint")
	}
	if code != ExitBindError {
		t.Errorf("code = %v, want ExitBindError", code)
	}
}

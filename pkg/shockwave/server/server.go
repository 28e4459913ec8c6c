// Package server wires a ServerConfig to a running event loop: it is the
// thin layer cmd/localhost calls into, responsible for nothing but startup
// sequencing and the exit-code semantics spec.md §6 names (0 normal
// termination — unreachable under the loop, 1 config failure, 2 bind
// failure).
package server

import (
	"fmt"

	"github.com/aniasse/localhost/internal/config"
	"github.com/aniasse/localhost/internal/logging"
	"github.com/aniasse/localhost/pkg/shockwave/eventloop"
)

// ExitCode classifies a startup failure per spec.md §6's CLI surface.
type ExitCode int

const (
	ExitOK           ExitCode = 0
	ExitConfigError  ExitCode = 1
	ExitBindError    ExitCode = 2
)

// Server owns one configuration and the event loop serving it.
type Server struct {
	cfg  *config.ServerConfig
	loop *eventloop.Loop
}

// New validates cfg and binds every configured endpoint. A validation
// failure is reported with ExitConfigError; a bind failure with
// ExitBindError — the two distinct, non-zero exit codes spec.md §6
// requires a caller be able to tell apart.
func New(cfg *config.ServerConfig) (*Server, ExitCode, error) {
	if err := cfg.Validate(); err != nil {
		return nil, ExitConfigError, err
	}

	loop, err := eventloop.New(cfg)
	if err != nil {
		return nil, ExitBindError, err
	}

	return &Server{cfg: cfg, loop: loop}, ExitOK, nil
}

// Run starts the event loop. It blocks until the loop returns an error —
// spec.md §6 calls ordinary termination unreachable, since the loop never
// exits on its own (spec §5).
func (s *Server) Run() error {
	logging.Default().WithField("endpoints", s.cfg.Endpoints).Info("server: starting event loop")
	if err := s.loop.Run(); err != nil {
		return fmt.Errorf("server: event loop exited: %w", err)
	}
	return nil
}

// Close releases the server's listening sockets without ever entering Run.
func (s *Server) Close() error {
	return s.loop.Close()
}

// Command localhost runs the configurable HTTP/1.x origin server (spec.md
// §1): a single executable, no flags required, configuration compiled in
// or loaded from a well-known path (spec.md §1's CLI surface).
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aniasse/localhost/internal/config"
	"github.com/aniasse/localhost/internal/demo"
	"github.com/aniasse/localhost/internal/logging"
	"github.com/aniasse/localhost/pkg/shockwave/server"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	var logLevel string

	root := &cobra.Command{
		Use:   "localhost",
		Short: "A configurable HTTP/1.x origin server for static files and CGI scripts",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath, logLevel)
		},
	}
	serveCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file (default: built-in config, spec.md §3)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(serveCmd)
	root.RunE = serveCmd.RunE

	exitCode := 0
	root.SilenceUsage = true
	root.SilenceErrors = true
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "localhost:", err)
		exitCode = exitCodeFor(err)
	}
	return exitCode
}

func serve(configPath, logLevel string) error {
	logging.SetLevel(logLevel)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return &exitError{code: server.ExitConfigError, err: fmt.Errorf("loading config: %w", err)}
	}
	wireDemoRoutes(cfg)

	srv, code, err := server.New(cfg)
	if err != nil {
		return &exitError{code: code, err: err}
	}

	if err := srv.Run(); err != nil {
		return &exitError{code: server.ExitBindError, err: err}
	}
	return nil
}

// loadConfig reads configPath when given, otherwise falls back to the
// in-code default configuration (spec.md §3's "compiled in or loaded from
// a well-known path").
func loadConfig(configPath string) (*config.ServerConfig, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// wireDemoRoutes appends the cookie/session demo routes (SPEC_FULL.md's
// supplemented feature 3) to cfg, mirroring config.rs wiring
// /api/update-cookie, /api/get-cookie, /api/cookie-demo to handler
// functions. Lives here, not in internal/config, since config.Handler
// implementations (internal/demo) import internal/config and wiring them
// the other way round would be a cycle.
func wireDemoRoutes(cfg *config.ServerConfig) {
	cfg.Routes = append(cfg.Routes,
		config.Route{
			URLPath: "/api/update-cookie",
			Methods: []string{"GET"},
			Handler: demo.SetCookie{},
		},
		config.Route{
			URLPath: "/api/get-cookie",
			Methods: []string{"GET"},
			Handler: demo.ReadCookie{},
		},
		config.Route{
			URLPath: "/api/cookie-demo",
			Methods: []string{"GET"},
			Handler: demo.CookieDemo{},
		},
	)
}

type exitError struct {
	code server.ExitCode
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return int(ee.code)
	}
	return 1
}

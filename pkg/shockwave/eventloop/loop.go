// Package eventloop implements the single-threaded, readiness-driven
// connection acceptor and dispatch pipeline (spec §4.1, §4.8, §5): one
// listening socket per configured endpoint, non-blocking client sockets,
// and a readiness multiplexer that drives parsing, handler dispatch, and
// writing without ever blocking except inside the multiplexer wait itself.
//
// Grounded on original_source/src/server.rs's direct libc::epoll_create1/
// epoll_ctl/epoll_wait reactor — the Rust original is already a
// single-threaded epoll loop, unlike the teacher's goroutine-per-connection
// ShockwaveServer.Serve, which this package replaces for the connection
// acceptance and I/O driving role.
package eventloop

import (
	"fmt"
	"strings"

	"github.com/aniasse/localhost/internal/config"
	"github.com/aniasse/localhost/internal/logging"
	"github.com/aniasse/localhost/pkg/shockwave/cgi"
	"github.com/aniasse/localhost/pkg/shockwave/errs"
	"github.com/aniasse/localhost/pkg/shockwave/handler"
	"github.com/aniasse/localhost/pkg/shockwave/http11"
	"github.com/aniasse/localhost/pkg/shockwave/route"
	"github.com/aniasse/localhost/pkg/shockwave/socket"
	"golang.org/x/sys/unix"
)

// poller abstracts the platform readiness multiplexer (epoll on Linux, a
// portable unix.Poll loop elsewhere) behind the three operations the event
// loop actually needs.
type poller interface {
	add(fd int) error
	remove(fd int) error
	wait() (readyFDs []int, err error)
	close() error
}

// conn pairs a raw client fd with its parse/write state (spec §3's
// ConnectionState).
type conn struct {
	fd    int
	state *http11.ConnectionState
}

// Loop is the event-loop-owned FD → ConnectionState map plus the listening
// sockets it multiplexes over (spec §3's "ConnectionState (event-loop
// owned)").
type Loop struct {
	cfg       *config.ServerConfig
	poll      poller
	listeners map[int]struct{}
	conns     map[int]*conn
}

// New binds a listening socket for every configured endpoint, applies the
// teacher's socket tuning to each, and registers them with the platform
// poller for read readiness (spec §4.1).
func New(cfg *config.ServerConfig) (*Loop, error) {
	l := &Loop{
		cfg:       cfg,
		listeners: make(map[int]struct{}),
		conns:     make(map[int]*conn),
	}

	p, err := newPoller()
	if err != nil {
		return nil, fmt.Errorf("eventloop: create poller: %w", err)
	}
	l.poll = p

	for _, endpoint := range cfg.Endpoints {
		fd, err := bindListener(endpoint)
		if err != nil {
			p.close()
			return nil, fmt.Errorf("eventloop: bind %s: %w", endpoint, err)
		}
		if err := l.poll.add(fd); err != nil {
			unix.Close(fd)
			p.close()
			return nil, fmt.Errorf("eventloop: register listener %s: %w", endpoint, err)
		}
		l.listeners[fd] = struct{}{}
	}

	return l, nil
}

// bindListener creates, tunes, binds and listens on a TCP socket for
// "host:port", returning its non-blocking raw fd.
func bindListener(endpoint string) (int, error) {
	addr, port, err := parseEndpoint(endpoint)
	if err != nil {
		return -1, err
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, err
	}

	_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	if err := socket.ApplyListener(fd, socket.DefaultConfig()); err != nil {
		logging.Default().WithError(err).Debug("eventloop: listener tuning best-effort failed")
	}

	sa := &unix.SockaddrInet4{Port: port, Addr: addr}

	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return -1, err
	}
	if err := unix.Listen(fd, 1024); err != nil {
		unix.Close(fd)
		return -1, err
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return -1, err
	}

	return fd, nil
}

// Run is the event loop's sole blocking call (spec §5's "suspension points:
// only at the multiplexer wait"): it waits for readiness, then services
// every ready fd, forever.
func (l *Loop) Run() error {
	defer l.poll.close()

	for {
		ready, err := l.poll.wait()
		if err != nil {
			return fmt.Errorf("eventloop: poll wait: %w", err)
		}

		for _, fd := range ready {
			if _, isListener := l.listeners[fd]; isListener {
				l.acceptUntilWouldBlock(fd)
				continue
			}
			l.serviceClient(fd)
		}
	}
}

// acceptUntilWouldBlock drains a listener's accept backlog in one tick
// (spec §4.1's "accept zero or more connections").
func (l *Loop) acceptUntilWouldBlock(listenerFD int) {
	for {
		clientFD, _, err := unix.Accept(listenerFD)
		if err != nil {
			if err != unix.EAGAIN && err != unix.EWOULDBLOCK {
				logging.Default().WithError(err).Debug("eventloop: accept failed")
			}
			return
		}

		if err := unix.SetNonblock(clientFD, true); err != nil {
			unix.Close(clientFD)
			continue
		}
		if err := socket.Apply(clientFD, socket.DefaultConfig()); err != nil {
			logging.Default().WithError(err).Debug("eventloop: client tuning best-effort failed")
		}
		if err := l.poll.add(clientFD); err != nil {
			unix.Close(clientFD)
			continue
		}

		l.conns[clientFD] = &conn{
			fd:    clientFD,
			state: http11.NewConnectionState(clientFD, l.cfg.BodySizeLimit),
		}
	}
}

// serviceClient drains available input, advances parsing, dispatches a
// ready request, and flushes any pending response bytes (spec §4.1's
// client-readiness branch).
func (l *Loop) serviceClient(fd int) {
	c, ok := l.conns[fd]
	if !ok {
		return
	}

	if len(c.state.PendingWrite()) > 0 {
		l.flush(c)
		return
	}

	buf := c.state.AcquireReadBuffer()
	n, err := unix.Read(fd, buf)
	switch {
	case n == 0 && err == nil:
		c.state.ReleaseReadBuffer(buf)
		l.closeConn(c)
		return
	case err != nil && err != unix.EAGAIN && err != unix.EWOULDBLOCK:
		c.state.ReleaseReadBuffer(buf)
		l.closeConn(c)
		return
	case err == unix.EAGAIN || err == unix.EWOULDBLOCK:
		c.state.ReleaseReadBuffer(buf)
		return
	}

	// TCP_QUICKACK is cleared by the kernel after every ACK (it is not a
	// persistent socket option), so it has to be re-armed after each read
	// to keep this connection's subsequent ACKs immediate.
	_ = socket.SetQuickAck(fd)

	feedErr := c.state.Feed(buf[:n])
	c.state.ReleaseReadBuffer(buf)
	if feedErr != nil {
		c.state.KeepAlive = false
		resp := errs.Response(http11.StatusForParseError(feedErr), l.cfg.Host, l.cfg.CustomErrorPath)
		c.state.QueueResponse(resp)
		l.flush(c)
		return
	}

	if c.state.Parser.State() != http11.StateReady {
		return
	}

	req := c.state.Parser.Request()
	resp := l.dispatch(req)
	c.state.KeepAlive = wantsKeepAlive(req)
	if c.state.KeepAlive {
		resp.Header.Set("Connection", "keep-alive")
	} else {
		resp.Header.Set("Connection", "close")
	}
	c.state.QueueResponse(resp)
	l.flush(c)
}

// wantsKeepAlive decides whether to reuse the connection for a subsequent
// request (spec.md §6: "Connection: close semantics are assumed after
// each response unless an implementation chooses to add keep-alive").
// HTTP/1.1 defaults to keep-alive unless the client asks to close;
// HTTP/1.0 defaults to close unless the client explicitly asks to stay.
func wantsKeepAlive(req *http11.Request) bool {
	conn := strings.ToLower(req.Header.Get("connection"))
	if req.ProtoMajor == 1 && req.ProtoMinor >= 1 {
		return conn != "close"
	}
	return conn == "keep-alive"
}

// dispatch runs the route-matcher → (redirect | CGI | handler) → error
// mapper pipeline for one fully-parsed request (spec §2's control flow).
func (l *Loop) dispatch(req *http11.Request) *http11.Response {
	match, err := route.Find(req.Path, l.cfg.Routes)
	if err != nil {
		return errs.Response(statusOf(err), l.cfg.Host, l.cfg.CustomErrorPath)
	}

	if match.RedirectTo != "" {
		return handler.Redirect(match.RedirectStatus, l.cfg.Host, match.RedirectTo)
	}

	if err := route.CheckMethod(match.Route, req.Method); err != nil {
		resp := errs.Response(statusOf(err), l.cfg.Host, l.cfg.CustomErrorPath)
		resp.Header.Set("Allow", match.Route.AllowHeader())
		return resp
	}

	resolved := handler.AddRootToPath(match.Route, req.Path)
	var resp *http11.Response
	if cgi.IsCGIRequest(resolved) {
		resp, err = cgi.Execute(req, l.cfg, match.Route)
	} else {
		resp, err = handler.Dispatch(req, l.cfg, match.Route)
	}
	if err != nil {
		logging.Default().WithError(err).Warn("eventloop: request failed")
		return errs.Response(statusOf(err), l.cfg.Host, l.cfg.CustomErrorPath)
	}
	return resp
}

func statusOf(err error) int {
	if s, ok := err.(*errs.Status); ok {
		return s.Code
	}
	return 500
}

// flushRetryLimit bounds the would-block retry loop in flush so a client
// that never drains its receive buffer cannot spin this tick forever — the
// rest of the retry happens on a later readiness tick, since client fds
// are also registered for read readiness, which fires again on any further
// activity (including the peer closing its side).
const flushRetryLimit = 64

// flush writes the connection's pending response, retrying on would-block
// up to flushRetryLimit times per tick (spec §4.7's retry-on-would-block
// writer, grounded on original_source/src/server/handle.rs's serve_response
// spin-retry loop). Once fully written, the connection either returns to
// reading-head (negotiated keep-alive) or closes (spec §4.8's default).
func (l *Loop) flush(c *conn) {
	for i := 0; i < flushRetryLimit; i++ {
		pending := c.state.PendingWrite()
		if len(pending) == 0 {
			l.finishWrite(c)
			return
		}

		n, err := unix.Write(c.fd, pending)
		if n > 0 {
			c.state.Advance(n)
		}
		if err != nil && err != unix.EAGAIN && err != unix.EWOULDBLOCK {
			l.closeConn(c)
			return
		}
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			continue // retried up to flushRetryLimit times, then on a later readiness tick
		}
	}
}

// finishWrite runs once a queued response has been fully written: a
// keep-alive connection returns to awaiting its next request head (any
// pipelined bytes already buffered by Feed carry forward via Leftover),
// otherwise the connection is torn down (spec §4.8's default).
func (l *Loop) finishWrite(c *conn) {
	if c.state.KeepAlive {
		c.state.BeginNextRequest()
		return
	}
	l.closeConn(c)
}

func (l *Loop) closeConn(c *conn) {
	c.state.MarkClosed()
	_ = l.poll.remove(c.fd)
	unix.Close(c.fd)
	delete(l.conns, c.fd)
}

// Close releases every listening socket and the poller itself without
// entering Run — used when a caller decides not to serve after New (e.g. a
// config reload that replaces the loop) or to release fds in tests.
func (l *Loop) Close() error {
	for fd := range l.listeners {
		_ = l.poll.remove(fd)
		unix.Close(fd)
	}
	return l.poll.close()
}

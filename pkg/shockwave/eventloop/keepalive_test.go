package eventloop

import (
	"net"
	"testing"

	"github.com/aniasse/localhost/pkg/shockwave/http11"
)

func TestWantsKeepAliveHTTP11DefaultsOn(t *testing.T) {
	req := &http11.Request{ProtoMajor: 1, ProtoMinor: 1, Header: http11.NewHeader()}
	if !wantsKeepAlive(req) {
		t.Error("HTTP/1.1 should default to keep-alive")
	}
}

func TestWantsKeepAliveHTTP11ConnectionClose(t *testing.T) {
	req := &http11.Request{ProtoMajor: 1, ProtoMinor: 1, Header: http11.NewHeader()}
	req.Header.Set("Connection", "close")
	if wantsKeepAlive(req) {
		t.Error("Connection: close should defeat the HTTP/1.1 default")
	}
}

func TestWantsKeepAliveHTTP10DefaultsOff(t *testing.T) {
	req := &http11.Request{ProtoMajor: 1, ProtoMinor: 0, Header: http11.NewHeader()}
	if wantsKeepAlive(req) {
		t.Error("HTTP/1.0 should default to close")
	}
}

func TestWantsKeepAliveHTTP10ExplicitKeepAlive(t *testing.T) {
	req := &http11.Request{ProtoMajor: 1, ProtoMinor: 0, Header: http11.NewHeader()}
	req.Header.Set("Connection", "keep-alive")
	if !wantsKeepAlive(req) {
		t.Error("HTTP/1.0 should honor an explicit Connection: keep-alive")
	}
}

// loopbackFD opens a loopback TCP connection and returns the accepted
// side's raw fd, mirroring pkg/shockwave/socket's dialedFDPair so finishWrite
// can be exercised against a real socket rather than a bare int.
func loopbackFD(t *testing.T) (fd int, cleanup func()) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := listener.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	clientConn, err := net.Dial("tcp", listener.Addr().String())
	if err != nil {
		listener.Close()
		t.Fatalf("Dial: %v", err)
	}

	serverConn := <-accepted
	tcpConn := serverConn.(*net.TCPConn)
	file, err := tcpConn.File()
	if err != nil {
		t.Fatalf("File: %v", err)
	}

	return int(file.Fd()), func() {
		file.Close()
		serverConn.Close()
		clientConn.Close()
		listener.Close()
	}
}

func TestFinishWriteKeepAliveReturnsToReadingHead(t *testing.T) {
	fd, cleanup := loopbackFD(t)
	defer cleanup()

	state := http11.NewConnectionState(fd, 1024)
	state.KeepAlive = true
	c := &conn{fd: fd, state: state}

	l := &Loop{conns: map[int]*conn{fd: c}}
	l.finishWrite(c)

	if state.Closed() {
		t.Error("a keep-alive connection must not be marked closed")
	}
	if state.Conn != http11.ConnReadingHead {
		t.Errorf("Conn = %v, want ConnReadingHead", state.Conn)
	}
	if _, stillTracked := l.conns[fd]; !stillTracked {
		t.Error("a keep-alive connection must stay in Loop.conns")
	}
}

func TestFinishWriteWithoutKeepAliveCloses(t *testing.T) {
	fd, cleanup := loopbackFD(t)
	defer cleanup()

	state := http11.NewConnectionState(fd, 1024)
	c := &conn{fd: fd, state: state}

	l := &Loop{conns: map[int]*conn{fd: c}, poll: noopPoller{}}
	l.finishWrite(c)

	if !state.Closed() {
		t.Error("a non-keep-alive connection must be closed once flushed")
	}
	if _, stillTracked := l.conns[fd]; stillTracked {
		t.Error("a closed connection must be removed from Loop.conns")
	}
}

// noopPoller satisfies the poller interface for tests that only need
// closeConn's poll.remove call to succeed without a real multiplexer.
type noopPoller struct{}

func (noopPoller) add(fd int) error     { return nil }
func (noopPoller) remove(fd int) error  { return nil }
func (noopPoller) wait() ([]int, error) { return nil, nil }
func (noopPoller) close() error         { return nil }

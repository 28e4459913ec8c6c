package http11

// ConnState names where a connection sits in spec §4.8's lifecycle:
//
//	accepted -> reading-head -> reading-body -> dispatching -> writing -> (closed | reading-head)
type ConnState int

const (
	ConnAccepted ConnState = iota
	ConnReadingHead
	ConnReadingBody
	ConnDispatching
	ConnWriting
	ConnClosed
)

// ConnectionState is the event loop's sole record for one accepted
// socket (spec §3). It is never shared: exactly one flow of control (the
// event loop's readiness-tick handler) mutates it at a time, so none of
// its fields need synchronization.
type ConnectionState struct {
	FD int

	State ParseState // not updated here; the parse position is Parser.State()
	Conn  ConnState

	Parser *Parser

	// writeBuf holds serialized response bytes still to be flushed;
	// writeCursor is how much of it has already been written.
	writeBuf    []byte
	writeCursor int

	// KeepAlive controls whether the connection returns to
	// reading-head after a response is fully written, instead of
	// closing. Spec §6 defaults every connection to close.
	KeepAlive bool

	closed bool
}

// NewConnectionState creates connection bookkeeping for a freshly
// accepted, already non-blocking socket fd.
func NewConnectionState(fd int, bodySizeLimit int64) *ConnectionState {
	return &ConnectionState{
		FD:     fd,
		Conn:   ConnAccepted,
		Parser: NewParser(bodySizeLimit),
	}
}

// AcquireReadBuffer borrows a scratch buffer sized for one non-blocking
// read from the shared pool (spec §5: the event loop is single-threaded,
// so one shared pool is enough — no per-CPU contention to relieve).
// Release it with ReleaseReadBuffer once its bytes have been handed to
// Feed, which copies them into the parser's own accumulation buffer.
func (c *ConnectionState) AcquireReadBuffer() []byte {
	return getReadBuffer()
}

// ReleaseReadBuffer returns a buffer obtained from AcquireReadBuffer to
// the pool.
func (c *ConnectionState) ReleaseReadBuffer(b []byte) {
	putReadBuffer(b)
}

// Feed hands newly read bytes to the parser and keeps Conn in sync with
// the parser's progress.
func (c *ConnectionState) Feed(chunk []byte) error {
	if c.Conn == ConnAccepted {
		c.Conn = ConnReadingHead
	}
	if err := c.Parser.Feed(chunk); err != nil {
		return err
	}
	switch c.Parser.State() {
	case StateAwaitingBody:
		c.Conn = ConnReadingBody
	case StateReady:
		c.Conn = ConnDispatching
	}
	return nil
}

// QueueResponse serializes resp and arms the connection for writing.
func (c *ConnectionState) QueueResponse(resp *Response) {
	c.writeBuf = resp.Bytes()
	c.writeCursor = 0
	c.Conn = ConnWriting
}

// PendingWrite returns the slice of the queued response not yet written.
func (c *ConnectionState) PendingWrite() []byte {
	return c.writeBuf[c.writeCursor:]
}

// Advance records that n bytes of the queued response were written.
// Returns true once the whole response has been flushed.
func (c *ConnectionState) Advance(n int) bool {
	c.writeCursor += n
	return c.writeCursor >= len(c.writeBuf)
}

// BeginNextRequest resets the parser for a subsequent request on a
// keep-alive connection, carrying forward any pipelined bytes already in
// the buffer.
func (c *ConnectionState) BeginNextRequest() {
	leftover := c.Parser.Leftover()
	c.Parser.Reset(leftover)
	c.writeBuf = nil
	c.writeCursor = 0
	c.Conn = ConnReadingHead
}

// MarkClosed records that the connection has been torn down. Idempotent.
func (c *ConnectionState) MarkClosed() {
	c.closed = true
	c.Conn = ConnClosed
}

// Closed reports whether MarkClosed has been called.
func (c *ConnectionState) Closed() bool {
	return c.closed
}

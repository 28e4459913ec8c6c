package http11

import "sync"

// readBufferSize is the chunk size requested from the kernel on each
// non-blocking read; the Parser grows its accumulation buffer by appending
// the bytes each read returned.
const readBufferSize = 16 * 1024

var readBufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, readBufferSize)
		return &b
	},
}

// getReadBuffer borrows a scratch buffer for a single non-blocking read.
// The event loop is single-threaded (spec §5), so there is no per-CPU
// contention to relieve — one shared pool is enough.
func getReadBuffer() []byte {
	return *(readBufferPool.Get().(*[]byte))
}

func putReadBuffer(b []byte) {
	b = b[:cap(b)]
	readBufferPool.Put(&b)
}

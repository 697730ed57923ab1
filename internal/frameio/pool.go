package frameio

import "sync"

// MaxFrameSize is the largest UDP datagram frameio will read into a
// single pooled buffer. 65507 is the maximum IPv4 UDP payload size.
const MaxFrameSize = 65507

// FramePool provides reusable buffers for SOME/IP frame I/O.
// Callers Get() a *[]byte before receiving, and Put() it once the
// frame's payload has been fully consumed or copied out.
//
// The pool stores *[]byte (pointer to slice) to avoid an interface
// allocation on Get()/Put().
//
// Usage:
//
//	bufp := FramePool.Get().(*[]byte)
//	defer FramePool.Put(bufp)
//	n, addr, err := conn.ReadFromUDPAddrPort(*bufp)
var FramePool = sync.Pool{
	New: func() any {
		buf := make([]byte, MaxFrameSize)
		return &buf
	},
}

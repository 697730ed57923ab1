// Package debugapi exposes a small gin-gonic/gin HTTP surface for
// operator inspection of a running someipd daemon.
//
// It never participates in the wire protocol: handlers only read from
// a ring buffer fed by the daemon's frame dispatcher. A decode stall or
// handler panic here must never block frame processing.
package debugapi

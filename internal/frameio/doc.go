// Package frameio provides unicast UDP transport for SOME/IP frames.
//
// It reads datagrams into pooled buffers, hands them to
// someip.TryParseFrame, and classifies the result as a Service
// Discovery message or a generic service frame. There is no session
// state, no retry, and no reassembly of SOME/IP-TP segments here —
// frameio moves bytes and classifies them, nothing more.
package frameio

// Package trace records driver phases and per-file lexing and parsing so
// slow inputs and hangs can be found after the fact.
//
//	pycst check --trace=- --trace-level=detail ./src
//	pycst check --trace=run.ndjson --trace-mode=both --trace-heartbeat=1s ./src
//
// Tracers:
//
//   - Nop: tracing off
//   - StreamTracer: writes through a zerolog logger, console text or NDJSON
//   - RingTracer: keeps the last N events in memory and dumps them at exit
//
// ModeBoth fans out to a stream and a ring; RingOf finds the ring behind any tracer.
//
// Levels are cumulative: error (ring only), phase (driver and pass spans),
// detail (adds file spans), debug (adds one point per top-level statement).
//
// The heartbeat names the oldest open file span on every beat, so a worker
// stuck on one input shows the same file in consecutive beats.
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace

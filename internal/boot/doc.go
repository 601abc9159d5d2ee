// Package boot implements the idempotent startup orchestration: scan the
// library for artifacts, invoke the external processor for each one whose
// completion marker is missing, then hand process control to the reader
// server.
//
// The sequence is single-shot and strictly sequential. A processor failure
// is terminal: remaining artifacts are skipped, the handoff never happens,
// and the process exits non-zero. Markers are only ever tested, never
// written, so re-running after a partial boot retries exactly the artifacts
// that still lack one.
package boot

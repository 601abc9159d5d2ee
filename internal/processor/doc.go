// Package processor invokes the external conversion command for a single
// artifact. The command receives the artifact path as its final argument and
// is expected to create the completion marker directory on success; bindery
// only observes the exit code. Output is streamed line by line into the
// structured log.
package processor

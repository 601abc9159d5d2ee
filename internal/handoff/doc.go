// Package handoff transfers process control to the long-running reader
// server after boot orchestration completes.
//
// The default implementation uses execve so the server becomes the
// container's primary process: it receives signals directly and its exit
// code is the final one. A forwarding implementation keeps bindery as a thin
// supervisor for environments where process replacement is unwanted.
package handoff

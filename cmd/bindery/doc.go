// Package main hosts the bindery CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into library
// scans, processor runs, history queries, and configuration scaffolding. The
// run command is the container entrypoint: it drains the pending artifacts
// and then hands process control to the reader server. Configuration
// resolution and structured logging setup live here so subcommands stay
// declarative while the orchestration logic lives in the internal packages.
package main

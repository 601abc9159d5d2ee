// Package history persists a ledger of boot orchestration runs and processor
// invocations in SQLite.
//
// The ledger is observational: the completion oracle never consults it, so a
// missing or stale database cannot change which artifacts get processed.
// It exists for the history command and post-mortem debugging.
package history

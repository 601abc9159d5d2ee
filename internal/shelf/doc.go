// Package shelf discovers EPUB artifacts in the library directory and decides
// whether each one was already processed.
//
// The completion signal is a sibling directory derived from the artifact's
// base name plus a fixed suffix. Only existence-as-directory matters: shelf
// never creates, modifies, or inspects marker contents, so a stale or empty
// marker still counts as processed and a plain file at the marker path does
// not.
package shelf

// Package services holds cross-cutting helpers shared by bindery components:
// sentinel errors with a wrapping convention for classification at the CLI
// boundary, and context carriers for run, book, and stage identifiers that
// the logging package turns into structured fields.
package services

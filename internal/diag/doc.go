// Package diag defines the Issue model shared by every parsing phase.
//
// A Diagnostic is one Issue: a Code, a Severity, a human message and the
// primary source.Span it refers to. Phases emit through a Reporter; the
// parse driver collects everything into a single Bag per parse call.
//
// # Ordering
//
// A Bag is append-only and keeps emission order. Most issues arrive left to
// right, but deferred validations (a markup tag that requires a body is only
// checked once its sibling list is complete) may land after issues located
// further down the file. Nothing in the pipeline sorts or deduplicates.
//
// # Codes
//
// Codes are grouped by the phase that raises them:
//
//   - LEX1xxx – tokenizer, including lexer mode checks of the markup dialect.
//   - SYN2xxx – grammar errors and end-of-parse checks (extra characters).
//   - TAG3xxx – structural markup problems: tag pairing, attribute policy.
//   - LOW4xxx – lowering problems that are not tied to a single tag.
//
// Fatal conditions (unknown dialect, unimplemented constructs) are never
// Diagnostics; they are Go errors returned by the driver.
package diag

// Package logging assembles structured slog loggers used across the archive
// components.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing so catalog, media store, and orchestrator code emit log
// lines with the same shape regardless of which component produced them. A
// no-op logger is available for tests and wiring paths that cannot fail.
//
// # Logging Contract
//
// Level semantics:
//   - INFO: narrative milestones (asset archived, asset removed, migration
//     applied, tag count refreshed).
//   - WARN: degraded but non-failing behavior (a collision caused an existing
//     asset to be adopted instead of rewritten).
//   - ERROR: the operation failed and the caller received an error.
//   - DEBUG: per-statement SQL timing, retry attempts, fan-out task counts.
//
// ERROR logs should carry the failing operation's name and the wrapped cause
// via logging.Error(), never a string-formatted message.
//
// # Common fields
//
// fingerprint, operation, tag, dialect, duration, component.
//
// Prefer Component() and the Attr constructors over hand-rolled slog setup so
// every package emits attributes with the same keys.
package logging

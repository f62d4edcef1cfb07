// Package catalog is the relational side of the archive: images, tags,
// image-tag associations, metadata, sources, and denormalized tag counts.
// Every mutator is idempotent with set semantics; every statement executes
// through a retry wrapper that re-invokes transient failures a bounded
// number of times. The catalog is dialect-agnostic: it never hand-rolls
// backend-specific SQL, delegating statement text to a dialect.Dialect.
package catalog

// Package mediastore is the content-addressed asset store: it derives the
// shard path for a fingerprint, writes and removes asset bytes on disk, and
// reads back filesystem-derived metadata. The store is stateless beyond its
// root path; the filesystem itself is the only index.
package mediastore

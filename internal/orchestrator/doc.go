// Package orchestrator composes fingerprint, mediastore and catalog into
// the top-level archive/find/query workflows (spec.md §4.7): Archive,
// Remove, Find, AttachTags, AttachSource, QueryImage, CountImage,
// CountImageByTag, RefreshCount and QueryTags.
package orchestrator

package catalog

import "time"

// ImageMetadata is the catalog's row shape for image_metadatas: one row per
// archived image, holding the fields spec.md's Metadata record defines.
type ImageMetadata struct {
	Width           int
	Height          int
	Format          string
	ColorModel      string
	FileSize        int64
	CreatedAt       *time.Time
	DurationSeconds *float64
}

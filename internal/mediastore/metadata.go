package mediastore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"archiveboard/internal/fingerprint"
)

// ImageMetadata is the filesystem- and decode-derived metadata for one
// archived asset.
type ImageMetadata struct {
	Width           int
	Height          int
	Format          string
	ColorModel      string
	FileSize        int64
	CreatedAt       *time.Time
	DurationSeconds *float64
}

// Metadata reads back width/height/color (from the image, or a video's
// thumbnail), file size and creation time (from filesystem metadata), and,
// for video assets, container duration. It fails with FileNotFound if the
// asset is absent.
func (s *Store) Metadata(ctx context.Context, fp fingerprint.Fingerprint, tools fingerprint.VideoTools) (ImageMetadata, error) {
	path, err := s.Index(fp)
	if err != nil {
		return ImageMetadata{}, err
	}
	if path == nil {
		return ImageMetadata{}, &FileNotFound{Fingerprint: fp.String()}
	}

	primaryAbs := filepath.Join(s.root, path.Path)
	info, err := os.Stat(primaryAbs)
	if err != nil {
		return ImageMetadata{}, &IOError{Cause: fmt.Errorf("stat %q: %w", primaryAbs, err)}
	}

	format := strings.TrimPrefix(filepath.Ext(path.Path), ".")

	inspectPath := primaryAbs
	if path.Kind == fingerprint.KindVideo {
		inspectPath = filepath.Join(s.root, path.ThumbnailPath)
	}
	data, err := os.ReadFile(inspectPath)
	if err != nil {
		return ImageMetadata{}, &IOError{Cause: fmt.Errorf("read %q: %w", inspectPath, err)}
	}
	inspectExt := format
	if path.Kind == fingerprint.KindVideo {
		inspectExt = "png"
	}
	width, height, colorModel, err := fingerprint.InspectImage(data, inspectExt)
	if err != nil {
		return ImageMetadata{}, err
	}

	meta := ImageMetadata{
		Width:      width,
		Height:     height,
		Format:     format,
		ColorModel: colorModel,
		FileSize:   info.Size(),
		CreatedAt:  filesystemCreationTime(info),
	}

	if path.Kind == fingerprint.KindVideo {
		duration, err := fingerprint.ProbeDuration(ctx, tools, primaryAbs)
		if err != nil {
			return ImageMetadata{}, err
		}
		meta.DurationSeconds = &duration
	}

	return meta, nil
}

package mediastore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"archiveboard/internal/fingerprint"
)

// MediaPath describes the on-disk location of an archived asset, relative
// to the store root.
type MediaPath struct {
	Kind fingerprint.Kind

	// Path is the asset's primary file: the image file, or the video's
	// original-bytes file.
	Path string

	// ThumbnailPath is non-empty only for video assets.
	ThumbnailPath string
}

// Store is the content-addressed media store rooted at a single directory.
type Store struct {
	root string
}

// Open returns a Store rooted at dir, creating the directory if absent.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &IOError{Cause: fmt.Errorf("create store root %q: %w", dir, err)}
	}
	return &Store{root: dir}, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

// Create writes asset to disk under its shard directory. A concurrent or
// prior create for the same fingerprint, whatever its extension, is reported
// as HashCollision; the caller elected loser adopts the winner's path rather
// than overwriting it.
func (s *Store) Create(ctx context.Context, asset fingerprint.Asset) error {
	if err := checkFreeSpace(s.root, int64(len(asset.OriginalBytes))); err != nil {
		return err
	}

	dir := filepath.Join(s.root, shardDir(asset.Fingerprint))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Cause: fmt.Errorf("create shard dir %q: %w", dir, err)}
	}

	stem := filepath.Join(s.root, stemPath(asset.Fingerprint))
	originalPath := stem + "." + asset.Ext

	existing, err := filepath.Glob(stem + ".*")
	if err != nil {
		return &IOError{Cause: fmt.Errorf("glob %q: %w", stem, err)}
	}
	if len(existing) > 0 {
		return &HashCollision{ExistingPath: existing[0]}
	}

	if err := writeExclusive(originalPath, asset.OriginalBytes); err != nil {
		return err
	}

	if asset.Kind == fingerprint.KindVideo {
		thumbPath := stem + ".png"
		if err := writeExclusive(thumbPath, asset.ThumbnailPNG); err != nil {
			// The original write already elected this fingerprint as the
			// winner; a thumbnail collision means a previous partial write
			// was left behind. Overwrite it: the caller owns this
			// fingerprint now.
			if _, ok := err.(*HashCollision); !ok {
				return err
			}
			if rmErr := os.Remove(thumbPath); rmErr != nil {
				return &IOError{Cause: rmErr}
			}
			if err := writeExclusive(thumbPath, asset.ThumbnailPNG); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeExclusive stages data in a uuid-named temp file, then claims the
// final path with an exclusive create before renaming the staged bytes into
// place. The exclusive create, not the temp write, elects a single winner
// among concurrent callers for the same fingerprint.
func writeExclusive(finalPath string, data []byte) error {
	dir := filepath.Dir(finalPath)
	tmpPath := filepath.Join(dir, ".tmp-"+uuid.NewString())

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return &IOError{Cause: fmt.Errorf("stage %q: %w", finalPath, err)}
	}

	claim, err := os.OpenFile(finalPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		os.Remove(tmpPath)
		if os.IsExist(err) {
			return &HashCollision{ExistingPath: finalPath}
		}
		return &IOError{Cause: fmt.Errorf("claim %q: %w", finalPath, err)}
	}
	claim.Close()

	if err := os.Rename(tmpPath, finalPath); err != nil {
		return &IOError{Cause: fmt.Errorf("commit %q: %w", finalPath, err)}
	}
	return nil
}

// Index locates the on-disk asset for fp, if any. A single match is an
// image; exactly two matches where one ends in ".png" is a video. Any
// other count is reported as absent (nil, nil).
func (s *Store) Index(fp fingerprint.Fingerprint) (*MediaPath, error) {
	pattern := filepath.Join(s.root, stemPath(fp)) + ".*"
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, &IOError{Cause: fmt.Errorf("glob %q: %w", pattern, err)}
	}

	switch len(matches) {
	case 1:
		return &MediaPath{
			Kind: fingerprint.KindImage,
			Path: s.relative(matches[0]),
		}, nil
	case 2:
		var thumb, original string
		for _, m := range matches {
			if filepath.Ext(m) == ".png" {
				thumb = m
			} else {
				original = m
			}
		}
		if thumb == "" || original == "" {
			return nil, nil
		}
		return &MediaPath{
			Kind:          fingerprint.KindVideo,
			Path:          s.relative(original),
			ThumbnailPath: s.relative(thumb),
		}, nil
	default:
		return nil, nil
	}
}

func (s *Store) relative(absPath string) string {
	rel, err := filepath.Rel(s.root, absPath)
	if err != nil {
		return absPath
	}
	return rel
}

// Delete removes all files belonging to the asset for fp. Absent is
// success: Delete is idempotent.
func (s *Store) Delete(fp fingerprint.Fingerprint) error {
	path, err := s.Index(fp)
	if err != nil {
		return err
	}
	if path == nil {
		return nil
	}

	if err := os.Remove(filepath.Join(s.root, path.Path)); err != nil && !os.IsNotExist(err) {
		return &IOError{Cause: err}
	}
	if path.ThumbnailPath != "" {
		if err := os.Remove(filepath.Join(s.root, path.ThumbnailPath)); err != nil && !os.IsNotExist(err) {
			return &IOError{Cause: err}
		}
	}
	return nil
}

package mediastore

import (
	"path/filepath"

	"archiveboard/internal/fingerprint"
)

// shardDir returns the two-level directory prefix an asset for fp lives
// under, relative to the store root: shard(fp) = bytes[0]/bytes[1].
func shardDir(fp fingerprint.Fingerprint) string {
	a, b := fp.Shard()
	return filepath.Join(a, b)
}

func stemPath(fp fingerprint.Fingerprint) string {
	return filepath.Join(shardDir(fp), fp.String())
}

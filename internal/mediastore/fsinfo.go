package mediastore

import (
	"os"
	"time"
)

// filesystemCreationTime best-effort reports the asset's creation time.
// Most filesystems Go targets (notably ext4 via the standard library) do
// not expose a portable birth time, so modification time is used as the
// practical stand-in; the field remains optional in the data model for
// filesystems where even that isn't meaningful.
func filesystemCreationTime(info os.FileInfo) *time.Time {
	t := info.ModTime().UTC()
	return &t
}

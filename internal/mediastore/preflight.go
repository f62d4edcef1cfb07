package mediastore

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// minFreeBytes is the floor below which the store refuses new writes,
// guarding against filling the volume the asset tree lives on.
const minFreeBytes = 16 << 20 // 16 MiB

// checkFreeSpace refuses a write when the store root's free space is
// implausibly low for the bytes about to be written.
func checkFreeSpace(root string, writeSize int64) error {
	var stat unix.Statfs_t
	if err := unix.Statfs(root, &stat); err != nil {
		return &IOError{Cause: fmt.Errorf("statfs %q: %w", root, err)}
	}

	free := int64(stat.Bavail) * int64(stat.Bsize)
	if free < minFreeBytes || free < writeSize {
		return &IOError{Cause: fmt.Errorf("insufficient free space on %q: %d bytes available", root, free)}
	}
	return nil
}

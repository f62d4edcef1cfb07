package orchestrator

import "fmt"

// StorageNotFound reports that an operation required an on-disk asset that
// the media store has no record of.
type StorageNotFound struct {
	Fingerprint string
}

func (e *StorageNotFound) Error() string {
	return fmt.Sprintf("orchestrator: no stored asset for fingerprint %s", e.Fingerprint)
}

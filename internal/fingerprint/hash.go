package fingerprint

import "github.com/minio/highwayhash"

// visualHashKey is the 32-byte HighwayHash key used for every visual
// fingerprint computed by the archive. An all-zero key concretizes the
// "64-bit non-cryptographic hash seeded at zero" contract: every archived
// asset is hashed under the same fixed key, so the fingerprint is a pure
// function of pixel content.
var visualHashKey [32]byte

// computeHash derives the 64-bit visual fingerprint of an RGBA pixel buffer.
func computeHash(rgba []byte) (Fingerprint, error) {
	h, err := highwayhash.New64(visualHashKey[:])
	if err != nil {
		return 0, err
	}
	if _, err := h.Write(rgba); err != nil {
		return 0, err
	}
	return Fingerprint(h.Sum64()), nil
}

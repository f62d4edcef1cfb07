// Package fingerprint decodes archived bytes into a pixel buffer and derives
// the 64-bit visual fingerprint that identifies the asset.
//
// Media kind is detected from the leading bytes, never from a file
// extension. Images are decoded directly; videos are probed with ffprobe and
// a single representative frame is extracted with ffmpeg to stand in for the
// pixel buffer. The fingerprint is computed over the RGBA form of that pixel
// buffer using a seeded non-cryptographic 64-bit hash, so it is stable under
// any re-encoding that preserves pixel values.
package fingerprint

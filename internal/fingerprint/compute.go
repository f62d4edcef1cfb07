package fingerprint

import "context"

// Asset is the result of decoding and fingerprinting a submitted byte
// slice: either a single image or a video plus its derived thumbnail.
type Asset struct {
	Fingerprint Fingerprint
	Kind        Kind

	// Ext is the detected format token used for on-disk naming and the
	// metadata "format" field (e.g. "png", "jpg", "mp4").
	Ext string

	Width      int
	Height     int
	ColorModel string

	// OriginalBytes are the verbatim submitted bytes, written unmodified
	// for both image and video assets.
	OriginalBytes []byte

	// ThumbnailPNG is non-nil only for video assets: the derived preview
	// frame, PNG-encoded, written alongside the original.
	ThumbnailPNG []byte

	// DurationSeconds is non-nil only for video assets.
	DurationSeconds *float64
}

// Options configures optional collaborators used while decoding.
type Options struct {
	VideoTools VideoTools
}

// Compute decodes data, classifying it as image or video from its leading
// bytes, and derives its visual fingerprint.
func Compute(ctx context.Context, data []byte, opts Options) (Asset, error) {
	sniffed, err := sniff(data)
	if err != nil {
		return Asset{}, err
	}

	switch sniffed.Kind {
	case KindImage:
		return computeImage(data, sniffed.Ext)
	case KindVideo:
		return computeVideo(ctx, data, sniffed.Ext, opts)
	default:
		return Asset{}, &UnsupportedFile{}
	}
}

func computeImage(data []byte, ext string) (Asset, error) {
	buf, err := decodeImage(data, ext)
	if err != nil {
		return Asset{}, err
	}
	fp, err := computeHash(buf.RGBA)
	if err != nil {
		return Asset{}, &ImageError{Cause: err}
	}
	return Asset{
		Fingerprint:   fp,
		Kind:          KindImage,
		Ext:           ext,
		Width:         buf.Width,
		Height:        buf.Height,
		ColorModel:    buf.ColorModel,
		OriginalBytes: data,
	}, nil
}

func computeVideo(ctx context.Context, data []byte, ext string, opts Options) (Asset, error) {
	tools := opts.VideoTools
	if tools.ffprobe() == "" {
		tools = DefaultVideoTools()
	}

	thumb, duration, err := decodeVideo(ctx, tools, data, ext)
	if err != nil {
		return Asset{}, err
	}

	fp, err := computeHash(thumb.RGBA)
	if err != nil {
		return Asset{}, &VideoError{Cause: err}
	}

	thumbPNG, err := encodePNG(thumb)
	if err != nil {
		return Asset{}, &ThumbnailError{Reason: err.Error()}
	}

	return Asset{
		Fingerprint:     fp,
		Kind:            KindVideo,
		Ext:             ext,
		Width:           thumb.Width,
		Height:          thumb.Height,
		ColorModel:      thumb.ColorModel,
		OriginalBytes:   data,
		ThumbnailPNG:    thumbPNG,
		DurationSeconds: &duration,
	}, nil
}

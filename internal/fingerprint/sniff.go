package fingerprint

import "bytes"

// Kind identifies the broad media category sniffed from leading bytes.
type Kind int

const (
	KindUnknown Kind = iota
	KindImage
	KindVideo
)

// Leading-byte signatures recognized by sniff, which maps each to its
// canonical file-extension token, used both for on-disk naming and for the
// metadata "format" field.
var (
	pngSignature  = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	jpegSignature = []byte{0xff, 0xd8, 0xff}
	gif87Sig      = []byte("GIF87a")
	gif89Sig      = []byte("GIF89a")
	bmpSignature  = []byte("BM")
	riffSignature = []byte("RIFF")
	webpSignature = []byte("WEBP")
	ftypMarker    = []byte("ftyp")
	ebmlSignature = []byte{0x1a, 0x45, 0xdf, 0xa3}
)

// sniffResult carries the detected kind and its extension token.
type sniffResult struct {
	Kind Kind
	Ext  string
}

// sniff inspects the leading bytes of a candidate asset and classifies it.
func sniff(data []byte) (sniffResult, error) {
	switch {
	case bytes.HasPrefix(data, pngSignature):
		return sniffResult{KindImage, "png"}, nil
	case bytes.HasPrefix(data, jpegSignature):
		return sniffResult{KindImage, "jpg"}, nil
	case bytes.HasPrefix(data, gif87Sig), bytes.HasPrefix(data, gif89Sig):
		return sniffResult{KindImage, "gif"}, nil
	case bytes.HasPrefix(data, bmpSignature):
		return sniffResult{KindImage, "bmp"}, nil
	case len(data) >= 12 && bytes.HasPrefix(data, riffSignature) && bytes.Equal(data[8:12], webpSignature):
		return sniffResult{KindImage, "webp"}, nil
	case len(data) >= 12 && bytes.Equal(data[4:8], ftypMarker):
		return sniffResult{KindVideo, "mp4"}, nil
	case bytes.HasPrefix(data, ebmlSignature):
		return sniffResult{KindVideo, "mkv"}, nil
	default:
		return sniffResult{}, &UnsupportedFile{}
	}
}

package fingerprint

import (
	"bytes"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// pixelBuffer is a decoded image value: dimensions, color model name, and
// its pixels converted to 8-bit-per-channel RGBA.
type pixelBuffer struct {
	Width      int
	Height     int
	ColorModel string
	RGBA       []byte
	Ext        string
}

func decodeImage(data []byte, ext string) (pixelBuffer, error) {
	var img image.Image
	var err error
	var colorModel string

	switch ext {
	case "png":
		img, err = png.Decode(bytes.NewReader(data))
		colorModel = "Rgba8"
	case "jpg":
		img, err = jpeg.Decode(bytes.NewReader(data))
		colorModel = "Rgb8"
	case "gif":
		img, err = gif.Decode(bytes.NewReader(data))
		colorModel = "Rgba8"
	case "bmp", "webp":
		img, _, err = image.Decode(bytes.NewReader(data))
		colorModel = "Rgb8"
	default:
		img, _, err = image.Decode(bytes.NewReader(data))
		colorModel = "Rgba8"
	}
	if err != nil {
		return pixelBuffer{}, &ImageError{Cause: err}
	}

	return toRGBA(img, ext, colorModel), nil
}

// toRGBA normalizes any decoded image.Image to 8-bit-per-channel RGBA bytes.
func toRGBA(img image.Image, ext, colorModel string) pixelBuffer {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return pixelBuffer{
		Width:      width,
		Height:     height,
		ColorModel: colorModel,
		RGBA:       rgba.Pix,
		Ext:        ext,
	}
}

// InspectImage decodes data as ext and reports its dimensions and color
// model. It is used for metadata readback on an asset already persisted to
// disk (the image file itself, or a video's derived thumbnail), so the
// caller can recover width/height/color without re-deriving a fingerprint.
func InspectImage(data []byte, ext string) (width, height int, colorModel string, err error) {
	buf, err := decodeImage(data, ext)
	if err != nil {
		return 0, 0, "", err
	}
	return buf.Width, buf.Height, buf.ColorModel, nil
}

// encodePNG re-encodes a decoded pixel buffer as PNG, used to persist a
// video's derived thumbnail frame.
func encodePNG(buf pixelBuffer) ([]byte, error) {
	img := &image.RGBA{
		Pix:    buf.RGBA,
		Stride: buf.Width * 4,
		Rect:   image.Rect(0, 0, buf.Width, buf.Height),
	}
	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

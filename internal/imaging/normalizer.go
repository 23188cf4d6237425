// Package imaging normalizes uploaded avatar images before storage.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoding
	"image/png"
)

// Normalizer converts an uploaded image into the canonical stored form.
// The rest of the application treats the result as an opaque binary blob.
type Normalizer interface {
	// Normalize decodes data and returns the normalized image bytes.
	Normalize(data []byte) ([]byte, error)
}

// PNGNormalizer decodes JPEG or PNG input and re-encodes it as a square PNG
// of the configured edge length.
type PNGNormalizer struct {
	size int
}

// NewPNGNormalizer creates a PNGNormalizer producing size×size output.
func NewPNGNormalizer(size int) *PNGNormalizer {
	if size <= 0 {
		size = 250
	}
	return &PNGNormalizer{size: size}
}

var _ Normalizer = (*PNGNormalizer)(nil)

// Normalize implements Normalizer.
func (n *PNGNormalizer) Normalize(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, n.size, n.size))
	scaleNearest(dst, src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// scaleNearest resizes src into dst with nearest-neighbor sampling. Avatar
// thumbnails do not warrant an interpolating resampler.
func scaleNearest(dst *image.RGBA, src image.Image) {
	srcBounds := src.Bounds()
	dstBounds := dst.Bounds()
	srcW, srcH := srcBounds.Dx(), srcBounds.Dy()
	dstW, dstH := dstBounds.Dx(), dstBounds.Dy()

	for y := 0; y < dstH; y++ {
		srcY := srcBounds.Min.Y + y*srcH/dstH
		for x := 0; x < dstW; x++ {
			srcX := srcBounds.Min.X + x*srcW/dstW
			dst.Set(dstBounds.Min.X+x, dstBounds.Min.Y+y, src.At(srcX, srcY))
		}
	}
}

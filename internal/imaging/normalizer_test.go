package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPNGNormalizer(t *testing.T) {
	t.Parallel()

	t.Run("resizes png to configured square", func(t *testing.T) {
		t.Parallel()
		n := NewPNGNormalizer(250)

		src := image.NewRGBA(image.Rect(0, 0, 640, 480))
		out, err := n.Normalize(encodePNG(t, src))
		require.NoError(t, err)

		decoded, format, err := image.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 250, decoded.Bounds().Dx())
		assert.Equal(t, 250, decoded.Bounds().Dy())
	})

	t.Run("accepts jpeg input", func(t *testing.T) {
		t.Parallel()
		n := NewPNGNormalizer(16)

		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 8)), nil))

		out, err := n.Normalize(buf.Bytes())
		require.NoError(t, err)

		decoded, format, err := image.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, "png", format, "output is always PNG regardless of input")
		assert.Equal(t, 16, decoded.Bounds().Dx())
		assert.Equal(t, 16, decoded.Bounds().Dy())
	})

	t.Run("upscales small input", func(t *testing.T) {
		t.Parallel()
		n := NewPNGNormalizer(8)

		src := image.NewRGBA(image.Rect(0, 0, 2, 2))
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				src.Set(x, y, color.RGBA{R: 200, A: 255})
			}
		}

		out, err := n.Normalize(encodePNG(t, src))
		require.NoError(t, err)

		decoded, _, err := image.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 8, decoded.Bounds().Dx())

		r, _, _, a := decoded.At(4, 4).RGBA()
		assert.Equal(t, uint32(200*257), r, "nearest-neighbor must preserve pixel values")
		assert.Equal(t, uint32(255*257), a)
	})

	t.Run("rejects undecodable input", func(t *testing.T) {
		t.Parallel()
		n := NewPNGNormalizer(250)

		_, err := n.Normalize([]byte("not an image at all"))
		assert.Error(t, err)
	})

	t.Run("non-positive size falls back to default", func(t *testing.T) {
		t.Parallel()
		n := NewPNGNormalizer(0)

		out, err := n.Normalize(encodePNG(t, image.NewRGBA(image.Rect(0, 0, 4, 4))))
		require.NoError(t, err)

		decoded, _, err := image.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 250, decoded.Bounds().Dx())
	})
}

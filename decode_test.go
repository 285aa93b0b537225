package imgcache

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	t.Parallel()

	artifact, err := DecodeImage(pngBytes(t))
	require.NoError(t, err)

	img, ok := artifact.(image.Image)
	require.True(t, ok, "artifact should be an image.Image")
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
}

func TestDecodeImageInvalidData(t *testing.T) {
	t.Parallel()

	_, err := DecodeImage([]byte("not an image"))
	require.Error(t, err)
}

func TestDecodeBytes(t *testing.T) {
	t.Parallel()

	artifact, err := DecodeBytes([]byte("raw"))
	require.NoError(t, err)
	assert.Equal(t, []byte("raw"), artifact)
}

func TestCacheDefaultDecoder(t *testing.T) {
	t.Parallel()

	payload := pngBytes(t)
	c, err := New(func(ctx context.Context, key string) ([]byte, error) {
		return payload, nil
	})
	require.NoError(t, err)

	artifact, err := c.Artifact(context.Background(), "img")
	require.NoError(t, err)
	_, ok := artifact.(image.Image)
	assert.True(t, ok)
}

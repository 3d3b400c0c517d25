package ocr

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripe(t *testing.T, values ...uint8) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, len(values), 1))
	for x, v := range values {
		img.Set(x, 0, color.RGBA{R: v, G: v, B: v, A: 0xff})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeGray(t *testing.T, data []byte) []uint8 {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	g, ok := img.(*image.Gray)
	require.True(t, ok, "binarized image must be grayscale, got %T", img)
	return g.Pix
}

func TestBinarize(t *testing.T) {
	out, err := Binarize(stripe(t, 10, 199, 200, 255), DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 0xff, 0xff}, decodeGray(t, out))
}

func TestBinarizeJPEG(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 250
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}))

	out, err := Binarize(buf.Bytes(), DefaultThreshold)
	require.NoError(t, err)
	for _, v := range decodeGray(t, out) {
		assert.Equal(t, uint8(0xff), v)
	}
}

func TestBinarizeInvalid(t *testing.T) {
	_, err := Binarize([]byte("not an image"), DefaultThreshold)
	assert.Error(t, err)
}

func TestPreprocessed(t *testing.T) {
	var got []byte
	next := Func(func(ctx context.Context, img []byte) (string, error) {
		got = img
		return "HEX BOLT A2 10 M8", nil
	})

	eng := Preprocessed(next, 128)
	assert.Equal(t, "func+binarize", eng.Name())

	text, err := eng.Recognize(context.Background(), stripe(t, 100, 150))
	require.NoError(t, err)
	assert.Equal(t, "HEX BOLT A2 10 M8", text)
	assert.Equal(t, []uint8{0, 0xff}, decodeGray(t, got))

	_, err = eng.Recognize(context.Background(), []byte("garbage"))
	assert.Error(t, err)
}

func TestPreprocessedDisabled(t *testing.T) {
	boom := errors.New("boom")
	next := Func(func(ctx context.Context, img []byte) (string, error) { return "", boom })
	eng := Preprocessed(next, 0)
	assert.Equal(t, "func", eng.Name())

	_, err := eng.Recognize(context.Background(), []byte("raw bytes go through untouched"))
	assert.ErrorIs(t, err, boom)
}

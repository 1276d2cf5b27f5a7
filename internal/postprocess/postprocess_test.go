package postprocess

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(img *image.NRGBA, r, g, b uint8) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = 255
	}
}

func TestDownsampleDims(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 128, 96))
	fill(src, 200, 100, 50)

	out := Downsample(src, 64, 48)
	assert.Equal(t, 64, out.Bounds().Dx())
	assert.Equal(t, 48, out.Bounds().Dy())

	// A constant image stays constant through the resample.
	c := out.NRGBAAt(32, 24)
	assert.InDelta(t, 200, float64(c.R), 2)
	assert.InDelta(t, 100, float64(c.G), 2)
	assert.InDelta(t, 50, float64(c.B), 2)
	assert.EqualValues(t, 255, c.A)
}

func TestBloomSpreadsHighlights(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	fill(img, 10, 10, 10)
	// One hot spot in the middle.
	for y := 14; y < 18; y++ {
		for x := 14; x < 18; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 255, 255, 255
		}
	}

	before := img.NRGBAAt(12, 16).R
	Bloom(img, DefaultBloomConfig())
	after := img.NRGBAAt(12, 16).R

	assert.Greater(t, after, before, "glow bleeds past the hot spot")
	// Far corner stays dark.
	assert.Less(t, img.NRGBAAt(2, 2).R, uint8(20))
}

func TestBloomDarkImageUntouched(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	fill(img, 40, 60, 80)
	want := append([]uint8(nil), img.Pix...)

	Bloom(img, DefaultBloomConfig())
	assert.Equal(t, want, img.Pix, "nothing above threshold, nothing changes")
}

func TestBloomDisabled(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	fill(img, 255, 255, 255)
	want := append([]uint8(nil), img.Pix...)

	Bloom(img, BloomConfig{Threshold: 100, Radius: 0, Strength: 1})
	assert.Equal(t, want, img.Pix)

	Bloom(img, BloomConfig{Threshold: 100, Radius: 3, Strength: 0})
	assert.Equal(t, want, img.Pix)
}

func TestBloomAlphaPreserved(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	fill(img, 255, 255, 255)
	img.Pix[3] = 128

	Bloom(img, DefaultBloomConfig())
	require.EqualValues(t, 128, img.Pix[3])
}

func TestCropToContent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 8; y < 14; y++ {
		for x := 5; x < 9; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = 120
			img.Pix[i+3] = 255
		}
	}

	out := CropToContent(img)
	assert.Equal(t, 4, out.Bounds().Dx())
	assert.Equal(t, 6, out.Bounds().Dy())
	assert.EqualValues(t, 120, out.Pix[0])
	assert.EqualValues(t, 255, out.Pix[3])
}

func TestCropToContentEmpty(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	assert.Same(t, img, CropToContent(img))
}

func TestSpriteFrame(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = 200
			img.Pix[i+3] = 255
		}
	}

	out := SpriteFrame(img, 32, 0.9)
	require.Equal(t, 32, out.Bounds().Dx())
	require.Equal(t, 32, out.Bounds().Dy())
	// Content lands centered regardless of where it sat in the source.
	assert.NotZero(t, out.NRGBAAt(16, 16).A)
	assert.Zero(t, out.NRGBAAt(0, 0).A)
	assert.Zero(t, out.NRGBAAt(31, 31).A)
}

func TestSpriteFrameEmpty(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	out := SpriteFrame(img, 24, 0.9)
	assert.Equal(t, 24, out.Bounds().Dx())
	for _, p := range out.Pix {
		require.EqualValues(t, 0, p)
	}
}

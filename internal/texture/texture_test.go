package texture

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeJPEG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
}

func TestBuildIndexPrefersAlphaFormats(t *testing.T) {
	dir := t.TempDir()
	writeJPEG(t, filepath.Join(dir, "Side.jpg"))
	writePNG(t, filepath.Join(dir, "side.png"), color.NRGBA{R: 255, A: 255})
	writeJPEG(t, filepath.Join(dir, "roof.jpg"))

	idx := BuildIndex(dir)
	assert.Equal(t, 2, idx.Len())

	path, ok := idx.ResolvePath("side")
	require.True(t, ok)
	assert.Equal(t, ".png", filepath.Ext(path))

	path, ok = idx.ResolvePath("roof")
	require.True(t, ok)
	assert.Equal(t, ".jpg", filepath.Ext(path))
}

func TestResolvePathNormalizes(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "cabin.png"), color.NRGBA{A: 255})

	idx := BuildIndex(dir)

	for _, ref := range []string{
		"cabin.png",
		"CABIN.PNG",
		`textures\cabin.png`,
		"assets/textures/cabin.jpg", // stem match, extension ignored
	} {
		_, ok := idx.ResolvePath(ref)
		assert.True(t, ok, "reference %q should resolve", ref)
	}

	_, ok := idx.ResolvePath("missing")
	assert.False(t, ok)
}

func TestIndexWalksSubdirs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "textures", "deep")
	require.NoError(t, os.MkdirAll(sub, 0755))
	writePNG(t, filepath.Join(sub, "wheel.png"), color.NRGBA{A: 255})

	idx := BuildIndex(dir)
	_, ok := idx.ResolvePath("wheel")
	assert.True(t, ok)
}

func TestCacheResolve(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "panel.png"), color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	cache := NewCache(BuildIndex(dir))

	img := cache.Resolve("panel.png")
	require.NotNil(t, img)
	got := img.NRGBAAt(1, 1)
	assert.EqualValues(t, 10, got.R)
	assert.EqualValues(t, 20, got.G)
	assert.EqualValues(t, 30, got.B)

	// Second hit returns the cached image, not a reload.
	assert.Same(t, img, cache.Resolve("panel.png"))

	assert.Nil(t, cache.Resolve(""))
	assert.Nil(t, cache.Resolve("nope.png"))
}

func TestLoadTextureDecodes(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "hull.png")
	writePNG(t, p, color.NRGBA{R: 77, G: 88, B: 99, A: 255})

	img, err := LoadTexture(p)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = LoadTexture(filepath.Join(dir, "absent.png"))
	assert.Error(t, err)
}

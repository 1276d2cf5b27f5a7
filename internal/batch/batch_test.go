package batch

import (
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rigbench/internal/camera"
	"rigbench/internal/mathutil"
	"rigbench/internal/mesh"
	"rigbench/internal/scene"
)

func boxSceneFactory() *scene.Node {
	root := scene.NewNode("root")
	n := scene.NewNode("crate")
	n.Mesh = mesh.NewBox(4, 4, 4)
	n.Mat = &scene.Material{Name: "crate", Color: [3]float64{0.8, 0.6, 0.3}}
	root.AddChild(n)
	return root
}

func TestRunRendersFrames(t *testing.T) {
	dir := t.TempDir()
	var cam camera.Camera
	cam.Apply(camera.Settings{Position: mathutil.Vec3{0, 0, 12}, FOV: 55})

	results := Run(Config{
		NewScene:   boxSceneFactory,
		Camera:     cam,
		OutputDir:  dir,
		Frames:     3,
		FPS:        30,
		RenderSize: 32,
		Workers:    2,
		ThumbSize:  8,
	})

	require.Len(t, results, 3)
	for i, r := range results {
		assert.True(t, r.Success, r.Error)
		assert.Equal(t, i, r.Frame)
		require.NotNil(t, r.Thumb)
		assert.Equal(t, 8, r.Thumb.Bounds().Dx())

		info, err := os.Stat(filepath.Join(dir, r.File))
		require.NoError(t, err, r.File)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Equal(t, "frame_0000.webp", results[0].File)
	assert.Equal(t, "frame_0002.webp", results[2].File)
}

func TestRunNoThumbnails(t *testing.T) {
	var cam camera.Camera
	cam.Apply(camera.DefaultSettings())

	results := Run(Config{
		NewScene:   boxSceneFactory,
		Camera:     cam,
		OutputDir:  t.TempDir(),
		Frames:     1,
		RenderSize: 16,
		Workers:    4, // clamps to the frame count
	})
	require.Len(t, results, 1)
	assert.True(t, results[0].Success, results[0].Error)
	assert.Nil(t, results[0].Thumb)
}

func TestRunSprites(t *testing.T) {
	dir := t.TempDir()
	var cam camera.Camera
	cam.Apply(camera.Settings{Position: mathutil.Vec3{0, 0, 12}, FOV: 55})

	results := Run(Config{
		NewScene:   boxSceneFactory,
		Camera:     cam,
		OutputDir:  dir,
		Frames:     1,
		RenderSize: 32,
		Sprites:    true,
	})
	require.Len(t, results, 1)
	require.True(t, results[0].Success, results[0].Error)
	_, err := os.Stat(filepath.Join(dir, results[0].File))
	require.NoError(t, err)
}

func TestRunReportsWriteFailure(t *testing.T) {
	dir := t.TempDir()
	// A file where the output directory should be makes MkdirAll fail.
	blocked := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	var cam camera.Camera
	cam.Apply(camera.DefaultSettings())
	results := Run(Config{
		NewScene:   boxSceneFactory,
		Camera:     cam,
		OutputDir:  blocked,
		Frames:     1,
		RenderSize: 16,
	})
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.NotEmpty(t, results[0].Error)
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.json")
	results := []Result{
		{Frame: 0, File: "frame_0000.webp", Success: true},
		{Frame: 1, File: "frame_0001.webp", Success: false, Error: "boom"},
	}
	require.NoError(t, WriteManifest(path, results, 30))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, 0.0, entries[0].Time)
	assert.Empty(t, entries[0].Error)
	assert.InDelta(t, 1.0/30, entries[1].Time, 1e-12)
	assert.Equal(t, "boom", entries[1].Error)
}

func flatThumb(c uint8) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = c
	}
	return img
}

func TestBuildContactSheet(t *testing.T) {
	results := []Result{
		{Success: true, Thumb: flatThumb(10)},
		{Success: true, Thumb: flatThumb(60)},
		{Success: false, Thumb: flatThumb(99)}, // failed frames are skipped
		{Success: true, Thumb: flatThumb(110)},
		{Success: true},                        // no thumbnail captured
		{Success: true, Thumb: flatThumb(160)},
		{Success: true, Thumb: flatThumb(210)},
	}

	// Five thumbnails auto-grid at ceil(sqrt(5)) = 3 columns.
	sheet, err := BuildContactSheet(results, 0)
	require.NoError(t, err)
	assert.Equal(t, 24, sheet.Bounds().Dx())
	assert.Equal(t, 16, sheet.Bounds().Dy())

	assert.Equal(t, color.NRGBA{10, 10, 10, 10}, sheet.NRGBAAt(1, 1))
	assert.Equal(t, color.NRGBA{110, 110, 110, 110}, sheet.NRGBAAt(17, 1))
	assert.Equal(t, color.NRGBA{160, 160, 160, 160}, sheet.NRGBAAt(1, 9))
	// The sixth cell has no tile.
	assert.Equal(t, color.NRGBA{}, sheet.NRGBAAt(17, 9))

	wide, err := BuildContactSheet(results, 2)
	require.NoError(t, err)
	assert.Equal(t, 16, wide.Bounds().Dx())
	assert.Equal(t, 24, wide.Bounds().Dy())
}

func TestBuildContactSheetEmpty(t *testing.T) {
	_, err := BuildContactSheet([]Result{{Success: false, Error: "x"}}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no frames")
}

func TestWriteContactSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.webp")
	results := []Result{{Success: true, Thumb: flatThumb(128)}}
	require.NoError(t, WriteContactSheet(path, results, 0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))
}

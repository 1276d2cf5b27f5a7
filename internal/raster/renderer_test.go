package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rigbench/internal/camera"
	"rigbench/internal/mathutil"
	"rigbench/internal/mesh"
	"rigbench/internal/scene"
)

func testCamera() camera.Camera {
	return camera.Camera{Position: mathutil.Vec3{0, 0, 10}, FOV: 55}
}

func twoBoxScene(front bool) *scene.Node {
	root := scene.NewNode("root")

	back := scene.NewNode("back")
	back.Mesh = mesh.NewBox(6, 6, 1)
	back.Mat = &scene.Material{Name: "blue", Color: [3]float64{0.05, 0.1, 0.9}}
	back.Position = mathutil.Vec3{0, 0, -6}
	root.AddChild(back)

	if front {
		f := scene.NewNode("front")
		f.Mesh = mesh.NewBox(2, 2, 1)
		f.Mat = &scene.Material{Name: "red", Color: [3]float64{0.9, 0.1, 0.05}}
		root.AddChild(f)
	}
	return root
}

func TestRenderSceneSmoke(t *testing.T) {
	cam := testCamera()
	img := RenderScene(twoBoxScene(true), &cam, Config{Width: 64, Height: 64})

	require.Equal(t, 64, img.Bounds().Dx())
	require.Equal(t, 64, img.Bounds().Dy())

	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
			lit++
		}
	}
	assert.Greater(t, lit, 200, "scene leaves most of a 64x64 view lit")
}

func TestRenderOcclusion(t *testing.T) {
	cam := testCamera()

	withFront := RenderScene(twoBoxScene(true), &cam, Config{Width: 64, Height: 64})
	c := withFront.NRGBAAt(32, 32)
	assert.Greater(t, c.R, c.B, "front red box covers the center")

	withoutFront := RenderScene(twoBoxScene(false), &cam, Config{Width: 64, Height: 64})
	c = withoutFront.NRGBAAt(32, 32)
	assert.Greater(t, c.B, c.R, "back blue box shows once the front is gone")
}

func TestRenderTransparentBackground(t *testing.T) {
	cam := testCamera()
	img := RenderScene(twoBoxScene(true), &cam, Config{Width: 64, Height: 64, Transparent: true})

	assert.Zero(t, img.NRGBAAt(1, 1).A, "empty corner stays transparent")
	assert.EqualValues(t, 255, img.NRGBAAt(32, 32).A, "covered center is opaque")
}

func TestRenderBackgroundColor(t *testing.T) {
	cam := testCamera()
	img := RenderScene(scene.NewNode("empty"), &cam, Config{
		Width: 16, Height: 16,
		Background: [3]float64{1, 0, 0},
	})
	c := img.NRGBAAt(8, 8)
	assert.EqualValues(t, 255, c.R)
	assert.Zero(t, c.G)
	assert.EqualValues(t, 255, c.A)
}

func TestRenderSupersampleDims(t *testing.T) {
	cam := testCamera()
	img := RenderScene(twoBoxScene(true), &cam, Config{Width: 50, Height: 40, Supersample: 2})
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())
}

func TestRenderLines(t *testing.T) {
	cam := testCamera()
	root := scene.NewNode("root")
	wire := scene.NewNode("wire")
	wire.Lines = mesh.NewBoxEdges(4, 4, 4)
	root.AddChild(wire)

	img := RenderScene(root, &cam, Config{Width: 64, Height: 64})

	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			lit++
		}
	}
	assert.Greater(t, lit, 30, "box outline draws visible strokes")
}

func TestLinesDrawOverFaces(t *testing.T) {
	cam := testCamera()

	build := func(withLines bool) *scene.Node {
		root := scene.NewNode("root")
		solid := scene.NewNode("solid")
		solid.Mesh = mesh.NewBox(4, 4, 4)
		solid.Mat = &scene.Material{Name: "gray", Color: [3]float64{0.2, 0.2, 0.2}}
		if withLines {
			solid.Lines = mesh.NewBoxEdges(4, 4, 4)
		}
		root.AddChild(solid)
		return root
	}

	plain := RenderScene(build(false), &cam, Config{Width: 64, Height: 64})
	outlined := RenderScene(build(true), &cam, Config{Width: 64, Height: 64})

	// The outline shares every edge with the box faces; the depth bias
	// must still let the strokes through.
	changed := 0
	for i := 0; i < len(plain.Pix); i += 4 {
		if plain.Pix[i] != outlined.Pix[i] {
			changed++
		}
	}
	assert.Greater(t, changed, 20, "edge strokes draw on top of their own faces")
}

func TestNearPlaneDropsGeometry(t *testing.T) {
	cam := camera.Camera{Position: mathutil.Vec3{0, 0, 0}, FOV: 55}
	root := scene.NewNode("root")
	behind := scene.NewNode("behind")
	behind.Mesh = mesh.NewBox(2, 2, 2)
	behind.Position = mathutil.Vec3{0, 0, 5} // behind the camera
	root.AddChild(behind)

	img := RenderScene(root, &cam, Config{Width: 32, Height: 32})
	for i := 0; i < len(img.Pix); i += 4 {
		require.Zero(t, img.Pix[i], "nothing behind the camera may rasterize")
	}
}

func TestViewportReusesBuffers(t *testing.T) {
	cam := testCamera()
	vp := NewViewport(64, 64)

	first := vp.Render(twoBoxScene(true), &cam, [3]float64{0, 0, 0})
	c := first.NRGBAAt(32, 32)
	assert.Greater(t, c.R, c.B, "front red box covers the center")

	second := vp.Render(twoBoxScene(false), &cam, [3]float64{0, 0, 0})
	assert.Same(t, first, second, "frames share one image")
	c = second.NRGBAAt(32, 32)
	assert.Greater(t, c.B, c.R, "stale front pixels do not survive the clear")
}

func TestClearResetsDepth(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	fb.ZBuf[0] = -1
	fb.Clear(10, 20, 30, 255)
	assert.Equal(t, uint8(10), fb.Color[0])
	assert.Less(t, fb.ZBuf[0], -1e300)
}

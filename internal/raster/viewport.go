package raster

import (
	"image"

	"rigbench/internal/camera"
	"rigbench/internal/scene"
)

// Viewport renders the interactive views at a fixed size, carrying one
// framebuffer and output image across frames instead of reallocating.
type Viewport struct {
	fb  *FrameBuffer
	img *image.NRGBA
}

// NewViewport allocates the buffers for a w x h live view.
func NewViewport(w, h int) *Viewport {
	return &Viewport{
		fb:  NewFrameBuffer(w, h),
		img: image.NewNRGBA(image.Rect(0, 0, w, h)),
	}
}

// Render draws one frame over the given background color. The returned
// image is overwritten by the next call.
func (vp *Viewport) Render(root *scene.Node, cam *camera.Camera, bg [3]float64) *image.NRGBA {
	r, g, b := encodeColor(bg)
	vp.fb.Clear(r, g, b, 255)
	lc := DefaultLightConfig()
	RenderSceneInto(vp.fb, root, cam, 0.1, &lc)
	copy(vp.img.Pix, vp.fb.Color)
	return vp.img
}

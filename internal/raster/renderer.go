package raster

import (
	"image"
	"math"

	"rigbench/internal/camera"
	"rigbench/internal/mathutil"
	"rigbench/internal/postprocess"
	"rigbench/internal/scene"
)

// Config controls one scene render pass.
type Config struct {
	Width       int
	Height      int
	Supersample int          // render scale factor, 1 = off
	Background  [3]float64   // linear RGB
	Transparent bool         // alpha-0 background for compositing
	Near        float64      // near plane distance, 0 = default 0.1
	Light       *LightConfig // nil = DefaultLightConfig
}

// RenderScene draws the visible scene through cam into a new NRGBA image.
// Triangles are filled first, line sets drawn on top with a depth bias so
// edge outlines stay visible on their faces. Lighting is flat-shaded in
// view space, so the light rig follows the camera.
func RenderScene(root *scene.Node, cam *camera.Camera, cfg Config) *image.NRGBA {
	ss := cfg.Supersample
	if ss < 1 {
		ss = 1
	}
	w, h := cfg.Width*ss, cfg.Height*ss
	near := cfg.Near
	if near <= 0 {
		near = 0.1
	}
	lc := cfg.Light
	if lc == nil {
		d := DefaultLightConfig()
		lc = &d
	}

	fb := NewFrameBuffer(w, h)
	if cfg.Transparent {
		fb.Clear(0, 0, 0, 0)
	} else {
		br, bg, bb := encodeColor(cfg.Background)
		fb.Clear(br, bg, bb, 255)
	}
	RenderSceneInto(fb, root, cam, near, lc)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, fb.Color)
	if ss > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}
	return img
}

// RenderSceneInto draws into an existing, already cleared framebuffer.
// Viewport carries one across frames for the live viewers.
func RenderSceneInto(fb *FrameBuffer, root *scene.Node, cam *camera.Camera, near float64, lc *LightConfig) {
	view := cam.ViewMatrix()
	f := float64(fb.Height) / 2 / math.Tan(mathutil.Deg2Rad(cam.FOV)/2)
	cx, cy := float64(fb.Width)/2, float64(fb.Height)/2

	scene.WalkVisible(root, func(n *scene.Node, world mathutil.Mat4) {
		if n.Mesh == nil {
			return
		}
		drawMesh(fb, n, mathutil.Mat4Mul(view, world), f, cx, cy, near, lc)
	})
	scene.WalkVisible(root, func(n *scene.Node, world mathutil.Mat4) {
		if n.Lines == nil {
			return
		}
		drawLines(fb, n, mathutil.Mat4Mul(view, world), f, cx, cy, near)
	})
}

// drawMesh projects a node's mesh through the model-view matrix and fills
// its triangles. Triangles touching the near plane are dropped, not clipped;
// the scenes here keep the camera well clear of the geometry.
func drawMesh(fb *FrameBuffer, n *scene.Node, mv mathutil.Mat4, f, cx, cy, near float64, lc *LightConfig) {
	m := n.Mesh
	nv := len(m.Verts)
	vs := make([]mathutil.Vec3, nv)
	px := make([]float64, nv)
	py := make([]float64, nv)
	pz := make([]float64, nv)
	ok := make([]bool, nv)
	for i, v := range m.Verts {
		t := mv.MulPoint(v)
		vs[i] = t
		if t[2] < -near {
			ok[i] = true
			px[i] = cx + t[0]*f/(-t[2])
			py[i] = cy - t[1]*f/(-t[2])
			pz[i] = t[2]
		}
	}

	var tex *image.NRGBA
	var defR, defG, defB uint8 = 160, 160, 170
	if n.Mat != nil {
		if n.Mat.Tex != nil {
			tex = n.Mat.Tex
			defR, defG, defB, _ = averageColor(tex)
		} else {
			defR, defG, defB = encodeColor(n.Mat.Color)
		}
	}

	for i := range m.Tris {
		tri := m.Tris[i]
		if !ok[tri.V[0]] || !ok[tri.V[1]] || !ok[tri.V[2]] {
			continue
		}
		a, b, c := vs[tri.V[0]], vs[tri.V[1]], vs[tri.V[2]]
		nrm := b.Sub(a).Cross(c.Sub(a))
		if nrm.Len() < 1e-12 {
			continue
		}
		shade := lc.ComputeShade(nrm.Normalize())
		FillTriangle(fb, px, py, pz, m.UVs, tri.V, tri.T, tex, defR, defG, defB, 255, shade, lc)
	}
}

func drawLines(fb *FrameBuffer, n *scene.Node, mv mathutil.Mat4, f, cx, cy, near float64) {
	l := n.Lines
	var r, g, b uint8 = 190, 190, 200
	if n.Mat != nil {
		r, g, b = encodeColor(n.Mat.Color)
	}
	vs := make([]mathutil.Vec3, len(l.Verts))
	for i, v := range l.Verts {
		vs[i] = mv.MulPoint(v)
	}
	for _, s := range l.Segs {
		if s[0] < 0 || s[0] >= len(vs) || s[1] < 0 || s[1] >= len(vs) {
			continue
		}
		DrawLineView(fb, vs[s[0]], vs[s[1]], f, cx, cy, near, r, g, b)
	}
}

// encodeColor converts linear RGB in 0..1 to sRGB bytes.
func encodeColor(c [3]float64) (uint8, uint8, uint8) {
	enc := func(v float64) uint8 {
		if v < 0 {
			v = 0
		}
		return clamp255(math.Pow(v, 1/2.2) * 255)
	}
	return enc(c[0]), enc(c[1]), enc(c[2])
}

func averageColor(tex *image.NRGBA) (uint8, uint8, uint8, uint8) {
	b := tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 160, 160, 170, 255
	}

	var sumR, sumG, sumB float64
	total := w * h
	stride := tex.Stride
	for y := 0; y < h; y++ {
		off := y * stride
		for x := 0; x < w; x++ {
			i := off + x*4
			sumR += float64(tex.Pix[i])
			sumG += float64(tex.Pix[i+1])
			sumB += float64(tex.Pix[i+2])
		}
	}
	n := float64(total)
	return uint8(sumR/n + 0.5), uint8(sumG/n + 0.5), uint8(sumB/n + 0.5), 255
}

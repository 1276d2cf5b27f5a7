package raster

import (
	"math"

	"rigbench/internal/mathutil"
)

// lineDepthBias pulls line depths slightly toward the camera so outlines
// sitting exactly on a face win the z test against it.
const lineDepthBias = 0.998

// DrawLineView rasterizes a depth-tested segment given in view space
// (camera at the origin looking down -z). The segment is clipped at the
// near plane, projected with focal length f around (cx, cy), and stepped
// with an integer DDA interpolating view depth.
func DrawLineView(fb *FrameBuffer, a, b mathutil.Vec3, f, cx, cy, near float64, r, g, bl uint8) {
	// Near-plane clip: keep the part with z < -near.
	az, bz := a[2], b[2]
	if az > -near && bz > -near {
		return
	}
	if az > -near || bz > -near {
		t := (-near - az) / (bz - az)
		hit := a.Add(b.Sub(a).Scale(t))
		if az > -near {
			a = hit
		} else {
			b = hit
		}
	}

	ax := cx + a[0]*f/(-a[2])
	ay := cy - a[1]*f/(-a[2])
	bx := cx + b[0]*f/(-b[2])
	by := cy - b[1]*f/(-b[2])

	steps := int(math.Max(math.Abs(bx-ax), math.Abs(by-ay))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		sx := int(ax + t*(bx-ax) + 0.5)
		sy := int(ay + t*(by-ay) + 0.5)
		if sx < 0 || sx >= fb.Width || sy < 0 || sy >= fb.Height {
			continue
		}
		z := (a[2] + t*(b[2]-a[2])) * lineDepthBias
		idx := sy*fb.Width + sx
		if z <= fb.ZBuf[idx] {
			continue
		}
		fb.ZBuf[idx] = z
		pxIdx := idx * 4
		fb.Color[pxIdx] = r
		fb.Color[pxIdx+1] = g
		fb.Color[pxIdx+2] = bl
		fb.Color[pxIdx+3] = 255
	}
}

package postprocess

import "image"

// BloomConfig controls the glow pass: pixels brighter than Threshold are
// blurred and added back.
type BloomConfig struct {
	Threshold uint8   // per-channel luminance cutoff
	Radius    int     // blur radius in pixels
	Strength  float64 // additive gain, 0..1 typical
}

// DefaultBloomConfig matches the viewer's subtle glow.
func DefaultBloomConfig() BloomConfig {
	return BloomConfig{Threshold: 180, Radius: 6, Strength: 0.55}
}

// Bloom applies a threshold + separable box blur + additive merge in place
// and returns img. Radius <= 0 or Strength <= 0 leaves the image untouched.
func Bloom(img *image.NRGBA, cfg BloomConfig) *image.NRGBA {
	if cfg.Radius <= 0 || cfg.Strength <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return img
	}

	// Bright pass on luminance.
	bright := make([]float64, w*h*3)
	thr := float64(cfg.Threshold)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			r := float64(img.Pix[si])
			g := float64(img.Pix[si+1])
			bl := float64(img.Pix[si+2])
			lum := 0.299*r + 0.587*g + 0.114*bl
			if lum <= thr {
				continue
			}
			k := (lum - thr) / (255 - thr)
			di := (y*w + x) * 3
			bright[di] = r * k
			bright[di+1] = g * k
			bright[di+2] = bl * k
		}
	}

	// Separable box blur, horizontal then vertical.
	tmp := make([]float64, len(bright))
	boxBlurH(bright, tmp, w, h, cfg.Radius)
	boxBlurV(tmp, bright, w, h, cfg.Radius)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := (y*w + x) * 3
			di := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			img.Pix[di] = clamp8(float64(img.Pix[di]) + bright[si]*cfg.Strength)
			img.Pix[di+1] = clamp8(float64(img.Pix[di+1]) + bright[si+1]*cfg.Strength)
			img.Pix[di+2] = clamp8(float64(img.Pix[di+2]) + bright[si+2]*cfg.Strength)
		}
	}
	return img
}

func boxBlurH(src, dst []float64, w, h, radius int) {
	norm := 1.0 / float64(2*radius+1)
	for y := 0; y < h; y++ {
		row := y * w * 3
		var sr, sg, sb float64
		// Prime the window, clamping at the left edge.
		for i := -radius; i <= radius; i++ {
			j := clampIdx(i, w)
			sr += src[row+j*3]
			sg += src[row+j*3+1]
			sb += src[row+j*3+2]
		}
		for x := 0; x < w; x++ {
			di := row + x*3
			dst[di] = sr * norm
			dst[di+1] = sg * norm
			dst[di+2] = sb * norm
			out := clampIdx(x-radius, w) * 3
			in := clampIdx(x+radius+1, w) * 3
			sr += src[row+in] - src[row+out]
			sg += src[row+in+1] - src[row+out+1]
			sb += src[row+in+2] - src[row+out+2]
		}
	}
}

func boxBlurV(src, dst []float64, w, h, radius int) {
	norm := 1.0 / float64(2*radius+1)
	for x := 0; x < w; x++ {
		var sr, sg, sb float64
		for i := -radius; i <= radius; i++ {
			j := clampIdx(i, h)
			sr += src[(j*w+x)*3]
			sg += src[(j*w+x)*3+1]
			sb += src[(j*w+x)*3+2]
		}
		for y := 0; y < h; y++ {
			di := (y*w + x) * 3
			dst[di] = sr * norm
			dst[di+1] = sg * norm
			dst[di+2] = sb * norm
			out := (clampIdx(y-radius, h)*w + x) * 3
			in := (clampIdx(y+radius+1, h)*w + x) * 3
			sr += src[in] - src[out]
			sg += src[in+1] - src[out+1]
			sb += src[in+2] - src[out+2]
		}
	}
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

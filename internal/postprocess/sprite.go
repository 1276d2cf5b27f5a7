package postprocess

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// CropToContent trims fully transparent margins. Images without a single
// opaque pixel come back unchanged.
func CropToContent(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			if img.Pix[row+x*4+3] == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		return img
	}

	cw, ch := maxX-minX+1, maxY-minY+1
	out := image.NewNRGBA(image.Rect(0, 0, cw, ch))
	for y := 0; y < ch; y++ {
		src := (minY+y)*img.Stride + minX*4
		copy(out.Pix[y*out.Stride:y*out.Stride+cw*4], img.Pix[src:src+cw*4])
	}
	return out
}

// SpriteFrame crops a transparent render to its content, then scales and
// centers it on a square transparent canvas. Turntable sprite sequences
// keep the subject centered while its silhouette swings frame to frame.
func SpriteFrame(img *image.NRGBA, size int, fill float64) *image.NRGBA {
	cropped := CropToContent(img)
	b := cropped.Bounds()
	sw, sh := b.Dx(), b.Dy()
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	if sw == 0 || sh == 0 {
		return canvas
	}

	if fill <= 0 || fill > 1 {
		fill = 0.92
	}
	sc := float64(size) * fill / math.Max(float64(sw), float64(sh))
	nw, nh := int(float64(sw)*sc+0.5), int(float64(sh)*sc+0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	ox, oy := (size-nw)/2, (size-nh)/2
	draw.CatmullRom.Scale(canvas, image.Rect(ox, oy, ox+nw, oy+nh), cropped, b, draw.Src, nil)
	return canvas
}

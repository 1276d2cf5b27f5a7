package batch

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"os"

	"github.com/HugoSmits86/nativewebp"
)

// BuildContactSheet tiles frame thumbnails row-major into a single image.
// Columns default to a near-square grid when cols <= 0.
func BuildContactSheet(results []Result, cols int) (*image.NRGBA, error) {
	var thumbs []image.Image
	for _, r := range results {
		if r.Success && r.Thumb != nil {
			thumbs = append(thumbs, r.Thumb)
		}
	}
	if len(thumbs) == 0 {
		return nil, fmt.Errorf("batch: no frames for contact sheet")
	}
	if cols <= 0 {
		cols = int(math.Ceil(math.Sqrt(float64(len(thumbs)))))
	}
	rows := (len(thumbs) + cols - 1) / cols

	tw := thumbs[0].Bounds().Dx()
	th := thumbs[0].Bounds().Dy()
	sheet := image.NewNRGBA(image.Rect(0, 0, cols*tw, rows*th))
	for i, t := range thumbs {
		x := (i % cols) * tw
		y := (i / cols) * th
		draw.Draw(sheet, image.Rect(x, y, x+tw, y+th), t, t.Bounds().Min, draw.Src)
	}
	return sheet, nil
}

// WriteContactSheet builds the sheet and writes it as WebP.
func WriteContactSheet(path string, results []Result, cols int) error {
	sheet, err := BuildContactSheet(results, cols)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := nativewebp.Encode(f, sheet, nil); err != nil {
		return fmt.Errorf("batch: contact sheet encode: %v", err)
	}
	return nil
}

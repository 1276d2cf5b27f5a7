package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"rigbench/internal/anim"
	"rigbench/internal/camera"
	"rigbench/internal/postprocess"
	"rigbench/internal/raster"
	"rigbench/internal/scene"

	"github.com/HugoSmits86/nativewebp"
	"github.com/nfnt/resize"
)

// Config holds all shared resources for a turntable run.
type Config struct {
	// NewScene builds a fresh tree. Each worker gets its own copy because
	// frame animation mutates node transforms.
	NewScene    func() *scene.Node
	Camera      camera.Camera
	Anim        anim.State
	OutputDir   string
	Frames      int
	FPS         float64
	RenderSize  int
	Supersample int
	WebPQuality int
	Workers     int
	ThumbSize   int  // contact sheet thumbnail edge, 0 = no thumbnails
	Sprites     bool // transparent background, frames cropped and centered
	Background  [3]float64
	Light       *raster.LightConfig
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame   int
	File    string
	Thumb   image.Image
	Success bool
	Error   string
}

// Run renders all frames using a worker pool.
func Run(cfg Config) []Result {
	total := cfg.Frames
	results := make([]Result, total)
	var processed atomic.Int64

	fps := cfg.FPS
	if fps <= 0 {
		fps = 30
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > total {
		workers = total
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			root := cfg.NewScene()
			for idx := range frameChan {
				results[idx] = processFrame(cfg, root, idx, fps)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := 0; i < total; i++ {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func processFrame(cfg Config, root *scene.Node, idx int, fps float64) Result {
	name := fmt.Sprintf("frame_%04d.webp", idx)
	res := Result{Frame: idx, File: name}

	t := float64(idx) / fps
	anim.Apply(root, t, cfg.Anim)

	cam := cfg.Camera
	img := raster.RenderScene(root, &cam, raster.Config{
		Width:       cfg.RenderSize,
		Height:      cfg.RenderSize,
		Supersample: cfg.Supersample,
		Transparent: cfg.Sprites,
		Background:  cfg.Background,
		Light:       cfg.Light,
	})
	if cfg.Sprites {
		img = postprocess.SpriteFrame(img, cfg.RenderSize, 0.92)
	}

	if cfg.ThumbSize > 0 {
		res.Thumb = resize.Resize(uint(cfg.ThumbSize), uint(cfg.ThumbSize), img, resize.Bilinear)
	}

	outPath := filepath.Join(cfg.OutputDir, name)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", err)
		return res
	}

	res.Success = true
	return res
}

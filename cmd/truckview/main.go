package main

import (
	"flag"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"time"

	"rigbench/internal/anim"
	"rigbench/internal/app"
	"rigbench/internal/batch"
	"rigbench/internal/camera"
	"rigbench/internal/config"
	"rigbench/internal/postprocess"
	"rigbench/internal/raster"
	"rigbench/internal/scene"
	"rigbench/internal/truck"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	size := flag.Int("size", 640, "Viewport size in pixels (live mode)")
	settings := flag.String("settings", "", "Camera settings JSON path (default: per-user config dir)")
	frames := flag.Int("frames", 0, "Render N turntable frames headless instead of opening a window")
	fps := flag.Float64("fps", 30, "Turntable frame rate")
	outputDir := flag.String("output", "", "Output directory (default: <assets>/renders)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	quality := flag.Int("quality", 0, "WebP quality 1-100 (default: 90)")
	sprites := flag.Bool("sprites", false, "Turntable frames on transparency, cropped and centered")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		OutputDir: *outputDir,
		Quality:   *quality,
		Workers:   *workers,
	})
	if cfg.SettingsPath == "" {
		cfg.SettingsPath = *settings
	}

	store := camera.NewStore(cfg.SettingsPath)
	camSt := store.Load()

	if *frames > 0 {
		runTurntable(cfg, camSt, *frames, *fps, *sprites)
		return
	}

	v := newViewerView(store, camSt, *size)
	fmt.Printf("Camera settings: %s\n", store.Path())
	fmt.Println("Keys: 1=spin 2=bounce 3=orbit B=bloom F=fit camera R=reload settings")

	shell := &app.Shell{Title: "rigbench truckview", Width: *size, Height: *size, View: v}
	if err := shell.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTurntable renders a full-orbit frame sequence plus manifest and
// contact sheet.
func runTurntable(cfg config.Config, camSt camera.Settings, frames int, fps float64, sprites bool) {
	outDir := filepath.Join(cfg.OutputDir, "turntable")

	st := anim.Default()
	st.Orbit = true
	// One full revolution across the sequence.
	st.OrbitRate = 2 * math.Pi * fps / float64(frames)

	fmt.Printf("Turntable: %d frames @ %.0f fps, %dpx\n", frames, fps, cfg.RenderSize)
	fmt.Printf("Output: %s\n", outDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		NewScene:    func() *scene.Node { return truck.Build(truck.ViewerPreset()) },
		Camera:      camera.FromSettings(camSt),
		Anim:        st,
		OutputDir:   outDir,
		Frames:      frames,
		FPS:         fps,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		WebPQuality: cfg.WebPQuality,
		Workers:     cfg.Workers,
		ThumbSize:   160,
		Sprites:     sprites,
		Background:  [3]float64{0.08, 0.09, 0.11},
	})

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed := 0, 0
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			fmt.Printf("  frame %d: %s\n", r.Frame, r.Error)
		}
	}
	fmt.Printf("Rendered: %d/%d\n", success, frames)

	manifestPath := filepath.Join(outDir, "frames.json")
	if err := batch.WriteManifest(manifestPath, results, fps); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}
	sheetPath := filepath.Join(outDir, "sheet.webp")
	if err := batch.WriteContactSheet(sheetPath, results, 0); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: contact sheet failed: %v\n", err)
	} else {
		fmt.Printf("Contact sheet: %s\n", sheetPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

type viewerView struct {
	store  *camera.Store
	cam    camera.Camera
	root   *scene.Node
	animSt anim.State
	vp     *raster.Viewport
	t      float64
	bloom  bool
	img    *image.NRGBA
	note   string
}

func newViewerView(store *camera.Store, camSt camera.Settings, size int) *viewerView {
	return &viewerView{
		store:  store,
		cam:    camera.FromSettings(camSt),
		root:   truck.Build(truck.ViewerPreset()),
		animSt: anim.Default(),
		vp:     raster.NewViewport(size, size),
	}
}

func (v *viewerView) Step(dt float64) error {
	v.t += dt

	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		v.animSt.Spin = !v.animSt.Spin
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		v.animSt.Bounce = !v.animSt.Bounce
	}
	if inpututil.IsKeyJustPressed(ebiten.Key3) {
		v.animSt.Orbit = !v.animSt.Orbit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		v.bloom = !v.bloom
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		v.cam.AutoFit(scene.Bounds(v.root), 1.2)
		v.note = "camera fit"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.cam.Apply(v.store.Load())
		v.note = "settings reloaded"
	}

	anim.Apply(v.root, v.t, v.animSt)
	v.img = v.vp.Render(v.root, &v.cam, [3]float64{0.08, 0.09, 0.11})
	if v.bloom {
		v.img = postprocess.Bloom(v.img, postprocess.DefaultBloomConfig())
	}
	return nil
}

func (v *viewerView) Frame() *image.NRGBA { return v.img }

func (v *viewerView) HUD() string {
	nodes, tris, verts := scene.Counts(v.root)
	onoff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	s := fmt.Sprintf("nodes %d  tris %d  verts %d\nspin %s  bounce %s  orbit %s  bloom %s",
		nodes, tris, verts,
		onoff(v.animSt.Spin), onoff(v.animSt.Bounce), onoff(v.animSt.Orbit), onoff(v.bloom))
	if v.note != "" {
		s += "\n" + v.note
	}
	return s
}

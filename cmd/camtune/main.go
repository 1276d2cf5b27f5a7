package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"rigbench/internal/anim"
	"rigbench/internal/app"
	"rigbench/internal/camera"
	"rigbench/internal/mathutil"
	"rigbench/internal/raster"
	"rigbench/internal/scene"
	"rigbench/internal/truck"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

func main() {
	// CLI flags
	size := flag.Int("size", 640, "Viewport size in pixels")
	settings := flag.String("settings", "", "Camera settings JSON path (default: per-user config dir)")

	flag.Parse()

	store := camera.NewStore(*settings)
	v := newTuneView(store, *size)

	fmt.Printf("Camera settings: %s\n", store.Path())
	fmt.Println("Keys: arrows=pan QE=height WS/AD/ZX=rotate -/= fov R=reset C=copy JSON")

	shell := &app.Shell{Title: "rigbench camtune", Width: *size, Height: *size, View: v}
	if err := shell.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	v.flush()
}

type tuneView struct {
	store    *camera.Store
	notifier camera.Notifier
	cam      camera.Camera
	root     *scene.Node
	animSt   anim.State
	vp       *raster.Viewport
	t        float64
	img      *image.NRGBA

	pending camera.Settings
	dirty   bool
	quiet   float64
	note    string
}

func newTuneView(store *camera.Store, size int) *tuneView {
	v := &tuneView{
		store:  store,
		root:   truck.Build(truck.TunePreset()),
		animSt: anim.Default(),
		vp:     raster.NewViewport(size, size),
	}
	v.pending = store.Load()
	v.cam = camera.FromSettings(v.pending)
	// All camera edits route through the notifier, same path a second
	// consumer would use.
	v.notifier.Subscribe(func(st camera.Settings) { v.cam.Apply(st) })
	return v
}

func (v *tuneView) Step(dt float64) error {
	v.t += dt
	st := v.pending
	changed := false

	adj := func(p *float64, rate float64, dec, inc ebiten.Key) {
		if ebiten.IsKeyPressed(dec) {
			*p -= rate * dt
			changed = true
		}
		if ebiten.IsKeyPressed(inc) {
			*p += rate * dt
			changed = true
		}
	}

	adj(&st.Position[0], 6, ebiten.KeyArrowLeft, ebiten.KeyArrowRight)
	adj(&st.Position[2], 8, ebiten.KeyArrowUp, ebiten.KeyArrowDown)
	adj(&st.Position[1], 5, ebiten.KeyQ, ebiten.KeyE)
	adj(&st.Rotation[0], 0.8, ebiten.KeyS, ebiten.KeyW)
	adj(&st.Rotation[1], 0.8, ebiten.KeyA, ebiten.KeyD)
	adj(&st.Rotation[2], 0.8, ebiten.KeyZ, ebiten.KeyX)
	adj(&st.FOV, 25, ebiten.KeyMinus, ebiten.KeyEqual)

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		reset, err := v.store.Reset()
		if err != nil {
			log.Printf("camtune: reset: %v", err)
		}
		v.pending = reset
		v.dirty = false
		v.note = "reset"
		v.notifier.Publish(reset)
		changed = false
		st = reset
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.flush()
		if err := v.store.CopyJSON(); err != nil {
			v.note = "copy failed: " + err.Error()
		} else {
			v.note = "copied to clipboard"
		}
	}

	if changed {
		st = st.Clamped()
		v.pending = st
		v.dirty = true
		v.quiet = 0
		v.note = ""
		v.notifier.Publish(st)
	} else {
		v.quiet += dt
	}
	// Held keys mutate every tick; the file write waits for a quiet gap.
	if v.dirty && v.quiet > 0.3 {
		v.flush()
	}

	anim.Apply(v.root, v.t, v.animSt)
	v.img = v.vp.Render(v.root, &v.cam, [3]float64{0.08, 0.09, 0.11})
	return nil
}

func (v *tuneView) Frame() *image.NRGBA { return v.img }

func (v *tuneView) HUD() string {
	st := v.pending
	s := fmt.Sprintf("pos %6.2f %6.2f %6.2f\nrot %6.1f %6.1f %6.1f deg\nfov %5.1f",
		st.Position[0], st.Position[1], st.Position[2],
		mathutil.Rad2Deg(st.Rotation[0]), mathutil.Rad2Deg(st.Rotation[1]), mathutil.Rad2Deg(st.Rotation[2]),
		st.FOV)
	if v.note != "" {
		s += "\n" + v.note
	}
	return s
}

func (v *tuneView) flush() {
	if !v.dirty {
		return
	}
	if err := v.store.Save(v.pending); err != nil {
		log.Printf("camtune: save: %v", err)
		return
	}
	v.dirty = false
}

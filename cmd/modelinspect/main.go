package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"rigbench/internal/app"
	"rigbench/internal/camera"
	"rigbench/internal/inspect"
	"rigbench/internal/mathutil"
	"rigbench/internal/raster"
	"rigbench/internal/scene"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

func main() {
	// CLI flags
	size := flag.Int("size", 720, "Viewport size in pixels")
	settings := flag.String("settings", "", "Camera settings JSON path (default: per-user config dir)")
	stats := flag.Bool("stats", false, "Print model stats and exit (no window)")

	flag.Parse()

	if *stats {
		if flag.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "Error: -stats needs a model path")
			os.Exit(1)
		}
		dumpStats(flag.Arg(0))
		return
	}

	store := camera.NewStore(*settings)
	v := newInspectView(store, *size)

	if flag.NArg() > 0 {
		if err := v.load(flag.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Camera settings: %s\n", store.Path())
	fmt.Println("Keys: W=wireframe T=flat colors S=spin wheels F=fit [ ]=select V=toggle part")
	fmt.Println("      G=reference O=auto-align -/= ref scale arrows=ref nudge ,/.=edge angle")
	fmt.Println("Drop a .glb/.gltf/.fbx/.obj file onto the window to inspect it.")

	shell := &app.Shell{Title: "rigbench modelinspect", Width: *size, Height: *size, View: v}
	if err := shell.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func dumpStats(path string) {
	m, err := inspect.Open(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	st := m.Stats
	b := m.Bounds()
	size := b.Size()
	fmt.Printf("Nodes: %d, Meshes: %d, Tris: %d, Verts: %d, Materials: %d\n",
		st.Nodes, st.Meshes, st.Tris, st.Verts, st.Materials)
	fmt.Printf("Size: %.2f x %.2f x %.2f\n", size[0], size[1], size[2])
	fmt.Printf("Parts: %d (%d wheel-tagged)\n", len(m.Parts), len(m.Wheels()))
	fmt.Printf("Trailer-relative scale: %.3f\n", inspect.AutoAlignScale(b))
}

type inspectView struct {
	store *camera.Store
	cam   camera.Camera
	root  *scene.Node
	model *inspect.Model
	ref   *inspect.RefOverlay
	vp    *raster.Viewport
	t     float64
	img   *image.NRGBA

	sel  int
	spin bool
	note string
}

func newInspectView(store *camera.Store, size int) *inspectView {
	v := &inspectView{
		store: store,
		cam:   camera.FromSettings(store.Load()),
		root:  scene.NewNode("inspect"),
		ref:   inspect.NewRefOverlay(),
		vp:    raster.NewViewport(size, size),
	}
	v.root.AddChild(v.ref.Node)
	return v
}

func (v *inspectView) load(path string) error {
	m, err := inspect.Open(path)
	if err != nil {
		return err
	}
	if v.model != nil {
		v.model.Root.Detach()
	}
	v.model = m
	v.sel = 0
	v.root.AddChild(m.Root)
	v.cam.AutoFit(m.Bounds(), 1.25)
	v.note = fmt.Sprintf("loaded %s", filepath.Base(path))
	fmt.Printf("Loaded %s: %d parts, %d tris\n", filepath.Base(path), len(m.Parts), m.Stats.Tris)
	return nil
}

// FileDropped accepts models dragged onto the window.
func (v *inspectView) FileDropped(path string) error {
	if err := v.load(path); err != nil {
		v.note = err.Error()
		return err
	}
	return nil
}

func (v *inspectView) Step(dt float64) error {
	v.t += dt
	m := v.model

	if m != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyW) {
			m.SetWireframe(!m.WireframeEnabled())
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyT) {
			m.SetFlatColors(!m.FlatColors())
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			v.spin = !v.spin
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyF) {
			v.cam.AutoFit(m.Bounds(), 1.25)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
			m.SetEdgeThreshold(m.EdgeThreshold - 5)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
			m.SetEdgeThreshold(m.EdgeThreshold + 5)
		}
		if n := len(m.Parts); n > 0 {
			if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
				v.sel = (v.sel + n - 1) % n
			}
			if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
				v.sel = (v.sel + 1) % n
			}
			if inpututil.IsKeyJustPressed(ebiten.KeyV) {
				m.TogglePart(v.sel)
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyO) {
			v.ref.AutoAlign(m)
			v.note = fmt.Sprintf("aligned, scale %.3f", v.ref.Scale())
		}
		if v.spin {
			m.SpinWheels(v.t, 4)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		v.ref.Node.Visible = !v.ref.Node.Visible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		v.ref.SetScale(v.ref.Scale() - 0.05)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		v.ref.SetScale(v.ref.Scale() + 0.05)
	}
	nudge := mathutil.Vec3{}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		nudge[0] -= 2 * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		nudge[0] += 2 * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		nudge[2] -= 2 * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		nudge[2] += 2 * dt
	}
	if nudge != (mathutil.Vec3{}) {
		v.ref.Nudge(nudge)
	}

	v.img = v.vp.Render(v.root, &v.cam, [3]float64{0.08, 0.09, 0.11})
	return nil
}

func (v *inspectView) Frame() *image.NRGBA { return v.img }

func (v *inspectView) HUD() string {
	if v.model == nil {
		return "drop a model file onto the window"
	}
	m := v.model
	st := m.Stats
	s := fmt.Sprintf("nodes %d  tris %d  verts %d  mats %d",
		st.Nodes, st.Tris, st.Verts, st.Materials)
	s += fmt.Sprintf("\nwireframe %s (%.0f deg)  flat colors %s",
		onoff(m.WireframeEnabled()), m.EdgeThreshold, onoff(m.FlatColors()))
	if len(m.Parts) > 0 && v.sel < len(m.Parts) {
		p := m.Parts[v.sel]
		vis := "shown"
		if !p.Node.Visible {
			vis = "hidden"
		}
		tag := ""
		if p.Wheel {
			tag = " [wheel]"
		}
		s += fmt.Sprintf("\npart %d/%d: %s%s (%s)", v.sel+1, len(m.Parts), p.Name, tag, vis)
	}
	if v.ref.Node.Visible {
		s += fmt.Sprintf("\nreference x%.2f", v.ref.Scale())
	}
	if v.note != "" {
		s += "\n" + v.note
	}
	return s
}

func onoff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

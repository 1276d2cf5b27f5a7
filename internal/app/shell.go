// Package app hosts the interactive pages: an ebiten game loop that blits
// a software-rendered frame and hands keyboard and file-drop input to the
// active view.
package app

import (
	"image"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// View is one interactive page. Step advances state by dt seconds and polls
// its own keys, Frame returns the rendered image to blit, HUD the overlay
// text for the corner readout.
type View interface {
	Step(dt float64) error
	Frame() *image.NRGBA
	HUD() string
}

// FileDropper is implemented by views that accept files dropped onto the
// window. The path points at a temporary copy owned by the view.
type FileDropper interface {
	FileDropped(path string) error
}

// Shell runs a View in a desktop window. It blocks until the window closes.
type Shell struct {
	Title  string
	Width  int
	Height int
	View   View
}

func (s *Shell) Run() error {
	g := &game{view: s.View, vw: s.Width, vh: s.Height, last: time.Now()}
	ebiten.SetWindowTitle(s.Title)
	ebiten.SetWindowSize(s.Width, s.Height)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type game struct {
	view   View
	vw, vh int
	img    *ebiten.Image
	iw, ih int
	last   time.Time
}

func (g *game) Update() error {
	now := time.Now()
	dt := now.Sub(g.last).Seconds()
	g.last = now
	// Window drags and pauses stall the clock; cap dt so animation does
	// not fast-forward.
	if dt > 0.25 {
		dt = 0.25
	}

	if d, ok := g.view.(FileDropper); ok {
		if files := ebiten.DroppedFiles(); files != nil {
			intakeDrops(files, d)
		}
	}

	return g.view.Step(dt)
}

func (g *game) Draw(screen *ebiten.Image) {
	frame := g.view.Frame()
	if frame == nil {
		return
	}
	b := frame.Bounds()
	if g.img == nil || g.iw != b.Dx() || g.ih != b.Dy() {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(b.Dx(), b.Dy())
		g.iw, g.ih = b.Dx(), b.Dy()
	}
	g.img.WritePixels(frame.Pix)
	screen.DrawImage(g.img, nil)

	if hud := g.view.HUD(); hud != "" {
		ebitenutil.DebugPrint(screen, hud)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.vw, g.vh
}

// intakeDrops copies each dropped file into a temp file with the original
// extension, then hands the copy to the view. The drop FS is only valid
// during this tick.
func intakeDrops(files fs.FS, d FileDropper) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := fs.ReadFile(files, e.Name())
		if err != nil {
			log.Printf("app: read dropped %s: %v", e.Name(), err)
			continue
		}
		tmp, err := os.CreateTemp("", "rigbench-*"+filepath.Ext(e.Name()))
		if err != nil {
			log.Printf("app: temp copy for %s: %v", e.Name(), err)
			continue
		}
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			log.Printf("app: temp copy for %s: %v", e.Name(), err)
			continue
		}
		tmp.Close()
		if err := d.FileDropped(tmp.Name()); err != nil {
			log.Printf("app: drop %s: %v", e.Name(), err)
		}
	}
}

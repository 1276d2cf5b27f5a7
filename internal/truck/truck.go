// Package truck assembles the tractor-trailer hierarchy: chassis, axles and
// wheels, cab, and a trailer embedding the container builder. The per-tool
// variants are expressed as Options presets instead of duplicated builders.
package truck

import (
	"fmt"
	"math"

	"rigbench/internal/container"
	"rigbench/internal/mathutil"
	"rigbench/internal/mesh"
	"rigbench/internal/scene"
)

// Detail selects how much of a group gets built.
type Detail int

const (
	DetailBasic Detail = iota
	DetailFull
)

// Palette carries the shared materials. Colors are linear RGB.
type Palette struct {
	Cab     *scene.Material
	Chassis *scene.Material
	Wheel   *scene.Material
	Panel   *scene.Material
	Frame   *scene.Material
}

// DefaultPalette returns the dark wireframe-styled material set.
func DefaultPalette() *Palette {
	return &Palette{
		Cab:     &scene.Material{Name: "cab", Color: [3]float64{0.16, 0.35, 0.50}},
		Chassis: &scene.Material{Name: "chassis", Color: [3]float64{0.20, 0.20, 0.22}},
		Wheel:   &scene.Material{Name: "wheel", Color: [3]float64{0.12, 0.12, 0.13}},
		Panel:   &scene.Material{Name: "panel", Color: [3]float64{0.55, 0.27, 0.15}},
		Frame:   &scene.Material{Name: "frame", Color: [3]float64{0.35, 0.35, 0.38}},
	}
}

// Options selects axle layout and detail level. The zero value is not
// useful; start from a preset.
type Options struct {
	AxleOffsets []float64 // z center per axle, front first
	HalfTrack   float64   // centerline to wheel center
	WheelSeg    int
	Cab         Detail
	Trailer     Detail
	Palette     *Palette
}

// ViewerPreset is the full five-axle rig shown by the live viewer.
func ViewerPreset() Options {
	return Options{
		AxleOffsets: []float64{-14, -9.6, -8.0, 13.2, 14.8},
		HalfTrack:   2.2,
		WheelSeg:    16,
		Cab:         DetailFull,
		Trailer:     DetailFull,
	}
}

// ExportPreset matches the viewer rig with coarser wheels for export.
func ExportPreset() Options {
	o := ViewerPreset()
	o.WheelSeg = 12
	return o
}

// TunePreset is the lighter three-axle rig used while tuning the camera.
func TunePreset() Options {
	return Options{
		AxleOffsets: []float64{-14, -8.8, 13.8},
		HalfTrack:   2.2,
		WheelSeg:    12,
		Cab:         DetailBasic,
		Trailer:     DetailBasic,
	}
}

const (
	wheelRadius = 1.1
	wheelWidth  = 0.7
	railLength  = 32.0
	chassisY    = 1.7
	trailerY    = 1.9
	trailerZ    = 4.5
	cabZ        = -13.5
	edgeAngle   = 30.0
)

// Build assembles the rig. The root carries the wheels and a "body" group
// (chassis, cab, trailer) so idle bounce can move the body while the wheels
// stay on the ground.
func Build(opts Options) *scene.Node {
	pal := opts.Palette
	if pal == nil {
		pal = DefaultPalette()
	}

	root := scene.NewNode("truck")
	body := scene.NewNode("body")
	root.AddChild(body)

	buildChassis(body, pal)
	buildCab(body, pal, opts.Cab)
	buildTrailer(body, pal, opts.Trailer)
	buildWheels(root, pal, opts)

	return root
}

func buildChassis(body *scene.Node, pal *Palette) {
	for i, sx := range []float64{-1, 1} {
		r := scene.NewNode(fmt.Sprintf("chassisRail%d", i))
		r.Mesh = mesh.NewBox(0.35, 0.4, railLength)
		r.Mat = pal.Chassis
		r.Position = mathutil.Vec3{sx * 0.9, chassisY, 0}
		body.AddChild(r)
	}
	for i, z := range []float64{-12, -4, 4, 12} {
		c := scene.NewNode(fmt.Sprintf("crossMember%d", i))
		c.Mesh = mesh.NewBox(1.8, 0.3, 0.3)
		c.Mat = pal.Chassis
		c.Position = mathutil.Vec3{0, chassisY, z}
		body.AddChild(c)
	}
}

// buildCab places the cab group: box proxies for the body shell, windshield,
// sun visor, roof cap and (full detail) aero fairing, bumper and grille.
func buildCab(body *scene.Node, pal *Palette, detail Detail) {
	cab := scene.NewNode("cab")
	cab.Position = mathutil.Vec3{0, 3.8, cabZ}
	body.AddChild(cab)

	shell := scene.NewNode("cabShell")
	shell.Mesh = mesh.NewBox(5, 3.6, 4.6)
	shell.Mat = pal.Cab
	cab.AddChild(shell)

	ws := scene.NewNode("windshield")
	ws.Mesh = mesh.NewBox(4.6, 1.4, 0.1)
	ws.Mat = pal.Frame
	ws.Position = mathutil.Vec3{0, 1.2, -2.2}
	ws.Rotation = mathutil.Vec3{-0.25, 0, 0}
	cab.AddChild(ws)

	roof := scene.NewNode("cabRoof")
	roof.Mesh = mesh.NewBox(4.8, 0.3, 4.4)
	roof.Mat = pal.Cab
	roof.Position = mathutil.Vec3{0, 1.95, 0}
	cab.AddChild(roof)

	if detail != DetailFull {
		return
	}

	visor := scene.NewNode("sunVisor")
	visor.Mesh = mesh.NewBox(4.7, 0.25, 0.6)
	visor.Mat = pal.Cab
	visor.Position = mathutil.Vec3{0, 2.0, -2.2}
	cab.AddChild(visor)

	fairing := scene.NewNode("aeroFairing")
	fairing.Mesh = mesh.NewBox(4.6, 1.6, 2.8)
	fairing.Mat = pal.Cab
	fairing.Position = mathutil.Vec3{0, 2.6, 1.2}
	fairing.Rotation = mathutil.Vec3{0.5, 0, 0}
	cab.AddChild(fairing)

	bumper := scene.NewNode("bumper")
	bumper.Mesh = mesh.NewBox(5.2, 0.8, 0.4)
	bumper.Mat = pal.Chassis
	bumper.Position = mathutil.Vec3{0, -1.6, -2.4}
	cab.AddChild(bumper)

	grille := scene.NewNode("grille")
	grille.Mesh = mesh.NewBox(4.2, 1.2, 0.1)
	grille.Mat = pal.Frame
	grille.Position = mathutil.Vec3{0, -0.6, -2.35}
	cab.AddChild(grille)
}

// buildTrailer embeds the container (full) or a proxy box with an edge
// outline (basic), plus landing gear at full detail.
func buildTrailer(body *scene.Node, pal *Palette, detail Detail) {
	trailer := scene.NewNode("trailer")
	trailer.Position = mathutil.Vec3{0, trailerY, trailerZ}
	body.AddChild(trailer)

	if detail == DetailFull {
		trailer.AddChild(container.Build(pal.Panel, pal.Frame))

		for i, sx := range []float64{-1, 1} {
			leg := scene.NewNode(fmt.Sprintf("landingGear%d", i))
			leg.Mesh = mesh.NewBox(0.25, trailerY, 0.25)
			leg.Mat = pal.Frame
			leg.Position = mathutil.Vec3{sx * 1.4, -trailerY / 2, -10}
			trailer.AddChild(leg)
		}
		return
	}

	proxy := scene.NewNode("trailerProxy")
	proxy.Mesh = mesh.NewBox(container.Width, container.Height, container.Length)
	proxy.Mat = pal.Panel
	proxy.Position = mathutil.Vec3{0, container.Height / 2, 0}
	outline := scene.NewNode("trailerProxyEdges")
	outline.Lines = mesh.NewBoxEdges(container.Width, container.Height, container.Length)
	outline.Mat = pal.Frame
	proxy.AddChild(outline)
	trailer.AddChild(proxy)
}

// buildWheels places one wheel pair per axle. Each wheel node spins about x;
// the tire child holds the cylinder turned onto the axle axis together with
// its rim outline.
func buildWheels(root *scene.Node, pal *Palette, opts Options) {
	for i, z := range opts.AxleOffsets {
		for _, side := range []struct {
			tag string
			sx  float64
		}{{"L", -1}, {"R", 1}} {
			w := scene.NewNode(fmt.Sprintf("wheel%s%d", side.tag, i+1))
			w.Position = mathutil.Vec3{side.sx * opts.HalfTrack, wheelRadius, z}
			root.AddChild(w)

			tire := scene.NewNode("tire")
			tire.Rotation = mathutil.Vec3{0, 0, math.Pi / 2}
			tire.Mesh = mesh.NewCylinder(wheelRadius, wheelWidth, opts.WheelSeg)
			tire.Lines = mesh.ExtractEdges(tire.Mesh, edgeAngle)
			tire.Mat = pal.Wheel
			w.AddChild(tire)
		}
	}
}

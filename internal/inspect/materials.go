package inspect

import "rigbench/internal/scene"

// flatPalette cycles through the substitute colors used when textures and
// original materials are switched off.
var flatPalette = [][3]float64{
	{0.75, 0.45, 0.30},
	{0.35, 0.55, 0.75},
	{0.45, 0.70, 0.40},
	{0.70, 0.65, 0.35},
	{0.60, 0.45, 0.70},
	{0.50, 0.50, 0.55},
}

// FlatColors reports whether the substitutes are active.
func (m *Model) FlatColors() bool { return m.flat }

// SetFlatColors swaps every mesh material for a flat-color substitute, or
// restores the materials recorded at load.
func (m *Model) SetFlatColors(on bool) {
	if on == m.flat {
		return
	}
	if on {
		for i, p := range m.Parts {
			p.Node.Mat = &scene.Material{
				Name:  "flat",
				Color: flatPalette[i%len(flatPalette)],
			}
		}
	} else {
		for _, p := range m.Parts {
			p.Node.Mat = m.original[p.Node]
		}
	}
	m.flat = on
}

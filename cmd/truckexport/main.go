package main

import (
	"flag"
	"fmt"
	"os"

	"rigbench/internal/gltfexport"
	"rigbench/internal/scene"
	"rigbench/internal/truck"
)

func main() {
	// CLI flags
	format := flag.String("format", "glb", "Output format: glb or gltf")
	out := flag.String("o", "", "Output path (default: truck.<format>)")
	simplify := flag.Float64("simplify", 0, "Decimate meshes to this fraction of faces, 0 = off")

	flag.Parse()

	if *format != "glb" && *format != "gltf" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (want glb or gltf)\n", *format)
		os.Exit(1)
	}
	outPath := *out
	if outPath == "" {
		outPath = "truck." + *format
	}

	root := truck.Build(truck.ExportPreset())
	nodes, tris, verts := scene.Counts(root)
	fmt.Printf("Rig: %d nodes, %d tris, %d verts\n", nodes, tris, verts)

	if *simplify > 0 && *simplify < 1 {
		gltfexport.DecimateTree(root, *simplify)
		_, tris, verts = scene.Counts(root)
		fmt.Printf("Decimated to %.0f%%: %d tris, %d verts\n", *simplify*100, tris, verts)
	}

	doc := gltfexport.BuildDocument(root)
	if err := gltfexport.Save(doc, outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if fi, err := os.Stat(outPath); err == nil {
		fmt.Printf("Wrote %s (%.1f KB)\n", outPath, float64(fi.Size())/1024)
	} else {
		fmt.Printf("Wrote %s\n", outPath)
	}
}

package main

import (
	"fmt"
	"os"
	"strings"

	"rigbench/internal/assets"
	"rigbench/internal/inspect"
	"rigbench/internal/scene"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: partdump <model[%s]>\n", strings.Join(assets.Supported, "|"))
		os.Exit(1)
	}
	path := os.Args[1]
	m, err := inspect.Open(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	st := m.Stats
	fmt.Printf("Nodes: %d, Meshes: %d, Tris: %d, Verts: %d, Materials: %d\n",
		st.Nodes, st.Meshes, st.Tris, st.Verts, st.Materials)

	b := m.Bounds()
	size := b.Size()
	fmt.Printf("BBox: X[%.2f, %.2f] Y[%.2f, %.2f] Z[%.2f, %.2f]\n",
		b.Min[0], b.Max[0], b.Min[1], b.Max[1], b.Min[2], b.Max[2])
	fmt.Printf("Size: %.2f x %.2f x %.2f\n", size[0], size[1], size[2])
	fmt.Printf("Trailer-relative scale: %.3f\n", inspect.AutoAlignScale(b))

	fmt.Printf("Parts: %d (%d wheel-tagged)\n", len(m.Parts), len(m.Wheels()))
	for _, p := range m.Parts {
		tag := ""
		if p.Wheel {
			tag = " [wheel]"
		}
		fmt.Printf("  Part[%d]: %s%s tris=%d\n", p.ID, partName(p.Node), tag, p.Tris)
	}

	fmt.Println("Hierarchy:")
	printTree(m.Root, 1)
}

func partName(n *scene.Node) string {
	if n.Name == "" {
		return "(unnamed)"
	}
	return n.Name
}

func printTree(n *scene.Node, depth int) {
	mark := ""
	if n.Mesh != nil {
		mark = fmt.Sprintf(" [mesh tris=%d]", len(n.Mesh.Tris))
	}
	if n.Lines != nil {
		mark += fmt.Sprintf(" [lines segs=%d]", len(n.Lines.Segs))
	}
	fmt.Printf("%*s%s%s\n", depth*2, "", partName(n), mark)
	for _, c := range n.Children {
		printTree(c, depth+1)
	}
}

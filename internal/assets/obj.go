package assets

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"rigbench/internal/mathutil"
	"rigbench/internal/mesh"
	"rigbench/internal/scene"
	"rigbench/internal/texture"
)

// objFace is one triangle corner triple into the file-global v/vt/vn lists
// (1-based, 0 = absent).
type objFace [3][3]int

type objGroup struct {
	name  string
	mat   *scene.Material
	faces []objFace
}

// LoadOBJ reads a Wavefront OBJ with optional MTL materials. Each material
// run becomes its own node so parts stay individually toggleable. Textures
// referenced by map_Kd resolve against an index of the model's directory.
func LoadOBJ(path string) (*scene.Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}
	defer file.Close()

	dir := filepath.Dir(path)
	texCache := texture.NewCache(texture.BuildIndex(dir))
	materials := make(map[string]*scene.Material)

	// Index 0 is a sentinel so 1-based OBJ references map directly.
	vs := make([]mathutil.Vec3, 1, 1024)
	vts := make([][2]float64, 1, 1024)
	vns := make([]mathutil.Vec3, 1, 1024)

	var groups []*objGroup
	current := &objGroup{name: "default"}
	groups = append(groups, current)
	open := func(name string, mat *scene.Material) {
		if len(current.faces) == 0 {
			current.name = name
			current.mat = mat
			return
		}
		current = &objGroup{name: name, mat: mat}
		groups = append(groups, current)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 2 || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) >= 4 {
				vs = append(vs, mathutil.Vec3{pf(fields[1]), pf(fields[2]), pf(fields[3])})
			}
		case "vt":
			if len(fields) >= 3 {
				// OBJ UV origin is bottom-left, sampling is top-left.
				vts = append(vts, [2]float64{pf(fields[1]), 1 - pf(fields[2])})
			}
		case "vn":
			if len(fields) >= 4 {
				vns = append(vns, mathutil.Vec3{pf(fields[1]), pf(fields[2]), pf(fields[3])})
			}
		case "f":
			args := fields[1:]
			n := len(args)
			if n < 3 {
				continue
			}
			fvs := make([]int, n)
			fvts := make([]int, n)
			fvns := make([]int, n)
			for i, arg := range args {
				vertex := strings.Split(arg+"//", "/")
				fvs[i] = fixIndex(vertex[0], len(vs))
				fvts[i] = fixIndex(vertex[1], len(vts))
				fvns[i] = fixIndex(vertex[2], len(vns))
			}
			// Fan triangulation for polygons.
			for i := 1; i < n-1; i++ {
				var f objFace
				for k, j := range [3]int{0, i, i + 1} {
					f[k] = [3]int{fvs[j], fvts[j], fvns[j]}
				}
				current.faces = append(current.faces, f)
			}
		case "o", "g":
			name := "group"
			if len(fields) > 1 {
				name = fields[1]
			}
			open(name, current.mat)
		case "usemtl":
			if len(fields) > 1 {
				open(current.name, materials[fields[1]])
			}
		case "mtllib":
			for _, ref := range fields[1:] {
				loadMTL(filepath.Join(dir, ref), materials, texCache)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", path, err)
	}

	root := scene.NewNode(baseName(path))
	for _, g := range groups {
		if len(g.faces) == 0 {
			continue
		}
		n := scene.NewNode(g.name)
		n.Mesh = compactGroup(g, vs, vts, vns)
		n.Mat = g.mat
		root.AddChild(n)
	}
	if len(root.Children) == 0 {
		return nil, fmt.Errorf("assets: %s: no faces", path)
	}
	return root, nil
}

// compactGroup rewrites a group's global references into a self-contained
// mesh, welding corners that share the same v/vt/vn triple.
func compactGroup(g *objGroup, vs []mathutil.Vec3, vts [][2]float64, vns []mathutil.Vec3) *mesh.TriMesh {
	tm := &mesh.TriMesh{}
	seen := make(map[[3]int]int)
	hasUV, hasN := false, false
	for _, f := range g.faces {
		if f[0][1] > 0 {
			hasUV = true
		}
		if f[0][2] > 0 {
			hasN = true
		}
	}

	emit := func(c [3]int) int {
		if i, ok := seen[c]; ok {
			return i
		}
		i := len(tm.Verts)
		if c[0] > 0 && c[0] < len(vs) {
			tm.Verts = append(tm.Verts, vs[c[0]])
		} else {
			tm.Verts = append(tm.Verts, mathutil.Vec3{})
		}
		if hasUV {
			if c[1] > 0 && c[1] < len(vts) {
				tm.UVs = append(tm.UVs, vts[c[1]])
			} else {
				tm.UVs = append(tm.UVs, [2]float64{})
			}
		}
		if hasN {
			if c[2] > 0 && c[2] < len(vns) {
				tm.Normals = append(tm.Normals, vns[c[2]])
			} else {
				tm.Normals = append(tm.Normals, mathutil.Vec3{0, 1, 0})
			}
		}
		seen[c] = i
		return i
	}

	for _, f := range g.faces {
		t := mesh.Tri{N: mesh.NoAttr, T: mesh.NoAttr}
		for k := 0; k < 3; k++ {
			i := emit(f[k])
			t.V[k] = i
			if hasN {
				t.N[k] = i
			}
			if hasUV {
				t.T[k] = i
			}
		}
		tm.Tris = append(tm.Tris, t)
	}
	return tm
}

// loadMTL merges newmtl entries from one material library. Missing
// libraries are skipped silently, matching how exporters reference
// libraries that never shipped with the model.
func loadMTL(path string, out map[string]*scene.Material, textures texture.Resolver) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	var cur *scene.Material
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0][0] == '#' {
			continue
		}
		switch fields[0] {
		case "newmtl":
			if len(fields) > 1 {
				cur = &scene.Material{Name: fields[1], Color: [3]float64{0.63, 0.63, 0.67}}
				out[fields[1]] = cur
			}
		case "Kd":
			if cur != nil && len(fields) >= 4 {
				cur.Color = [3]float64{pf(fields[1]), pf(fields[2]), pf(fields[3])}
			}
		case "map_Kd":
			if cur != nil && len(fields) > 1 {
				cur.Tex = textures.Resolve(fields[len(fields)-1])
			}
		}
	}
}

// pf parses a float, returning 0 on malformed input.
func pf(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// fixIndex resolves an OBJ index: negative counts from the end, 0 = absent.
func fixIndex(value string, length int) int {
	if value == "" {
		return 0
	}
	parsed, _ := strconv.Atoi(value)
	if parsed < 0 {
		return parsed + length
	}
	return parsed
}

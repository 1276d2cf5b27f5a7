// Package assets loads external model files into scene trees. Only the
// extensions in the allow-list are dispatched; everything else is rejected
// before any parser runs.
package assets

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"rigbench/internal/scene"
)

// ErrUnsupported flags a file outside the extension allow-list.
var ErrUnsupported = errors.New("unsupported file type")

// Supported lists the accepted extensions.
var Supported = []string{".glb", ".gltf", ".fbx", ".obj"}

// IsSupported reports whether path's extension is in the allow-list,
// case-insensitively.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range Supported {
		if ext == s {
			return true
		}
	}
	return false
}

// Load reads a model file into a scene tree, dispatching on the lowercase
// extension. Unsupported extensions return ErrUnsupported without touching
// the file.
func Load(path string) (*scene.Node, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return LoadGLTF(path)
	case ".obj":
		return LoadOBJ(path)
	case ".fbx":
		return LoadFBX(path)
	}
	return nil, fmt.Errorf("assets: %w: %q (want one of %s)",
		ErrUnsupported, filepath.Ext(path), strings.Join(Supported, " "))
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

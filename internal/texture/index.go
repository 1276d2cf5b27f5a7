package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// Index maps lowercase texture stems to filesystem paths, so material
// references survive case differences and path prefixes baked into model
// files. Alpha-capable formats (PNG, TGA) take priority over JPEG/BMP for
// the same stem.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

func hasAlphaExt(ext string) bool {
	return ext == ".png" || ext == ".tga"
}

func isImageExt(ext string) bool {
	switch ext {
	case ".png", ".jpg", ".jpeg", ".tga", ".bmp":
		return true
	}
	return false
}

// BuildIndex scans modelDir and its subdirectories for image files.
func BuildIndex(modelDir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(modelDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !isImageExt(ext) {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists {
			idx.entries[stem] = path
		} else if hasAlphaExt(ext) && !hasAlphaExt(strings.ToLower(filepath.Ext(existing))) {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a texture reference, or
// ("", false). References like `textures\side.png` from Windows tooling
// are reduced to their stem first.
func (idx *Index) ResolvePath(texName string) (string, bool) {
	texName = strings.ReplaceAll(texName, "\\", "/")
	base := filepath.Base(texName)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}

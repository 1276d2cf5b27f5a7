package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	AssetsDir    string `json:"assets_dir"`
	OutputDir    string `json:"output_dir"`
	SettingsPath string `json:"settings_path"`
	DefaultModel string `json:"default_model"`

	// Render settings
	RenderSize  int `json:"render_size"`
	Supersample int `json:"supersample"`
	WebPQuality int `json:"webp_quality"`
	Workers     int `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with auto-detected defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.AssetsDir != "" {
		c.AssetsDir = flags.AssetsDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Quality > 0 {
		c.WebPQuality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Auto-detect assets dir if still empty
	if c.AssetsDir == "" {
		c.AssetsDir = detectAssetsDir()
	}

	// Resolve relative paths against assets dir
	if c.AssetsDir != "" {
		if c.DefaultModel != "" && !filepath.IsAbs(c.DefaultModel) {
			c.DefaultModel = filepath.Join(c.AssetsDir, c.DefaultModel)
		}
		if c.OutputDir == "" {
			c.OutputDir = filepath.Join(c.AssetsDir, "renders")
		} else if !filepath.IsAbs(c.OutputDir) {
			c.OutputDir = filepath.Join(c.AssetsDir, c.OutputDir)
		}
	} else if c.OutputDir == "" {
		c.OutputDir = "renders"
	}

	// SettingsPath left empty means the camera store picks its per-user
	// default location.

	// Defaults for render settings
	if c.RenderSize <= 0 {
		c.RenderSize = 720
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.WebPQuality <= 0 {
		c.WebPQuality = 90
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	AssetsDir string
	OutputDir string
	Quality   int
	Workers   int
}

func detectAssetsDir() string {
	// Try relative to executable
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir), filepath.Join(dir, "..", "..")} {
			if _, err := os.Stat(filepath.Join(base, "assets")); err == nil {
				return filepath.Join(base, "assets")
			}
		}
	}

	// Try current working directory
	cwd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(cwd, "assets")); err == nil {
		return filepath.Join(cwd, "assets")
	}

	// Try parent of cwd (if we're in a cmd/ subdir)
	parent := filepath.Dir(cwd)
	if _, err := os.Stat(filepath.Join(parent, "assets")); err == nil {
		return filepath.Join(parent, "assets")
	}

	return ""
}

package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one rendered frame in the output manifest.
type ManifestEntry struct {
	Frame int     `json:"frame"`
	Time  float64 `json:"time"`
	File  string  `json:"file"`
	Error string  `json:"error,omitempty"`
}

// WriteManifest writes frames.json describing the rendered sequence.
func WriteManifest(path string, results []Result, fps float64) error {
	if fps <= 0 {
		fps = 30
	}
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Frame: r.Frame,
			Time:  float64(r.Frame) / fps,
			File:  r.File,
		}
		if !r.Success {
			entries[i].Error = r.Error
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

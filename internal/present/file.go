package present

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethyield/stakewatch/internal/yield"
)

// FileWriter writes the snapshot as pretty-printed JSON to a path, for
// consumers that poll a file instead of the API.
type FileWriter struct {
	path string
}

func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

func (f *FileWriter) Present(snap *yield.Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	if err := os.WriteFile(f.path, b, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

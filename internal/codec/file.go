package codec

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// WriteFile atomically writes prompts to path in format f using the
// temp-file, fsync, rename pattern. Readers of path see either the previous
// content or the complete new document.
func WriteFile(path string, prompts []*types.Prompt, f Format) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if err := Encode(w, prompts, f); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ReadFile reads and decodes the document at path. An empty f selects the
// format from the file extension, falling back to content detection.
func ReadFile(path string, f Format) ([]types.Entry, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	if f == "" {
		var ok bool
		if f, ok = FormatFromPath(path); !ok {
			f = DetectFormat(data)
		}
	}
	entries, err := Decode(data, f)
	if err != nil {
		return nil, f, err
	}
	return entries, f, nil
}

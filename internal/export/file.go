package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/PixPMusic/platemapper/internal/plate"
)

// LayoutExtension is the file extension of saved layout files.
const LayoutExtension = ".plate.json"

// EncodeLayout writes the plate snapshot as indented JSON.
func EncodeLayout(w io.Writer, p *plate.Plate) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p.Snapshot())
}

// DecodeLayout reads a snapshot written by EncodeLayout.
func DecodeLayout(r io.Reader) (*plate.Plate, error) {
	var s plate.Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return plate.Restore(s)
}

// SaveFile writes the plate to path, creating parent directories.
func SaveFile(path string, p *plate.Plate) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFile reads a layout file.
func LoadFile(path string) (*plate.Plate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeLayout(f)
}

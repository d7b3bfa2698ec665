package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader reads scenario files, searching a list of data directories in order.
type Loader struct {
	dataDirs []string
}

// NewLoader initializes a Loader with the given directory fallback hierarchy.
func NewLoader(dataDirs []string) *Loader {
	return &Loader{
		dataDirs: dataDirs,
	}
}

// Load finds ref and decodes it. Paths that exist as given are opened
// directly; relative names are otherwise looked up in each data directory.
func (l *Loader) Load(ref string) (*File, error) {
	candidates := []string{ref}
	if !filepath.IsAbs(ref) {
		for _, dir := range l.dataDirs {
			candidates = append(candidates, filepath.Join(dir, ref))
		}
	}

	for _, path := range candidates {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		defer f.Close()
		file, err := Decode(f, filepath.Ext(path))
		if err != nil {
			return nil, fmt.Errorf("failed to decode scenario file %s: %w", path, err)
		}
		return file, nil
	}
	return nil, fmt.Errorf("could not find or open scenario file %s in any available data directory", ref)
}

// Decode reads a scenario file. ".json" uses JSON, anything else YAML.
func Decode(r io.Reader, ext string) (*File, error) {
	var file File
	if strings.EqualFold(ext, ".json") {
		if err := json.NewDecoder(r).Decode(&file); err != nil {
			return nil, err
		}
		return &file, nil
	}
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return nil, err
	}
	return &file, nil
}

// Save writes the file as JSON or YAML depending on the path's extension.
func Save(path string, file *File) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(file, "", "    ")
	} else {
		data, err = yaml.Marshal(file)
	}
	if err != nil {
		return fmt.Errorf("failed to encode scenarios: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

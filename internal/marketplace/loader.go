package marketplace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadDirectory loads a generated directory document
func LoadDirectory(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var dir Directory
	if err := json.Unmarshal(data, &dir); err != nil {
		return nil, fmt.Errorf("failed to parse directory: %w", err)
	}

	return &dir, nil
}

// WriteDirectory saves the directory document as indented JSON
func WriteDirectory(path string, dir *Directory) error {
	if d := filepath.Dir(path); d != "." {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(dir, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode directory: %w", err)
	}

	return os.WriteFile(path, append(data, '\n'), 0644)
}

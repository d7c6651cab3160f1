package skills

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseEntries decodes canonical -> synonyms entries from JSON or YAML.
// JSON is a subset of YAML, so a single decoder handles both.
func ParseEntries(data []byte) (map[string][]string, error) {
	entries := make(map[string][]string)
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse skill dictionary: %w", err)
	}
	for k, v := range entries {
		if v == nil {
			entries[k] = []string{}
		}
	}
	return entries, nil
}

// LoadFile reads a dictionary file (.json, .yaml or .yml)
func LoadFile(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skill dictionary %s: %w", path, err)
	}
	entries, err := ParseEntries(data)
	if err != nil {
		return nil, err
	}
	return New(entries), nil
}

// SaveFile writes the dictionary to path, choosing JSON or YAML by extension
func SaveFile(path string, d *Dictionary) error {
	entries := d.Entries()

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(entries)
	default:
		data, err = json.MarshalIndent(entries, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode skill dictionary: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write skill dictionary %s: %w", path, err)
	}
	return nil
}

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSaveDir is where named saves live when no directory is configured.
const DefaultSaveDir = ".saves"

const saveExt = ".yaml"

// ParseContentDoc decodes a story document. JSON input is accepted since
// it is valid YAML.
func ParseContentDoc(data []byte) (ContentDoc, error) {
	var doc ContentDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ContentDoc{}, fmt.Errorf("parse content: %w", err)
	}
	return doc, nil
}

// LoadContentDoc reads a story document from path.
func LoadContentDoc(path string) (ContentDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ContentDoc{}, fmt.Errorf("load content: %w", err)
	}
	return ParseContentDoc(data)
}

// SaveContentDoc writes doc to path, as JSON for .json paths and YAML otherwise.
func SaveContentDoc(path string, doc ContentDoc) error {
	data, err := marshalFor(path, doc)
	if err != nil {
		return fmt.Errorf("save content: %w", err)
	}
	return writeFile(path, data)
}

// SaveSnapshot writes snap to path, as JSON for .json paths and YAML otherwise.
func SaveSnapshot(path string, snap Snapshot) error {
	data, err := marshalFor(path, snap)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := writeFile(path, data); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot from path. ok is false when no file exists.
func LoadSnapshot(path string) (snap Snapshot, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load snapshot: %w", err)
	}
	if isJSON(path) {
		err = json.Unmarshal(data, &snap)
	} else {
		err = yaml.Unmarshal(data, &snap)
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	return snap, true, nil
}

// SavePath returns the file used for the named save inside dir.
func SavePath(dir, name string) string {
	return filepath.Join(dir, name+saveExt)
}

// ListSaves returns the names of the saves in dir, sorted.
func ListSaves(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	saves := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), saveExt) {
			continue
		}
		saves = append(saves, strings.TrimSuffix(entry.Name(), saveExt))
	}
	sort.Strings(saves)
	return saves, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func marshalFor(path string, v any) ([]byte, error) {
	if isJSON(path) {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return yaml.Marshal(v)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nikbrunner/stash/internal/importer"
	"github.com/nikbrunner/stash/internal/model"
	"github.com/nikbrunner/stash/internal/sampledata"
)

// ErrUnsupportedSeedFormat is returned for seed files with an unknown extension.
var ErrUnsupportedSeedFormat = errors.New("unsupported seed format")

// OpenSeed loads the initial collections and bookmarks. An empty path
// yields the built-in sample data; otherwise the format follows the file
// extension (.json, .yaml/.yml, or Netscape .html/.htm).
func OpenSeed(path string) (*model.Store, error) {
	if path == "" {
		return sampledata.Store(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	var store *model.Store
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		store, err = LoadSeedJSON(f)
	case ".yaml", ".yml":
		store, err = LoadSeedYAML(f)
	case ".html", ".htm":
		store, err = importer.ParseHTMLBookmarks(f, importer.Options{})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSeedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load seed %s: %w", path, err)
	}

	store.Normalize()
	return store, nil
}

// LoadSeedJSON decodes a {collections, bookmarks} JSON document.
func LoadSeedJSON(r io.Reader) (*model.Store, error) {
	var store model.Store
	if err := json.NewDecoder(r).Decode(&store); err != nil {
		return nil, err
	}
	store.Normalize()
	return &store, nil
}

// LoadSeedYAML decodes a {collections, bookmarks} YAML document.
func LoadSeedYAML(r io.Reader) (*model.Store, error) {
	var store model.Store
	if err := yaml.NewDecoder(r).Decode(&store); err != nil {
		if errors.Is(err, io.EOF) {
			return model.NewStore(), nil
		}
		return nil, err
	}
	store.Normalize()
	return &store, nil
}

// SaveSeed writes the store as JSON or YAML depending on the extension.
// Creates the directory if it doesn't exist.
func SaveSeed(path string, store *model.Store) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(store, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(store)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedSeedFormat, ext)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

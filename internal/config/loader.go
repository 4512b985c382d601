package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader parses a document from raw bytes.
type Loader interface {
	// Parse decodes data into a Document.
	Parse(data []byte) (*Document, error)
}

// FileSystem abstracts file access so loaders can be tested against
// in-memory trees.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the OS-backed file system.
func DefaultFS() FileSystem {
	return OSFS{}
}

// ForPath returns the loader registered for path's extension.
func ForPath(path string) (Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOMLLoader{}, nil
	case ".json":
		return JSONLoader{}, nil
	case ".yaml", ".yml":
		return YAMLLoader{}, nil
	case ".lua":
		return LuaLoader{}, nil
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// Load reads and parses the document at path, selecting the parser
// from the extension.
func Load(path string) (*Document, error) {
	return LoadFS(DefaultFS(), path)
}

// LoadFS is Load against an explicit file system.
func LoadFS(fsys FileSystem, path string) (*Document, error) {
	loader, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	doc, err := loader.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", path, err)
	}
	return doc, nil
}

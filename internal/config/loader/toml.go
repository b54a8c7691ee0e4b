// Package loader reads configuration layers into generic maps.
//
// Each loader returns a map[string]any keyed by section. Layers are
// combined with DeepMerge, higher layers overriding lower ones.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// Loader is the interface for configuration loaders.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

var (
	_ Loader = (*TOMLLoader)(nil)
	_ Loader = (*EnvLoader)(nil)
)

// TOMLLoader loads configuration from TOML files.
type TOMLLoader struct {
	fs   afero.Fs
	path string
}

// NewTOMLLoader creates a new TOML loader for the given path.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(afero.NewOsFs(), path)
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs afero.Fs, path string) *TOMLLoader {
	return &TOMLLoader{
		fs:   fs,
		path: path,
	}
}

// Path returns the file the loader reads.
func (l *TOMLLoader) Path() string {
	return l.path
}

// Load reads configuration from the configured path.
func (l *TOMLLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads configuration from a specific path.
func (l *TOMLLoader) LoadFrom(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return parse(path, data)
}

// LoadFromReader reads configuration from an io.Reader.
func (l *TOMLLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return parse("<reader>", data)
}

// parse parses TOML data into a map.
func parse(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		perr := &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}

	return config, nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
// Maps are merged recursively; other types are replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	if src == nil {
		return dst
	}

	for key, srcVal := range src {
		dstVal, exists := dst[key]
		if !exists {
			dst[key] = srcVal
			continue
		}

		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dstVal.(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
		} else {
			dst[key] = srcVal
		}
	}

	return dst
}

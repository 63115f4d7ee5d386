package table

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileInfo describes one table file found under a language root
type FileInfo struct {
	Path string // full path including the root
	Dir  string // directory holding the file
	Name string // base name
}

// DirExists reports whether path exists and is a directory
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists reports whether path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ListTables walks root depth-first in lexical order and returns every
// regular file with extension ext. Each call rescans the directory.
func ListTables(root, ext string) ([]FileInfo, error) {
	if !DirExists(root) {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, root)
	}

	suffix := "." + NormalizeExt(ext)
	var files []FileInfo
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), suffix) {
			return nil
		}
		files = append(files, FileInfo{
			Path: path,
			Dir:  filepath.Dir(path),
			Name: d.Name(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return files, nil
}

// Load reads and parses a table file. Parse failures are returned as
// *FileError wrapping ErrInvalidTableFormat.
func Load(path string) (*Table, error) {
	codec, err := codecForPath(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}

	t, err := codec.Decode(data)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return t, nil
}

// Save renders t and replaces the file at path with it, creating parent
// directories as needed.
func Save(path string, t *Table) error {
	codec, err := codecForPath(path)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}

	content, err := codec.Encode(t)
	if err != nil {
		return &FileError{Path: path, Err: fmt.Errorf("failed to render table: %w", err)}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write table file: %w", err)
	}
	return nil
}

// Package tree indexes every table file under one language directory by
// its path relative to that directory, so trees of different languages can
// be compared file by file.
package tree

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"codeberg.org/snonux/langsync/internal/table"
)

// LanguageTree holds the tables of one language directory
type LanguageTree struct {
	Root string
	Ext  string

	// Errors lists files that were found but could not be loaded
	Errors []error

	paths  []string
	tables map[string]*table.Table
	files  map[string]table.FileInfo
	failed map[string]error
}

// New creates an empty tree rooted at root
func New(root, ext string) *LanguageTree {
	return &LanguageTree{
		Root:   root,
		Ext:    table.NormalizeExt(ext),
		tables: make(map[string]*table.Table),
		files:  make(map[string]table.FileInfo),
		failed: make(map[string]error),
	}
}

// Build scans root and loads every table file below it. A missing root is
// fatal. Files that fail to load are skipped and reported through the
// returned error and the tree's Errors field; the tree itself is still
// returned so siblings can be processed.
func Build(root, ext string) (*LanguageTree, error) {
	files, err := table.ListTables(root, ext)
	if err != nil {
		return nil, err
	}

	t := New(root, ext)
	var merr *multierror.Error
	for _, f := range files {
		rel, err := RelativePath(root, f.Path)
		if err != nil {
			merr = multierror.Append(merr, err)
			t.Errors = append(t.Errors, err)
			continue
		}

		tbl, err := table.Load(f.Path)
		if err != nil {
			merr = multierror.Append(merr, err)
			t.Errors = append(t.Errors, err)
			t.failed[rel] = err
			continue
		}

		t.add(rel, f, tbl)
	}

	return t, merr.ErrorOrNil()
}

// Add inserts a table under a relative path. It is used to assemble trees
// in memory.
func (t *LanguageTree) Add(rel string, tbl *table.Table) {
	rel = filepath.ToSlash(rel)
	path := filepath.Join(t.Root, filepath.FromSlash(rel))
	t.add(rel, table.FileInfo{
		Path: path,
		Dir:  filepath.Dir(path),
		Name: filepath.Base(path),
	}, tbl)
}

func (t *LanguageTree) add(rel string, f table.FileInfo, tbl *table.Table) {
	if _, exists := t.tables[rel]; !exists {
		t.paths = append(t.paths, rel)
	}
	t.tables[rel] = tbl
	t.files[rel] = f
}

// Paths returns the relative paths in traversal order
func (t *LanguageTree) Paths() []string {
	out := make([]string, len(t.paths))
	copy(out, t.paths)
	return out
}

// Table returns the table stored under a relative path
func (t *LanguageTree) Table(rel string) (*table.Table, bool) {
	tbl, ok := t.tables[rel]
	return tbl, ok
}

// File returns the file descriptor stored under a relative path
func (t *LanguageTree) File(rel string) (table.FileInfo, bool) {
	f, ok := t.files[rel]
	return f, ok
}

// Has reports whether the tree holds a table for rel
func (t *LanguageTree) Has(rel string) bool {
	_, ok := t.tables[rel]
	return ok
}

// Failed returns the load error of a file that exists under rel but could
// not be parsed
func (t *LanguageTree) Failed(rel string) (error, bool) {
	err, ok := t.failed[rel]
	return err, ok
}

// FileCount returns the number of loaded tables
func (t *LanguageTree) FileCount() int {
	return len(t.paths)
}

// KeyCount returns the number of keys over all tables
func (t *LanguageTree) KeyCount() int {
	n := 0
	for _, tbl := range t.tables {
		n += tbl.Len()
	}
	return n
}

// RelativePath returns path relative to root using forward slashes.
// Trailing separators on root do not change the result.
func RelativePath(root, path string) (string, error) {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s against %s: %w", path, root, err)
	}
	return filepath.ToSlash(rel), nil
}

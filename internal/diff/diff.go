// Package diff compares two language trees. The comparison is driven by
// the source tree: every source file and key is checked against the
// target, files that only exist in the target are ignored.
package diff

import (
	"errors"

	"codeberg.org/snonux/langsync/internal/tree"
)

// ErrDifferencesFound signals that a comparison was not clean when the
// caller asked to fail on differences.
var ErrDifferencesFound = errors.New("differences found")

// Kind classifies a difference
type Kind int

const (
	// MissingFile means the source file has no counterpart in the target
	MissingFile Kind = iota
	// MissingKey means the target file lacks a source key
	MissingKey
	// EmptyValue means the target holds the key with an empty string
	EmptyValue
	// InvalidFile means the target file exists but could not be loaded
	InvalidFile
)

// String returns the human readable status used in reports
func (k Kind) String() string {
	switch k {
	case MissingFile:
		return "Missing file in target"
	case MissingKey:
		return "Missing key in target"
	case EmptyValue:
		return "Empty value in target"
	case InvalidFile:
		return "Invalid file in target"
	default:
		return "Unknown"
	}
}

// Code returns a stable machine readable name
func (k Kind) Code() string {
	switch k {
	case MissingFile:
		return "missing_file"
	case MissingKey:
		return "missing_key"
	case EmptyValue:
		return "empty_value"
	case InvalidFile:
		return "invalid_file"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.Code()), nil
}

// Entry is one difference. Key is empty for MissingFile and InvalidFile.
type Entry struct {
	Kind Kind   `json:"kind"`
	Path string `json:"path"`
	Key  string `json:"key,omitempty"`
}

// Summary holds the totals of a comparison
type Summary struct {
	SourceFiles int `json:"source_files"`
	TargetFiles int `json:"target_files"`
	SourceKeys  int `json:"source_keys"`
	// TargetKeys only counts target files that also exist in the source
	TargetKeys  int `json:"target_keys"`
	Differences int `json:"differences"`
}

// Report is the result of Compare
type Report struct {
	Entries []Entry `json:"entries"`
	Summary Summary `json:"summary"`
}

// Empty reports whether no differences were found
func (r *Report) Empty() bool {
	return len(r.Entries) == 0
}

// Count returns the number of entries of one kind
func (r *Report) Count(k Kind) int {
	n := 0
	for _, e := range r.Entries {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Compare lists what the target is missing relative to the source, in
// source traversal order and key encounter order.
func Compare(source, target *tree.LanguageTree) *Report {
	r := &Report{Entries: []Entry{}}
	r.Summary.SourceFiles = source.FileCount()
	r.Summary.TargetFiles = target.FileCount()

	for _, path := range source.Paths() {
		src, _ := source.Table(path)
		r.Summary.SourceKeys += src.Len()

		dst, ok := target.Table(path)
		if !ok {
			kind := MissingFile
			if _, failed := target.Failed(path); failed {
				kind = InvalidFile
			}
			r.Entries = append(r.Entries, Entry{Kind: kind, Path: path})
			continue
		}
		r.Summary.TargetKeys += dst.Len()

		for _, key := range src.Keys() {
			switch {
			case !dst.Has(key):
				r.Entries = append(r.Entries, Entry{Kind: MissingKey, Path: path, Key: key})
			case dst.IsEmpty(key):
				r.Entries = append(r.Entries, Entry{Kind: EmptyValue, Path: path, Key: key})
			}
		}
	}

	r.Summary.Differences = len(r.Entries)
	return r
}

// Package registry loads the language registry: a table file in the source
// language directory mapping language codes to human readable names. The
// names are what the translation provider is told to translate between.
package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"codeberg.org/snonux/langsync/internal/table"
)

// ErrUnsupportedLanguage is returned when a language code is not listed
// in the registry.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// DefaultName is the base name of the registry file
const DefaultName = "lang"

// Registry maps language codes to display names
type Registry struct {
	Path  string
	names map[string]string
	codes []string
}

// Path returns the location of the registry file for a source language
// directory.
func Path(sourceRoot, name, ext string) string {
	if name == "" {
		name = DefaultName
	}
	return filepath.Join(sourceRoot, name+"."+table.NormalizeExt(ext))
}

// Load reads the registry table at path
func Load(path string) (*Registry, error) {
	tbl, err := table.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load language registry: %w", err)
	}
	r := FromTable(tbl)
	r.Path = path
	return r, nil
}

// FromTable builds a registry from an already loaded table
func FromTable(tbl *table.Table) *Registry {
	r := &Registry{names: make(map[string]string)}
	for _, code := range tbl.Keys() {
		name, _ := tbl.Get(code)
		r.names[code] = name
		r.codes = append(r.codes, code)
	}
	return r
}

// Name returns the display name of code. Codes listed with an empty name
// fall back to the English name of the language tag.
func (r *Registry) Name(code string) (string, bool) {
	name, ok := r.names[code]
	if !ok {
		return "", false
	}
	if name == "" {
		name = DisplayName(code)
	}
	return name, true
}

// Require fails with ErrUnsupportedLanguage unless every code is listed
func (r *Registry) Require(codes ...string) error {
	var missing []string
	for _, c := range codes {
		if _, ok := r.names[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnsupportedLanguage, strings.Join(missing, ", "))
	}
	return nil
}

// Codes returns the registered codes in file order
func (r *Registry) Codes() []string {
	out := make([]string, len(r.codes))
	copy(out, r.codes)
	return out
}

// SortedCodes returns the registered codes sorted alphabetically
func (r *Registry) SortedCodes() []string {
	out := r.Codes()
	sort.Strings(out)
	return out
}

// DisplayName returns the English name for a language code such as "de"
// or "pt_BR". Unknown codes are returned unchanged.
func DisplayName(code string) string {
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return code
	}
	name := display.Tags(language.English).Name(tag)
	if name == "" {
		return code
	}
	return name
}

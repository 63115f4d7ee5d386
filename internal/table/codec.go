package table

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Codec parses and renders one table file format
type Codec interface {
	// Decode parses data into a table. Content that is not a flat
	// key to string mapping yields ErrInvalidTableFormat.
	Decode(data []byte) (*Table, error)

	// Encode renders the whole table as file content
	Encode(t *Table) ([]byte, error)
}

var codecs = map[string]Codec{
	"php":  phpCodec{},
	"json": jsonCodec{},
	"yaml": yamlCodec{},
	"yml":  yamlCodec{},
	"toml": tomlCodec{},
}

// NormalizeExt lower-cases an extension and strips its leading dot
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// CodecFor returns the codec registered for a file extension
func CodecFor(ext string) (Codec, error) {
	c, ok := codecs[NormalizeExt(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return c, nil
}

// SupportedExtensions lists the extensions that have a codec
func SupportedExtensions() []string {
	exts := make([]string, 0, len(codecs))
	for ext := range codecs {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func codecForPath(path string) (Codec, error) {
	return CodecFor(filepath.Ext(path))
}

package cli

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/snonux/langsync/internal/diff"
	"codeberg.org/snonux/langsync/internal/registry"
	"codeberg.org/snonux/langsync/internal/table"
	"codeberg.org/snonux/langsync/internal/translation"
)

// Classify names the category of an error for the user
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, registry.ErrUnsupportedLanguage):
		return "unsupported language"
	case errors.Is(err, table.ErrDirectoryNotFound):
		return "directory not found"
	case errors.Is(err, table.ErrInvalidTableFormat), errors.Is(err, table.ErrUnknownFormat):
		return "invalid translation file"
	case errors.Is(err, translation.ErrTranslationProvider):
		return "translation provider error"
	case errors.Is(err, diff.ErrDifferencesFound):
		return "differences found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "interrupted"
	default:
		return "error"
	}
}

// FormatError renders err with its category for printing on stderr
func FormatError(err error) string {
	return fmt.Sprintf("Error (%s): %v", Classify(err), err)
}

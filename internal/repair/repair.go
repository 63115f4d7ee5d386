package repair

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"codeberg.org/snonux/langsync/internal/registry"
	"codeberg.org/snonux/langsync/internal/table"
	"codeberg.org/snonux/langsync/internal/translation"
	"codeberg.org/snonux/langsync/internal/tree"
)

// Policy selects how a run treats the target directory
type Policy struct {
	Name string

	// CreateRoot creates a missing target root instead of failing
	CreateRoot bool

	// AlwaysFromScratch ignores existing target files and translates
	// every source key
	AlwaysFromScratch bool
}

var (
	// Translate rebuilds the target language from the source language
	Translate = Policy{Name: "translate", CreateRoot: true, AlwaysFromScratch: true}

	// Repair fills gaps in an existing target language
	Repair = Policy{Name: "repair"}
)

// ProgressFunc is called after each written file with its relative path
// and the number of keys updated in it.
type ProgressFunc func(rel string, updated int)

// Options configure an Engine
type Options struct {
	// DryRun computes updates without writing any file
	DryRun bool

	Progress ProgressFunc
}

// Result summarizes a run
type Result struct {
	APICalls    int
	KeysUpdated int
	KeysFailed  int

	// FilesWritten lists relative paths in source order. In dry-run mode
	// it lists the files that would have been written.
	FilesWritten []string

	// Errors holds isolated per-file failures
	Errors []error
}

// Err aggregates the isolated per-file failures, or returns nil
func (r *Result) Err() error {
	var merr *multierror.Error
	for _, err := range r.Errors {
		merr = multierror.Append(merr, err)
	}
	return merr.ErrorOrNil()
}

// Engine drives translate and repair runs
type Engine struct {
	opts Options
}

// NewEngine creates an engine with the given options
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Run brings the files below targetRoot in line with source. Keys that are
// missing or empty in a target table are passed to translate; successful
// translations are merged into the table, which is saved once. Failed keys
// are skipped and counted. Unsupported language codes and a missing target
// root (unless the policy creates it) fail the run before anything is
// written.
func (e *Engine) Run(ctx context.Context, source *tree.LanguageTree, targetRoot string,
	reg *registry.Registry, sourceCode, targetCode string,
	policy Policy, translate translation.TranslateFunc) (*Result, error) {

	if err := reg.Require(sourceCode, targetCode); err != nil {
		return nil, err
	}
	sourceName, _ := reg.Name(sourceCode)
	targetName, _ := reg.Name(targetCode)

	if !table.DirExists(targetRoot) {
		if !policy.CreateRoot {
			return nil, fmt.Errorf("%w: %s", table.ErrDirectoryNotFound, targetRoot)
		}
		if !e.opts.DryRun {
			if err := os.MkdirAll(targetRoot, 0755); err != nil {
				return nil, fmt.Errorf("failed to create target directory: %w", err)
			}
		}
	}

	slog.Debug("starting run", "policy", policy.Name, "source", sourceCode,
		"target", targetCode, "files", source.FileCount(), "dry_run", e.opts.DryRun)

	result := &Result{}
	for _, rel := range source.Paths() {
		src, _ := source.Table(rel)
		targetPath := filepath.Join(targetRoot, filepath.FromSlash(rel))

		working, err := e.workingTable(targetPath, policy)
		if err != nil {
			slog.Warn("skipping target file", "file", rel, "error", err)
			result.Errors = append(result.Errors, err)
			continue
		}

		staged := table.New()
		for _, key := range src.Keys() {
			if !working.IsEmpty(key) {
				continue
			}
			value, _ := src.Get(key)

			if err := ctx.Err(); err != nil {
				return result, fmt.Errorf("run interrupted: %w", err)
			}

			translated, err := translate(ctx, value, sourceName, targetName)
			if err == nil && translated == "" {
				err = fmt.Errorf("%w: empty translation", translation.ErrTranslationProvider)
			}
			if err != nil {
				slog.Warn("failed to translate key", "file", rel, "key", key, "error", err)
				result.KeysFailed++
				continue
			}

			staged.Set(key, translated)
			result.KeysUpdated++
		}

		if staged.Len() == 0 {
			continue
		}
		result.APICalls++
		working.Merge(staged)

		if !e.opts.DryRun {
			if err := table.Save(targetPath, working); err != nil {
				slog.Warn("failed to write target file", "file", rel, "error", err)
				result.Errors = append(result.Errors, err)
				continue
			}
		}

		slog.Debug("updated translation file", "file", rel, "keys", staged.Len(), "dry_run", e.opts.DryRun)
		result.FilesWritten = append(result.FilesWritten, rel)
		if e.opts.Progress != nil {
			e.opts.Progress(rel, staged.Len())
		}
	}

	return result, nil
}

// workingTable returns the table updates are merged into: empty when
// translating from scratch or when no target file exists yet.
func (e *Engine) workingTable(path string, policy Policy) (*table.Table, error) {
	if policy.AlwaysFromScratch || !table.FileExists(path) {
		return table.New(), nil
	}
	return table.Load(path)
}

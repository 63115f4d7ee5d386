package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/snonux/langsync/internal/archive"
	"codeberg.org/snonux/langsync/internal/cli"
	"codeberg.org/snonux/langsync/internal/diff"
	"codeberg.org/snonux/langsync/internal/journal"
	"codeberg.org/snonux/langsync/internal/models"
	"codeberg.org/snonux/langsync/internal/registry"
	"codeberg.org/snonux/langsync/internal/repair"
	"codeberg.org/snonux/langsync/internal/report"
	"codeberg.org/snonux/langsync/internal/table"
	"codeberg.org/snonux/langsync/internal/translation"
	"codeberg.org/snonux/langsync/internal/tree"
)

// Processor implements the langsync commands
type Processor struct {
	flags *cli.Flags
	out   io.Writer

	// newProvider builds the translation provider chain
	newProvider func(config *translation.Config) (translation.Provider, error)
	now         func() time.Time
}

// NewProcessor creates a processor printing its reports to out
func NewProcessor(flags *cli.Flags, out io.Writer) *Processor {
	if out == nil {
		out = os.Stdout
	}
	return &Processor{
		flags:       flags,
		out:         out,
		newProvider: translation.NewProvider,
		now:         time.Now,
	}
}

func (p *Processor) reporter(s cli.Settings) *report.Reporter {
	return report.New(p.out, s.NoColor)
}

// buildTree loads one language directory. Files that fail to load are
// logged and left out of the tree.
func buildTree(s cli.Settings, lang string) (*tree.LanguageTree, error) {
	root := filepath.Join(s.LangDir, lang)
	tr, err := tree.Build(root, s.Ext)
	if tr == nil {
		return nil, fmt.Errorf("language %s: %w", lang, err)
	}
	for _, ferr := range tr.Errors {
		slog.Warn("skipping translation file", "language", lang, "error", ferr)
	}
	return tr, nil
}

// Show prints the inventory of one language
func (p *Processor) Show(ctx context.Context, lang string) error {
	s := cli.LoadSettings()
	tr, err := buildTree(s, lang)
	if err != nil {
		return err
	}
	return p.reporter(s).Show(tr)
}

// Compare prints the differences between two languages
func (p *Processor) Compare(ctx context.Context, source, target string) error {
	s := cli.LoadSettings()

	src, err := buildTree(s, source)
	if err != nil {
		return err
	}
	tgt, err := buildTree(s, target)
	if err != nil {
		return err
	}

	rep := diff.Compare(src, tgt)
	r := p.reporter(s)
	if p.flags.Format == "json" {
		err = r.CompareJSON(source, target, rep)
	} else {
		err = r.Compare(source, target, rep)
	}
	if err != nil {
		return err
	}

	if p.flags.FailOnDiff && !rep.Empty() {
		return fmt.Errorf("%w: %d between %s and %s", diff.ErrDifferencesFound, len(rep.Entries), source, target)
	}
	return nil
}

// Translate translates every source file into the target language
func (p *Processor) Translate(ctx context.Context, source, target string) error {
	return p.sync(ctx, repair.Translate, source, target)
}

// Repair fills missing and empty keys in existing target files
func (p *Processor) Repair(ctx context.Context, source, target string) error {
	return p.sync(ctx, repair.Repair, source, target)
}

func (p *Processor) sync(ctx context.Context, policy repair.Policy, source, target string) error {
	s := cli.LoadSettings()
	sourceRoot := filepath.Join(s.LangDir, source)
	targetRoot := filepath.Join(s.LangDir, target)

	if !table.DirExists(sourceRoot) {
		return fmt.Errorf("language %s: %w: %s", source, table.ErrDirectoryNotFound, sourceRoot)
	}

	reg, err := registry.Load(registry.Path(sourceRoot, s.Registry, s.Ext))
	if err != nil {
		return err
	}
	if err := reg.Require(source, target); err != nil {
		return err
	}

	src, err := buildTree(s, source)
	if err != nil {
		return err
	}

	provider, err := p.newProvider(&s.Translation)
	if err != nil {
		return fmt.Errorf("%w: %w", translation.ErrTranslationProvider, err)
	}
	if err := provider.IsAvailable(); err != nil {
		return fmt.Errorf("%w: %s: %w", translation.ErrTranslationProvider, provider.Name(), err)
	}
	slog.Info("translating", "policy", policy.Name, "source", source, "target", target, "provider", provider.Name())

	if p.flags.Backup && !p.flags.DryRun && table.DirExists(targetRoot) {
		path, err := p.backup(s, targetRoot)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.out, "Archived %s to %s\n", targetRoot, path)
	}

	run := journal.NewRun(policy.Name, source, target)
	run.StartedAt = p.now()
	run.DryRun = p.flags.DryRun

	written := 0
	engine := repair.NewEngine(repair.Options{
		DryRun: p.flags.DryRun,
		Progress: func(rel string, updated int) {
			written++
			slog.Info("file updated", "file", rel, "keys", updated, "files", written, "of", src.FileCount())
		},
	})

	res, runErr := engine.Run(ctx, src, targetRoot, reg, source, target, policy, translation.Func(provider))

	if res != nil {
		run.APICalls = res.APICalls
		run.KeysUpdated = res.KeysUpdated
		run.KeysFailed = res.KeysFailed
		run.FilesWritten = len(res.FilesWritten)
		if err := res.Err(); err != nil {
			run.Error = err.Error()
		}
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	run.FinishedAt = p.now()
	p.record(ctx, s, run, runErr)

	if res != nil {
		if err := p.reporter(s).Repair(res, p.flags.DryRun); err != nil {
			return err
		}
	}
	return runErr
}

func (p *Processor) backup(s cli.Settings, targetRoot string) (string, error) {
	dir := s.ArchiveDir
	if dir == "" {
		var err error
		dir, err = archive.DefaultDir()
		if err != nil {
			return "", err
		}
	}
	return archive.Snapshot(targetRoot, dir, p.now())
}

// record stores the run in the journal. Journal failures never fail the
// command. Runs rejected before any work is done are not recorded.
func (p *Processor) record(ctx context.Context, s cli.Settings, run *journal.Run, runErr error) {
	if s.JournalDisabled {
		return
	}
	if runErr != nil && (errors.Is(runErr, registry.ErrUnsupportedLanguage) || errors.Is(runErr, table.ErrDirectoryNotFound)) {
		return
	}

	j, err := openJournal(s)
	if err != nil {
		slog.Warn("journal unavailable", "error", err)
		return
	}
	defer j.Close()

	// Record even when the run was interrupted
	if err := j.Record(context.WithoutCancel(ctx), run); err != nil {
		slog.Warn("failed to record run", "error", err)
		return
	}
	slog.Debug("recorded run", "id", run.ID, "journal", j.Path())
}

func openJournal(s cli.Settings) (*journal.Journal, error) {
	path := s.JournalPath
	if path == "" {
		var err error
		path, err = journal.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return journal.Open(path)
}

// History prints the most recent runs from the journal
func (p *Processor) History(ctx context.Context) error {
	s := cli.LoadSettings()
	if s.JournalDisabled {
		return errors.New("journal is disabled")
	}

	j, err := openJournal(s)
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.List(ctx, p.flags.Limit)
	if err != nil {
		return err
	}
	return p.reporter(s).History(runs, p.now())
}

// Models prints the OpenAI chat models usable for translation
func (p *Processor) Models(ctx context.Context) error {
	s := cli.LoadSettings()
	lister := models.NewLister(s.Translation.OpenAIKey, s.Translation.OpenAIBaseURL)

	ids, err := lister.TranslationModels(ctx)
	if err != nil {
		return err
	}
	return p.reporter(s).Models(ids)
}

// Package report renders the results of the langsync commands as plain
// text tables or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"codeberg.org/snonux/langsync/internal/diff"
	"codeberg.org/snonux/langsync/internal/journal"
	"codeberg.org/snonux/langsync/internal/repair"
	"codeberg.org/snonux/langsync/internal/tree"
)

// Reporter writes reports to w
type Reporter struct {
	w io.Writer

	ok   *color.Color
	warn *color.Color
	bad  *color.Color
	dim  *color.Color
}

// New creates a reporter. Colors follow the terminal detection of
// fatih/color unless noColor is set.
func New(w io.Writer, noColor bool) *Reporter {
	r := &Reporter{
		w:    w,
		ok:   color.New(color.FgGreen),
		warn: color.New(color.FgYellow),
		bad:  color.New(color.FgRed),
		dim:  color.New(color.Faint),
	}
	if noColor {
		for _, c := range []*color.Color{r.ok, r.warn, r.bad, r.dim} {
			c.DisableColor()
		}
	}
	return r
}

func (r *Reporter) table() *tabwriter.Writer {
	return tabwriter.NewWriter(r.w, 2, 4, 2, ' ', 0)
}

// Show prints the inventory of one language tree
func (r *Reporter) Show(tr *tree.LanguageTree) error {
	for _, err := range tr.Errors {
		fmt.Fprintf(r.w, "%s %v\n", r.bad.Sprint("Error:"), err)
	}

	if tr.FileCount() == 0 {
		fmt.Fprintln(r.w, "No translation files found for the specified language.")
		return nil
	}

	tw := r.table()
	fmt.Fprintln(tw, "Directory\tFile\tKeys")
	for _, rel := range tr.Paths() {
		tbl, _ := tr.Table(rel)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", path.Dir(rel), path.Base(rel), humanize.Comma(int64(tbl.Len())))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(r.w, "Total files: %s\n", humanize.Comma(int64(tr.FileCount())))
	fmt.Fprintf(r.w, "Total keys: %s\n", humanize.Comma(int64(tr.KeyCount())))
	return nil
}

// Compare prints the differences between two languages and the summary
func (r *Reporter) Compare(source, target string, rep *diff.Report) error {
	if rep.Empty() {
		fmt.Fprintf(r.w, "%s\n", r.ok.Sprintf("No missing or empty keys found between %s and %s languages.", source, target))
	} else {
		tw := r.table()
		fmt.Fprintln(tw, "File\tKey\tStatus")
		for _, e := range rep.Entries {
			key := e.Key
			if e.Kind == diff.MissingFile || e.Kind == diff.InvalidFile {
				key = "N/A"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Path, key, r.status(e.Kind))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	s := rep.Summary
	fmt.Fprintln(r.w, "Summary:")
	fmt.Fprintf(r.w, "Total source files: %d\n", s.SourceFiles)
	fmt.Fprintf(r.w, "Total target files: %d\n", s.TargetFiles)
	fmt.Fprintf(r.w, "Total source keys: %d\n", s.SourceKeys)
	fmt.Fprintf(r.w, "Total target keys: %d\n", s.TargetKeys)
	fmt.Fprintf(r.w, "Differences detected: %d\n", s.Differences)
	return nil
}

func (r *Reporter) status(k diff.Kind) string {
	switch k {
	case diff.MissingFile, diff.InvalidFile:
		return r.bad.Sprint(k.String())
	default:
		return r.warn.Sprint(k.String())
	}
}

type compareDocument struct {
	Source string `json:"source"`
	Target string `json:"target"`
	*diff.Report
}

// CompareJSON writes the comparison as one JSON document
func (r *Reporter) CompareJSON(source, target string, rep *diff.Report) error {
	doc := compareDocument{Source: source, Target: target, Report: rep}
	if doc.Entries == nil {
		doc.Report = &diff.Report{Entries: []diff.Entry{}, Summary: rep.Summary}
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Repair prints the outcome of a translate or repair run
func (r *Reporter) Repair(res *repair.Result, dryRun bool) error {
	for _, rel := range res.FilesWritten {
		verb := "Updated"
		if dryRun {
			verb = "Would update"
		}
		fmt.Fprintf(r.w, "%s %s\n", r.ok.Sprint(verb), rel)
	}
	for _, err := range res.Errors {
		fmt.Fprintf(r.w, "%s %v\n", r.bad.Sprint("Skipped:"), err)
	}

	if dryRun {
		fmt.Fprintf(r.w, "Dry run completed. API calls made: %d. Keys updated: %d.\n", res.APICalls, res.KeysUpdated)
	} else {
		fmt.Fprintf(r.w, "Translation completed. API calls made: %d. Keys updated: %d.\n", res.APICalls, res.KeysUpdated)
	}
	if res.KeysFailed > 0 {
		fmt.Fprintf(r.w, "%s\n", r.warn.Sprintf("Keys failed: %d. Run repair to retry them.", res.KeysFailed))
	}
	return nil
}

// History prints journal rows, most recent first
func (r *Reporter) History(runs []journal.Run, now time.Time) error {
	if len(runs) == 0 {
		fmt.Fprintln(r.w, "No runs recorded yet.")
		return nil
	}

	tw := r.table()
	fmt.Fprintln(tw, "When\tAction\tLanguages\tAPI calls\tUpdated\tFailed\tFiles\tDuration\tStatus")
	for _, run := range runs {
		action := run.Action
		if run.DryRun {
			action += " (dry run)"
		}
		status := "ok"
		if run.Error != "" {
			status = run.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s -> %s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			humanize.RelTime(run.StartedAt, now, "ago", "from now"),
			action, run.Source, run.Target,
			run.APICalls, run.KeysUpdated, run.KeysFailed, run.FilesWritten,
			run.Duration().Round(time.Millisecond), status)
	}
	return tw.Flush()
}

// Models prints one model id per line
func (r *Reporter) Models(ids []string) error {
	if len(ids) == 0 {
		fmt.Fprintln(r.w, "No models available.")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(r.w, id)
	}
	return nil
}

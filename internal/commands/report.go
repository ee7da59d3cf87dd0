package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spendmap/spendmap/internal/importer"
	"github.com/spendmap/spendmap/internal/pipeline"
	"github.com/spendmap/spendmap/internal/prompt"
	"github.com/spendmap/spendmap/internal/render"
	"github.com/spendmap/spendmap/internal/statement"
)

const (
	viewTable   = "table"
	viewTotals  = "totals"
	viewMonthly = "monthly"
)

var allViews = []string{viewTable, viewTotals, viewMonthly}

type reportOptions struct {
	noPrompt bool
	save     bool
	archive  bool
	views    []string
}

func newReportCommand(v *viper.Viper) *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report [statement.csv...]",
		Short: "Categorize statements and show spending views",
		Long: `Reads bank statements, categorizes every transaction through the mapping
store and prints the transaction table, category totals and monthly pivot.

Without arguments every CSV file in the workspace import/ directory is read.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, view := range opts.views {
				if !slices.Contains(allViews, view) {
					return fmt.Errorf("unknown view %q: must be one of table, totals, monthly", view)
				}
			}

			a, err := openApp(cmd, v)
			if err != nil {
				return err
			}
			defer a.Close()
			return runReport(a, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noPrompt, "no-prompt", false, "do not ask for categories of unknown names")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save new mappings without asking")
	cmd.Flags().BoolVar(&opts.archive, "archive", false, "move statements read from import/ to import/processed/")
	cmd.Flags().StringSliceVar(&opts.views, "view", allViews, "views to print: table, totals, monthly")

	return cmd
}

func runReport(a *app, args []string, opts reportOptions) error {
	files := args
	fromInbox := len(args) == 0
	if fromInbox {
		found, err := importer.Scan(a.workspace)
		if err != nil {
			return err
		}
		for _, f := range found {
			files = append(files, f.Path)
		}
		if len(files) == 0 {
			return fmt.Errorf("no statements given and none found in %s", filepath.Join(a.workspace, importer.Dir))
		}
	}

	p, err := pipeline.New(a.ctx, a.store, a.pipelineOptions())
	if err != nil {
		return err
	}

	// Every file is parsed before anything is printed so a bad statement
	// produces no partial report.
	runs := make([]*pipeline.Run, 0, len(files))
	for _, path := range files {
		run, err := p.IngestFile(a.ctx, path)
		if errors.Is(err, statement.ErrHeaderNotFound) {
			return fmt.Errorf("could not find valid header in %s", path)
		}
		if err != nil {
			return err
		}
		runs = append(runs, run)
	}

	prompter := prompt.New(a.in, a.out, a.color)
	if !opts.noPrompt {
		if err := promptCategories(p, runs, prompter); err != nil {
			return err
		}
	}

	r := render.New(a.out, a.color)
	for _, run := range runs {
		renderRun(r, p, run, opts.views, len(runs) > 1)
	}

	if err := saveReport(a, p, prompter, opts); err != nil {
		return err
	}

	if opts.archive && fromInbox {
		for _, path := range files {
			if err := importer.MarkProcessed(a.workspace, filepath.Base(path)); err != nil {
				return err
			}
		}
		fmt.Fprintf(a.out, "Archived %d statement(s) to %s\n", len(files), importer.ProcessedDir)
	}
	return nil
}

// promptCategories asks once per uncategorized name across all runs.
func promptCategories(p *pipeline.Pipeline, runs []*pipeline.Run, prompter *prompt.Prompter) error {
	var names []string
	for _, run := range runs {
		for _, name := range run.Uncategorized() {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return nil
	}

	proposals, err := prompter.Categories(names, p.Session().Categories())
	if err != nil {
		return fmt.Errorf("reading categories: %w", err)
	}
	for _, run := range runs {
		p.Recategorize(run)
		p.Override(run, proposals)
	}
	return nil
}

func renderRun(r *render.Renderer, p *pipeline.Pipeline, run *pipeline.Run, views []string, titled bool) {
	if titled {
		r.Heading(filepath.Base(run.Source))
	}
	v := p.Views(run)
	if slices.Contains(views, viewTable) {
		r.Heading("Categorized Transactions")
		r.Transactions(run.Rows)
	}
	if slices.Contains(views, viewTotals) {
		r.Heading("Spending by Category")
		r.CategoryTotals(v.Totals)
	}
	if slices.Contains(views, viewMonthly) {
		r.Heading("Monthly Spending by Category")
		r.Monthly(v.Monthly)
	}
	r.Total(v.Total, len(run.Rows))
}

func saveReport(a *app, p *pipeline.Pipeline, prompter *prompt.Prompter, opts reportOptions) error {
	save := opts.save
	if !save && !opts.noPrompt && len(p.Session().Pending()) > 0 {
		ok, err := prompter.Confirm("Save category mapping?", false)
		if err != nil {
			return fmt.Errorf("reading answer: %w", err)
		}
		save = ok
	}
	if !save {
		return nil
	}

	changes, err := p.Save(a.ctx)
	if err != nil {
		return err
	}
	a.afterSave(changes)
	fmt.Fprintf(a.out, "Saved %d mapping change(s) to %s\n", len(changes), a.store.Location())
	return nil
}

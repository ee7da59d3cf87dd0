// Package pipeline runs a statement through parsing, naming, categorization
// and aggregation.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/spendmap/spendmap/internal/categorize"
	"github.com/spendmap/spendmap/internal/logger"
	"github.com/spendmap/spendmap/internal/mapping"
	"github.com/spendmap/spendmap/internal/model"
	"github.com/spendmap/spendmap/internal/names"
	"github.com/spendmap/spendmap/internal/report"
	"github.com/spendmap/spendmap/internal/statement"
)

// Options configures a Pipeline.
type Options struct {
	Statement   statement.Options
	DateLayouts []string
}

// Pipeline holds the mapping store and the categorization session shared by
// every statement processed in one invocation.
type Pipeline struct {
	store   mapping.Store
	session *categorize.Session
	opts    Options
}

// New loads the mapping store and returns a Pipeline.
func New(ctx context.Context, store mapping.Store, opts Options) (*Pipeline, error) {
	sess, err := categorize.Load(ctx, store)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug().
		Str("store", store.Location()).
		Int("mappings", sess.Table().Len()).
		Msg("loaded mappings")
	return &Pipeline{store: store, session: sess, opts: opts}, nil
}

// Session returns the categorization session.
func (p *Pipeline) Session() *categorize.Session {
	return p.session
}

// Run is one statement after categorization.
type Run struct {
	Source    string
	Statement *statement.Statement
	Rows      []model.Transaction
	Fallbacks int // rows whose name fell back to model.UnknownName
}

// IngestFile reads the statement at path and categorizes it.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (*Run, error) {
	st, err := statement.ReadFile(path, p.opts.Statement)
	if err != nil {
		return nil, err
	}
	return p.ingest(ctx, path, st), nil
}

// Ingest reads a statement from r and categorizes it. source names r in logs.
func (p *Pipeline) Ingest(ctx context.Context, source string, r io.Reader) (*Run, error) {
	st, err := statement.Read(r, p.opts.Statement)
	if err != nil {
		return nil, fmt.Errorf("reading statement %s: %w", source, err)
	}
	return p.ingest(ctx, source, st), nil
}

func (p *Pipeline) ingest(ctx context.Context, source string, st *statement.Statement) *Run {
	log := logger.FromContext(ctx)
	fallbacks := names.Annotate(st.Rows)
	run := &Run{
		Source:    source,
		Statement: st,
		Rows:      p.session.Categorize(st.Rows),
		Fallbacks: fallbacks,
	}
	log.Info().
		Str("file", source).
		Int("header_line", st.HeaderLine+1).
		Int("rows", len(st.Rows)).
		Bool("dropped_trailing", st.DroppedTrailing).
		Msg("parsed statement")
	if fallbacks > 0 {
		log.Debug().Str("file", source).Int("rows", fallbacks).Msg("remarks missing, name set to Unknown")
	}
	return run
}

// Uncategorized lists the names of the run that still need a category.
func (r *Run) Uncategorized() []string {
	return categorize.UncategorizedNames(r.Rows)
}

// Override applies proposals to the run and records them in the session.
func (p *Pipeline) Override(r *Run, proposals map[string]string) {
	r.Rows = p.session.Override(r.Rows, proposals)
}

// Recategorize re-applies the session to the run, picking up assignments
// made while processing other statements.
func (p *Pipeline) Recategorize(r *Run) {
	r.Rows = p.session.Categorize(r.Statement.Rows)
}

// Save persists the pending assignments.
func (p *Pipeline) Save(ctx context.Context) ([]model.MappingChange, error) {
	changes, err := p.session.Save(ctx, p.store)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info().
		Str("store", p.store.Location()).
		Int("changes", len(changes)).
		Msg("saved mappings")
	return changes, nil
}

// Views are the aggregations of one run.
type Views struct {
	Totals  []report.CategoryTotal
	Monthly *report.Pivot
	Total   decimal.Decimal
}

// Views aggregates the run.
func (p *Pipeline) Views(r *Run) Views {
	return Views{
		Totals:  report.CategoryTotals(r.Rows),
		Monthly: report.MonthlyPivot(r.Rows, p.opts.DateLayouts),
		Total:   report.Total(r.Rows),
	}
}

// Package corrector drives the webpage-correction pass over a dataset:
// decide per record whether the webpage needs replacing, resolve a candidate
// through the AI chain, optionally re-validate it, and write the dataset
// back when anything changed.
package corrector

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/webfix-cli/internal/classify"
	"github.com/sells-group/webfix-cli/internal/dataset"
	"github.com/sells-group/webfix-cli/internal/liveness"
)

// Mode selects how records are flagged for correction.
type Mode int

const (
	// ModeClassification flags webpages matching the non-brand rule set.
	// Candidates are accepted without re-validation.
	ModeClassification Mode = iota
	// ModeLiveness flags webpages whose HTTP status is in the broken set.
	// Candidates are re-probed and accepted only with a good status.
	ModeLiveness
)

// Outcome is the per-record result of a pass.
type Outcome int

const (
	Unchanged Outcome = iota
	Replaced
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Replaced:
		return "replaced"
	case Failed:
		return "failed"
	default:
		return "unchanged"
	}
}

// Result records one correction attempt for reporting. Unchanged records are
// only counted, not listed.
type Result struct {
	Index        int
	Name         string
	OldURL       string
	NewURL       string // set on Replaced
	AttemptedURL string // set on Failed when a candidate was rejected
	Outcome      Outcome
}

// Summary aggregates a pass over one dataset.
type Summary struct {
	RunID           string
	Dataset         string
	Replaced        int
	Failed          int
	Unchanged       int
	BudgetExhausted bool
	Results         []Result
}

// Budget caps the number of replacements across one or more passes. A nil
// Budget or a limit of zero means unlimited.
type Budget struct {
	limited   bool
	remaining int
}

// NewBudget creates an edit budget. limit <= 0 means unlimited.
func NewBudget(limit int) *Budget {
	return &Budget{limited: limit > 0, remaining: limit}
}

// Exhausted reports whether no replacements remain.
func (b *Budget) Exhausted() bool {
	return b != nil && b.limited && b.remaining <= 0
}

// consume spends one replacement. Only successful replacements count.
func (b *Budget) consume() {
	if b != nil && b.limited {
		b.remaining--
	}
}

// Resolver finds an official website for a company. False means every
// provider failed or declined.
type Resolver interface {
	Resolve(ctx context.Context, company, country string) (string, bool)
}

// Params configures a Corrector.
type Params struct {
	Mode       Mode
	Classifier *classify.Classifier // required in ModeClassification
	Checker    liveness.Checker     // required in ModeLiveness
	Resolver   Resolver
	// FixMissing also corrects records with an empty webpage and a present
	// IPO indicator (JSON datasets), since a downstream viewer would
	// substitute a financial-quote page for those.
	FixMissing bool
	// Budget is shared across Run calls; nil means unlimited.
	Budget *Budget
}

// Corrector applies webpage corrections to datasets.
type Corrector struct {
	p Params
}

// New creates a Corrector.
func New(p Params) *Corrector {
	return &Corrector{p: p}
}

// Run executes one pass over the dataset. Per-record failures never abort
// the pass; only dataset save errors are returned. The dataset is rewritten
// only if at least one replacement happened.
func (c *Corrector) Run(ctx context.Context, ds dataset.Dataset) (*Summary, error) {
	s := &Summary{
		RunID:   uuid.New().String(),
		Dataset: ds.Path(),
	}
	log := zap.L().With(
		zap.String("run_id", s.RunID),
		zap.String("dataset", ds.Path()),
	)
	log.Info("correction pass started", zap.Int("records", ds.Len()))

	for i := 0; i < ds.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return s, eris.Wrap(err, "corrector: pass cancelled")
		}

		// Budget exhausted: the rest of the pass is skipped entirely.
		if c.p.Budget.Exhausted() {
			s.BudgetExhausted = true
			s.Unchanged += ds.Len() - i
			log.Info("edit budget exhausted, stopping pass", zap.Int("skipped", ds.Len()-i))
			break
		}

		rec := ds.Record(i)
		if !c.needsCorrection(ctx, rec) {
			s.Unchanged++
			continue
		}

		name := rec.Name
		if name == "" {
			name = "Unknown"
		}
		log.Info("correcting record",
			zap.Int("index", i),
			zap.String("company", name),
			zap.String("webpage", rec.Webpage),
		)

		newURL, ok := c.p.Resolver.Resolve(ctx, name, rec.Country)
		if !ok {
			log.Info("no alternative found, keeping original", zap.String("company", name))
			s.Failed++
			s.Results = append(s.Results, Result{
				Index: i, Name: name, OldURL: rec.Webpage, Outcome: Failed,
			})
			continue
		}

		if c.p.Mode == ModeLiveness {
			status := c.p.Checker.CheckStatus(ctx, newURL)
			if liveness.BrokenStatuses[status] || status < 200 || status >= 400 {
				log.Info("candidate rejected by re-check",
					zap.String("company", name),
					zap.String("candidate", newURL),
					zap.Int("status", status),
				)
				s.Failed++
				s.Results = append(s.Results, Result{
					Index: i, Name: name, OldURL: rec.Webpage, AttemptedURL: newURL, Outcome: Failed,
				})
				continue
			}
		}

		if err := ds.SetWebpage(i, newURL); err != nil {
			log.Warn("set webpage failed", zap.Int("index", i), zap.Error(err))
			s.Failed++
			s.Results = append(s.Results, Result{
				Index: i, Name: name, OldURL: rec.Webpage, AttemptedURL: newURL, Outcome: Failed,
			})
			continue
		}

		log.Info("webpage replaced",
			zap.String("company", name),
			zap.String("old", rec.Webpage),
			zap.String("new", newURL),
		)
		s.Replaced++
		s.Results = append(s.Results, Result{
			Index: i, Name: name, OldURL: rec.Webpage, NewURL: newURL, Outcome: Replaced,
		})
		c.p.Budget.consume()
	}

	if ds.Dirty() {
		if err := ds.Save(); err != nil {
			return s, eris.Wrap(err, "corrector: save dataset")
		}
		log.Info("dataset saved")
	}

	log.Info("correction pass complete",
		zap.Int("replaced", s.Replaced),
		zap.Int("failed", s.Failed),
		zap.Int("unchanged", s.Unchanged),
	)
	return s, nil
}

// needsCorrection applies the mode's flagging rule to one record.
func (c *Corrector) needsCorrection(ctx context.Context, rec dataset.Record) bool {
	hasURL := rec.Webpage != "" && strings.HasPrefix(rec.Webpage, "http")

	if c.p.FixMissing && rec.Webpage == "" && rec.HasIPO {
		return true
	}

	if !hasURL {
		return false
	}

	switch c.p.Mode {
	case ModeLiveness:
		return liveness.BrokenStatuses[c.p.Checker.CheckStatus(ctx, rec.Webpage)]
	default:
		return c.p.Classifier.IsNonBrandPage(rec.Webpage)
	}
}

package enricher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
	"github.com/heartmarshall/kotoba-enricher/pkg/ctxutil"
)

const (
	defaultWorkers   = 4
	defaultBatchSize = 500
)

// Sink persists derived records. Implemented by jsonfile.Writer and
// enrichment.Repo.
type Sink interface {
	SaveBatch(ctx context.Context, records []domain.Record) (int, error)
}

// Config controls a pipeline run.
type Config struct {
	Workers   int
	BatchSize int
	DryRun    bool
}

// SkippedWord is a target that produced no record, with the reason.
type SkippedWord struct {
	Word string
	Err  error
}

// Result holds the statistics of one run.
type Result struct {
	Total    int
	Derived  int
	Written  int
	Skipped  []SkippedWord
	Duration time.Duration
}

// SkippedBy counts skipped words whose reason matches target.
func (r Result) SkippedBy(target error) int {
	n := 0
	for _, s := range r.Skipped {
		if errors.Is(s.Err, target) {
			n++
		}
	}
	return n
}

// Pipeline runs the engine over a batch of targets.
type Pipeline struct {
	log    *slog.Logger
	engine *Engine
	sink   Sink
	cfg    Config
}

// NewPipeline creates a new Pipeline. sink may be nil for dry runs.
func NewPipeline(log *slog.Logger, engine *Engine, sink Sink, cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &Pipeline{log: log, engine: engine, sink: sink, cfg: cfg}
}

// Run derives a record for every target and writes them through the sink in
// input order. Words that cannot be enriched are skipped and reported in the
// result; only cancellation, unexpected derivation errors and sink failures
// abort the run.
func (p *Pipeline) Run(ctx context.Context, targets []Target) (Result, error) {
	start := time.Now()
	ctx, runID := ctxutil.EnsureRunID(ctx)
	log := p.log.With(slog.String("run_id", runID.String()))
	result := Result{Total: len(targets)}

	// Step 1: Example candidates for the whole batch, single-threaded.
	words := make([]string, len(targets))
	for i, t := range targets {
		words[i] = t.Word
	}
	p.engine.PrepareExamples(words)
	log.Info("example candidates indexed", slog.Int("words", len(words)))

	// Step 2: Concurrent derivation.
	records, skipped, err := p.derive(ctxutil.WithStage(ctx, "derive"), targets)
	if err != nil {
		return result, fmt.Errorf("derive: %w", err)
	}
	result.Derived = len(records)
	result.Skipped = skipped
	for _, s := range skipped {
		log.Debug("word skipped", slog.String("word", s.Word), slog.String("reason", s.Err.Error()))
	}

	// Step 3: Persist.
	if p.cfg.DryRun || p.sink == nil {
		log.Info("dry run, records not written", slog.Int("derived", result.Derived))
	} else {
		wctx := ctxutil.WithStage(ctx, "write")
		written, err := batchProcess(records, p.cfg.BatchSize, func(batch []domain.Record) (int, error) {
			return p.sink.SaveBatch(wctx, batch)
		})
		result.Written = written
		if err != nil {
			return result, fmt.Errorf("write records: %w", err)
		}
	}

	result.Duration = time.Since(start)
	log.Info("enrichment complete",
		slog.Int("total", result.Total),
		slog.Int("derived", result.Derived),
		slog.Int("written", result.Written),
		slog.Int("skipped", len(result.Skipped)),
		slog.Int("not_found", result.SkippedBy(domain.ErrNotFound)),
		slog.Int("no_senses", result.SkippedBy(domain.ErrNoUsableSenses)),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

func (p *Pipeline) derive(ctx context.Context, targets []Target) ([]domain.Record, []SkippedWord, error) {
	recs := make([]*domain.Record, len(targets))
	errs := make([]error, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for i, t := range targets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := p.engine.Enrich(t)
			if err != nil {
				if !isSkippable(err) {
					return fmt.Errorf("word %q: %w", t.Word, err)
				}
				errs[i] = err
				return nil
			}
			recs[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var (
		records []domain.Record
		skipped []SkippedWord
	)
	for i, t := range targets {
		switch {
		case errs[i] != nil:
			skipped = append(skipped, SkippedWord{Word: t.Word, Err: errs[i]})
		case recs[i] != nil:
			records = append(records, *recs[i])
		}
	}
	return records, skipped, nil
}

func isSkippable(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrNoUsableSenses) ||
		errors.Is(err, domain.ErrValidation)
}

// batchProcess splits items into chunks of batchSize and calls fn for each.
// Returns total count from fn and the first error encountered.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

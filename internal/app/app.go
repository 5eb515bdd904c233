package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/heartmarshall/kotoba-enricher/internal/adapter/jsonfile"
	"github.com/heartmarshall/kotoba-enricher/internal/adapter/postgres"
	"github.com/heartmarshall/kotoba-enricher/internal/adapter/postgres/enrichment"
	"github.com/heartmarshall/kotoba-enricher/internal/config"
	"github.com/heartmarshall/kotoba-enricher/internal/domain"
	"github.com/heartmarshall/kotoba-enricher/internal/enricher"
)

// Options are command-line overrides applied on top of the loaded config.
type Options struct {
	WordsPath string // plain word list replacing the JLPT list as targets
	Output    string // json or postgres
	DryRun    bool
}

// Apply merges the overrides into cfg and re-validates it.
func (o Options) Apply(cfg *config.Config) error {
	if o.Output != "" {
		cfg.Output.Kind = strings.ToLower(strings.TrimSpace(o.Output))
	}
	if o.DryRun {
		cfg.Enrich.DryRun = true
	}
	return cfg.Validate()
}

// Run loads every source, derives a record per target word and writes the
// records to the configured output.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (enricher.Result, error) {
	if err := opts.Apply(cfg); err != nil {
		return enricher.Result{}, fmt.Errorf("config: %w", err)
	}

	logger.Info("starting enrichment",
		buildAttrs(),
		slog.String("output", cfg.Output.Kind),
		slog.Bool("dry_run", cfg.Enrich.DryRun),
	)

	src, targets, err := loadSources(cfg.Sources, cfg.Enrich.Matcher, opts.WordsPath, logger)
	if err != nil {
		return enricher.Result{}, err
	}

	engine, err := enricher.NewEngine(src)
	if err != nil {
		return enricher.Result{}, err
	}

	var sink enricher.Sink
	var st *store
	if !cfg.Enrich.DryRun {
		st, err = openStore(ctx, cfg, logger)
		if err != nil {
			return enricher.Result{}, err
		}
		defer st.close()
		sink = st.sink
	}

	pipeline := enricher.NewPipeline(logger, engine, sink, enricher.Config{
		Workers:   cfg.Enrich.Workers,
		BatchSize: cfg.Enrich.BatchSize,
		DryRun:    cfg.Enrich.DryRun,
	})

	result, err := pipeline.Run(ctx, targets)
	if err != nil {
		return result, err
	}
	if st != nil && st.report != nil {
		st.report(ctx)
	}
	return result, nil
}

// Show prints the stored record of word from the configured output as
// indented JSON. It returns domain.ErrNotFound when the word was never
// written.
func Show(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options, word string, w io.Writer) error {
	if err := opts.Apply(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

	rec, err := st.read(ctx, word)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", word, err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// store bundles the configured output: where records are written, how one
// is read back, an optional post-run report and a cleanup func.
type store struct {
	sink   enricher.Sink
	read   func(ctx context.Context, word string) (*domain.Record, error)
	report func(ctx context.Context)
	close  func()
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store, error) {
	switch cfg.Output.Kind {
	case config.OutputPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		if cfg.Database.Migrate {
			if err := postgres.Migrate(ctx, pool, logger); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		repo := enrichment.New(pool, postgres.NewTxManager(pool))
		report := func(ctx context.Context) {
			counts, err := repo.CountByLevel(ctx)
			if err != nil {
				logger.Warn("count stored records failed", slog.String("error", err.Error()))
				return
			}
			for level, n := range counts {
				logger.Info("stored records", slog.String("level", level.String()), slog.Int("count", n))
			}
		}
		return &store{sink: repo, read: repo.GetByWord, report: report, close: pool.Close}, nil

	default:
		w, err := jsonfile.New(cfg.Output.Dir, cfg.Output.Overwrite, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("json records", slog.String("dir", cfg.Output.Dir))
		read := func(_ context.Context, word string) (*domain.Record, error) {
			return w.Load(word)
		}
		return &store{sink: w, read: read, close: func() {}}, nil
	}
}

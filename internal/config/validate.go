package config

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically. All problems
// are reported at once as a *domain.ValidationError.
func (c *Config) Validate() error {
	var errs []domain.FieldError
	add := func(field, format string, args ...any) {
		errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(c.Sources.JMdictPath) == "" {
		add("sources.jmdict_path", "is required")
	}
	if strings.TrimSpace(c.Sources.KanjidicPath) == "" {
		add("sources.kanjidic_path", "is required")
	}
	if strings.TrimSpace(c.Sources.WordListPath) == "" {
		add("sources.word_list_path", "is required")
	}

	if c.Enrich.Workers <= 0 {
		add("enrich.workers", "must be > 0 (got %d)", c.Enrich.Workers)
	}
	if c.Enrich.BatchSize <= 0 {
		add("enrich.batch_size", "must be > 0 (got %d)", c.Enrich.BatchSize)
	}
	c.Enrich.Matcher = strings.ToLower(strings.TrimSpace(c.Enrich.Matcher))
	switch c.Enrich.Matcher {
	case MatcherSubstring, MatcherLemma:
	default:
		add("enrich.matcher", "must be %q or %q (got %q)", MatcherSubstring, MatcherLemma, c.Enrich.Matcher)
	}

	c.Output.Kind = strings.ToLower(strings.TrimSpace(c.Output.Kind))
	switch c.Output.Kind {
	case OutputJSON:
		if strings.TrimSpace(c.Output.Dir) == "" {
			add("output.dir", "is required for json output")
		}
	case OutputPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			add("database.dsn", "is required for postgres output")
		}
		if c.Database.MinConns > c.Database.MaxConns {
			add("database.min_conns", "must be <= max_conns (%d > %d)", c.Database.MinConns, c.Database.MaxConns)
		}
	default:
		add("output.kind", "must be %q or %q (got %q)", OutputJSON, OutputPostgres, c.Output.Kind)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Package enrichment persists enriched word records in PostgreSQL.
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/kotoba-enricher/internal/adapter/postgres"
	"github.com/heartmarshall/kotoba-enricher/internal/domain"
	"github.com/heartmarshall/kotoba-enricher/pkg/ctxutil"
)

const table = "enrichment_records"

// maxRowsPerStatement keeps a multi-row insert below PostgreSQL's
// 65535 bind parameter limit.
const maxRowsPerStatement = 1000

var insertColumns = []string{"id", "run_id", "word", "reading", "level", "entry_id", "payload"}

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// TxRunner runs fn inside a transaction. Implemented by *postgres.TxManager.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repo provides enrichment record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
	tx TxRunner
}

// New creates a new enrichment record repository.
func New(db postgres.Querier, tx TxRunner) *Repo {
	return &Repo{db: db, tx: tx}
}

// SaveBatch upserts records keyed by word and returns the number of rows
// written. All statements of one batch share a transaction. The run ID is
// taken from ctx; a fresh one is generated when absent.
func (r *Repo) SaveBatch(ctx context.Context, records []domain.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	runID, ok := ctxutil.RunIDFromCtx(ctx)
	if !ok {
		runID = uuid.New()
	}

	records = dedupeByWord(records)

	written := 0
	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		for start := 0; start < len(records); start += maxRowsPerStatement {
			end := min(start+maxRowsPerStatement, len(records))
			n, err := r.insertChunk(ctx, runID, records[start:end])
			if err != nil {
				return err
			}
			written += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

func (r *Repo) insertChunk(ctx context.Context, runID uuid.UUID, records []domain.Record) (int, error) {
	query := builder().
		Insert(table).
		Columns(insertColumns...).
		Suffix(`ON CONFLICT (word) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			reading = EXCLUDED.reading,
			level = EXCLUDED.level,
			entry_id = EXCLUDED.entry_id,
			payload = EXCLUDED.payload,
			updated_at = now()`)

	for i := range records {
		rec := &records[i]
		payload, err := json.Marshal(rec)
		if err != nil {
			return 0, fmt.Errorf("enrichment.SaveBatch: marshal %s: %w", rec.Word, err)
		}
		query = query.Values(uuid.New(), runID, rec.Word, rec.Reading, int16(rec.Level), rec.EntryID, payload)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("enrichment.SaveBatch: build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		label := fmt.Sprintf("%s..%s", records[0].Word, records[len(records)-1].Word)
		return 0, postgres.MapError(err, "enrichment batch", label)
	}
	return int(tag.RowsAffected()), nil
}

// GetByWord returns the stored record for word.
func (r *Repo) GetByWord(ctx context.Context, word string) (*domain.Record, error) {
	sql, args, err := builder().
		Select("payload").
		From(table).
		Where(squirrel.Eq{"word": domain.NormalizeText(word)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("enrichment.GetByWord: build query: %w", err)
	}

	var payload []byte
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&payload); err != nil {
		return nil, postgres.MapError(err, "enrichment record", word)
	}

	var rec domain.Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("enrichment.GetByWord: decode payload: %w", err)
	}
	return &rec, nil
}

// CountByLevel returns how many stored records fall into each level.
func (r *Repo) CountByLevel(ctx context.Context) (map[domain.Level]int, error) {
	sql, args, err := builder().
		Select("level", "count(*)").
		From(table).
		GroupBy("level").
		OrderBy("level").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("enrichment.CountByLevel: build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "enrichment counts", "by level")
	}
	defer rows.Close()

	counts := make(map[domain.Level]int)
	for rows.Next() {
		var (
			level int16
			n     int64
		)
		if err := rows.Scan(&level, &n); err != nil {
			return nil, fmt.Errorf("enrichment.CountByLevel: scan: %w", err)
		}
		counts[domain.Level(level)] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("enrichment.CountByLevel: rows: %w", err)
	}
	return counts, nil
}

// dedupeByWord keeps the last record per word, preserving first-seen order.
// ON CONFLICT DO UPDATE rejects a statement that touches the same key twice.
func dedupeByWord(records []domain.Record) []domain.Record {
	pos := make(map[string]int, len(records))
	out := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if i, ok := pos[rec.Word]; ok {
			out[i] = rec
			continue
		}
		pos[rec.Word] = len(out)
		out = append(out, rec)
	}
	return out
}

package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/kotoba-enricher/internal/adapter/postgres"
	"github.com/heartmarshall/kotoba-enricher/internal/domain"
	"github.com/heartmarshall/kotoba-enricher/pkg/ctxutil"
)

var insertSQL = regexp.QuoteMeta("INSERT INTO enrichment_records (id,run_id,word,reading,level,entry_id,payload)")

func newRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return New(mock, postgres.NewTxManager(mock)), mock
}

func record(word, reading string, level domain.Level, id int64) domain.Record {
	return domain.Record{
		Word:     word,
		Reading:  reading,
		Level:    level,
		EntryID:  id,
		Senses:   []domain.Sense{{POS: []string{"n"}, Glosses: []string{"gloss of " + word}}},
		Related:  []domain.RelatedWord{},
		Idioms:   []domain.Idiom{},
		Examples: []domain.SentencePair{},
	}
}

func TestRepo_SaveBatch(t *testing.T) {
	t.Parallel()

	runID := uuid.New()
	ctx := ctxutil.WithRunID(context.Background(), runID)

	tests := []struct {
		name    string
		records []domain.Record
		setup   func(mock pgxmock.PgxPoolIface)
		want    int
		wantErr error
	}{
		{
			name:    "empty batch touches nothing",
			records: nil,
			setup:   func(mock pgxmock.PgxPoolIface) {},
			want:    0,
		},
		{
			name: "two records in one statement",
			records: []domain.Record{
				record("猫", "ねこ", domain.LevelN5, 1),
				record("犬", "いぬ", domain.LevelN5, 2),
			},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec(insertSQL).
					WithArgs(
						pgxmock.AnyArg(), runID, "猫", "ねこ", int16(5), int64(1), pgxmock.AnyArg(),
						pgxmock.AnyArg(), runID, "犬", "いぬ", int16(5), int64(2), pgxmock.AnyArg(),
					).
					WillReturnResult(pgxmock.NewResult("INSERT", 2))
				mock.ExpectCommit()
			},
			want: 2,
		},
		{
			name: "duplicate words collapse to the last record",
			records: []domain.Record{
				record("猫", "ねこ", domain.LevelN5, 1),
				record("猫", "ねこ", domain.LevelN4, 9),
			},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec(insertSQL).
					WithArgs(pgxmock.AnyArg(), runID, "猫", "ねこ", int16(4), int64(9), pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				mock.ExpectCommit()
			},
			want: 1,
		},
		{
			name:    "check violation rolls back",
			records: []domain.Record{record("猫", "ねこ", domain.LevelN5, 1)},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec(insertSQL).
					WithArgs(pgxmock.AnyArg(), runID, "猫", "ねこ", int16(5), int64(1), pgxmock.AnyArg()).
					WillReturnError(&pgconn.PgError{Code: "23514"})
				mock.ExpectRollback()
			},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, mock := newRepo(t)
			tt.setup(mock)

			got, err := repo.SaveBatch(ctx, tt.records)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepo_SaveBatch_ChunksLargeBatches(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)

	total := maxRowsPerStatement + 3
	records := make([]domain.Record, total)
	for i := range records {
		records[i] = record(fmt.Sprintf("語%d", i), "ご", domain.LevelN3, int64(i))
	}

	mock.ExpectBegin()
	mock.ExpectExec(insertSQL).WillReturnResult(pgxmock.NewResult("INSERT", int64(maxRowsPerStatement)))
	mock.ExpectExec(insertSQL).WillReturnResult(pgxmock.NewResult("INSERT", 3))
	mock.ExpectCommit()

	got, err := repo.SaveBatch(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, total, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByWord(t *testing.T) {
	t.Parallel()

	want := record("猫", "ねこ", domain.LevelN5, 1)
	payload, err := json.Marshal(want)
	require.NoError(t, err)

	query := regexp.QuoteMeta("SELECT payload FROM enrichment_records WHERE word = $1")

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		repo, mock := newRepo(t)
		mock.ExpectQuery(query).
			WithArgs("猫").
			WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow(payload))

		got, err := repo.GetByWord(context.Background(), " 猫 ")
		require.NoError(t, err)
		assert.Equal(t, want, *got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		repo, mock := newRepo(t)
		mock.ExpectQuery(query).
			WithArgs("鼠").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByWord(context.Background(), "鼠")
		assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepo_CountByLevel(t *testing.T) {
	t.Parallel()

	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT level, count(*) FROM enrichment_records GROUP BY level")).
		WillReturnRows(pgxmock.NewRows([]string{"level", "count"}).
			AddRow(int16(4), int64(2)).
			AddRow(int16(5), int64(7)))

	got, err := repo.CountByLevel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[domain.Level]int{domain.LevelN4: 2, domain.LevelN5: 7}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Package jsonfile writes enriched records as one JSON document per word.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/kotoba-enricher/internal/domain"
)

// Writer stores each record as <dir>/<word>.json. Existing files are left
// alone unless overwrite is set, so an interrupted run can resume.
type Writer struct {
	dir       string
	overwrite bool
	log       *slog.Logger
}

// New creates the output directory if needed and returns a Writer.
func New(dir string, overwrite bool, log *slog.Logger) (*Writer, error) {
	if dir == "" {
		return nil, domain.NewValidationError("output.dir", "required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: create %s: %w", dir, err)
	}
	return &Writer{dir: dir, overwrite: overwrite, log: log}, nil
}

// Path returns the file a record for word is written to.
func (w *Writer) Path(word string) string {
	return filepath.Join(w.dir, FileName(word))
}

// SaveBatch writes every record and returns how many files were written.
// Skipped existing files are not counted.
func (w *Writer) SaveBatch(ctx context.Context, records []domain.Record) (int, error) {
	written := 0
	for i := range records {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		rec := &records[i]
		path := w.Path(rec.Word)

		if !w.overwrite {
			_, err := os.Stat(path)
			if err == nil {
				w.log.Debug("output exists, skipping", slog.String("word", rec.Word))
				continue
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return written, fmt.Errorf("jsonfile: stat %s: %w", path, err)
			}
		}

		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return written, fmt.Errorf("jsonfile: marshal %s: %w", rec.Word, err)
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return written, fmt.Errorf("jsonfile: write %s: %w", path, err)
		}
		written++
	}
	return written, nil
}

// Load reads a previously written record back.
func (w *Writer) Load(word string) (*domain.Record, error) {
	data, err := os.ReadFile(w.Path(word))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("jsonfile: %s: %w", word, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("jsonfile: read %s: %w", word, err)
	}
	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("jsonfile: decode %s: %w", word, err)
	}
	return &rec, nil
}

var unsafeChars = strings.NewReplacer("/", "_", `\`, "_", ":", "_", "*", "_", "?", "_", `"`, "_", "<", "_", ">", "_", "|", "_")

// FileName maps a word to a file name that is safe on common filesystems.
func FileName(word string) string {
	name := unsafeChars.Replace(strings.TrimSpace(word))
	if name == "" || name == "." || name == ".." {
		name = "_"
	}
	return name + ".json"
}

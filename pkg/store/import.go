package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/PrettyR/ClientSphere/pkg/data"
)

// ImportResult summarizes one import.
type ImportResult struct {
	Batch   string `json:"batch"`
	Rows    int    `json:"rows"`
	Written int    `json:"written"`
	Skipped int    `json:"skipped"`
	Total   int    `json:"total"`
}

// ImportTable normalizes t and upserts its rows. Rows without a client id
// are skipped.
func (s *Store) ImportTable(ctx context.Context, t *data.Table) (ImportResult, error) {
	res := ImportResult{Batch: uuid.NewString(), Rows: t.Len()}
	recs, err := data.Records(data.Normalize(t))
	if err != nil {
		return res, err
	}
	written, err := s.Upsert(ctx, recs, res.Batch)
	if err != nil {
		return res, err
	}
	res.Written = written
	res.Skipped = res.Rows - written
	if res.Total, err = s.Count(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// ImportCSV loads a CSV file and imports it.
func (s *Store) ImportCSV(ctx context.Context, path string) (ImportResult, error) {
	t, err := data.LoadCSV(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("import %s: %w", path, err)
	}
	return s.ImportTable(ctx, t)
}

// Table returns every stored client as a normalized table.
func (s *Store) Table(ctx context.Context) (*data.Table, error) {
	recs, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return data.FromRecords(recs), nil
}

// Package source picks the dataset an analytics request runs on: the
// client store when it has rows, otherwise the processed CSV file.
package source

import (
	"context"
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/PrettyR/ClientSphere/pkg/data"
)

// DefaultFallbackPath is the processed dataset read when the store is empty
// or unavailable.
const DefaultFallbackPath = "data/processed_clients.csv"

// Origin names where a resolved table came from.
type Origin string

const (
	FromStore Origin = "store"
	FromFile  Origin = "file"
	FromNone  Origin = "none"
)

// Reader is the part of the store the resolver needs.
type Reader interface {
	All(ctx context.Context) ([]data.ClientRecord, error)
}

// Resolution is a normalized table and where it came from. StoreErr is set
// when the store failed, which tells an unreachable store apart from an
// empty one.
type Resolution struct {
	Table    *data.Table
	Origin   Origin
	StoreErr error
}

// Resolver reads the store first and falls back to a CSV file. Every call
// reads afresh.
type Resolver struct {
	Store        Reader
	FallbackPath string
	Logger       *zap.Logger
}

// New returns a resolver. A nil store skips straight to the file.
func New(store Reader, fallbackPath string, logger *zap.Logger) *Resolver {
	if fallbackPath == "" {
		fallbackPath = DefaultFallbackPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{Store: store, FallbackPath: fallbackPath, Logger: logger}
}

// Resolve returns the normalized dataset. When neither source has rows the
// table is empty and Origin is FromNone; that is not an error.
func (r *Resolver) Resolve(ctx context.Context) (Resolution, error) {
	if err := ctx.Err(); err != nil {
		return Resolution{}, err
	}
	log := r.logger()

	var res Resolution
	if r.Store != nil {
		recs, err := r.Store.All(ctx)
		switch {
		case err != nil:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return Resolution{}, err
			}
			res.StoreErr = err
			log.Warn("client store unavailable, using fallback file",
				zap.String("path", r.FallbackPath), zap.Error(err))
		case len(recs) > 0:
			log.Debug("resolved clients from store", zap.Int("rows", len(recs)))
			return Resolution{Table: data.FromRecords(recs), Origin: FromStore}, nil
		default:
			log.Debug("client store is empty, using fallback file", zap.String("path", r.FallbackPath))
		}
	}

	raw, err := data.LoadCSV(r.FallbackPath)
	switch {
	case err == nil && !raw.Empty():
		log.Debug("resolved clients from file", zap.String("path", r.FallbackPath), zap.Int("rows", raw.Len()))
		res.Table, res.Origin = data.Normalize(raw), FromFile
		return res, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		log.Warn("fallback file unreadable", zap.String("path", r.FallbackPath), zap.Error(err))
	}
	res.Table, res.Origin = data.NewTable(0), FromNone
	return res, nil
}

func (r *Resolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

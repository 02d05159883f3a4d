package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PrettyR/ClientSphere/pkg/activity"
	"github.com/PrettyR/ClientSphere/pkg/data"
	"github.com/PrettyR/ClientSphere/pkg/model"
	"github.com/PrettyR/ClientSphere/pkg/source"
	"github.com/PrettyR/ClientSphere/pkg/store"
)

// openStore opens the configured client store. The caller closes it.
func openStore() (*store.Store, error) {
	s, err := store.Open(cfg.Store.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

// resolveTable returns the dataset analytics commands run on: the store
// when it has rows, otherwise the export CSV.
func resolveTable(ctx context.Context) (*data.Table, error) {
	var reader source.Reader
	if s, err := openStore(); err != nil {
		logger.Warn("client store unavailable", zap.Error(err))
	} else {
		defer s.Close()
		reader = s
	}
	res, err := source.New(reader, cfg.Source.ExportCSV, logger).Resolve(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("dataset resolved",
		zap.String("origin", string(res.Origin)),
		zap.Int("rows", res.Table.Len()),
		zap.Bool("store_failed", res.StoreErr != nil))
	return res.Table, nil
}

// recorder returns an activity recorder writing to s on behalf of the
// current role.
func recorder(s *store.Store) *activity.Recorder {
	user := role
	if user == "" {
		user = "anonymous"
	}
	return activity.NewRecorder(s, user, logger)
}

func requireAdmin() error {
	if role != "admin" {
		return errForbidden
	}
	return nil
}

func kmeansOptions() []model.KMeansOption {
	return []model.KMeansOption{
		model.WithSeed(cfg.Clustering.Seed),
		model.WithMaxIter(cfg.Clustering.MaxIter),
		model.WithNInit(cfg.Clustering.NInit),
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

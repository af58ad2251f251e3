package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cardiopulse/internal/config"
	"cardiopulse/internal/dataset"
	"cardiopulse/pkg/contracts/domain"
)

// DatasetService owns the snapshot for the lifetime of the process. The
// snapshot is loaded once during startup and shared by reference; every
// read is copy-free against immutable data.
type DatasetService struct {
	cfg    *config.Config
	logger *slog.Logger

	snapshot *dataset.Snapshot
}

// NewDatasetService creates the service without loading anything yet.
func NewDatasetService(cfg *config.Config, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{cfg: cfg, logger: logger}
}

// Load reads the configured dataset file and builds the snapshot. Called
// once from application startup; the process does not serve without it.
func (s *DatasetService) Load(ctx context.Context) error {
	path := s.cfg.DatasetPath()
	start := time.Now()

	loader := dataset.NewLoader(s.logger, s.cfg.Dataset.MaxRows)
	snap, err := loader.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", path, err)
	}

	s.snapshot = snap
	s.logger.Info("dataset snapshot loaded",
		slog.String("path", path),
		slog.Int("source_rows", snap.SourceRows),
		slog.Int("records", len(snap.Records)),
		slog.Int("anomalies", len(snap.Anomalies)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// Snapshot returns the loaded base table.
func (s *DatasetService) Snapshot() (*dataset.Snapshot, error) {
	if s.snapshot == nil {
		return nil, ErrSnapshotNotLoaded
	}
	return s.snapshot, nil
}

// FilterOptions returns the distinct values populating the dashboard's
// filter controls.
func (s *DatasetService) FilterOptions() (domain.FilterOptions, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return domain.FilterOptions{}, err
	}
	return snap.Options(), nil
}

// Anomalies returns the data-quality findings recorded at load time.
func (s *DatasetService) Anomalies() ([]dataset.Anomaly, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Anomalies, nil
}

// RecordCount reports the size of the base table, zero before load.
func (s *DatasetService) RecordCount() int {
	if s.snapshot == nil {
		return 0
	}
	return len(s.snapshot.Records)
}

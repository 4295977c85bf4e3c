// Package services orchestrates the pipeline for the transport layer: blob
// registration, cached loading, aggregation and export.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"reclamos/internal/analytics"
	"reclamos/internal/config"
	"reclamos/internal/dataprocessing"
	apperrors "reclamos/internal/errors"
	"reclamos/internal/exporter"
	"reclamos/internal/fetch"
	"reclamos/internal/infrastructure"
	"reclamos/internal/store"
	"reclamos/internal/validation"
	"reclamos/pkg/contracts/domain"
)

// Source identifiers accepted by LoadSource.
const (
	SourceBundled = "bundled"
	SourceRemote  = "remote"
)

// ExportFilename is the download name offered for the filtered CSV.
const ExportFilename = "reclamos_filtrado.csv"

// DatasetInfo describes a registered dataset to the caller.
type DatasetInfo struct {
	ID       string                  `json:"id"`
	Rows     int                     `json:"rows"`
	Columns  []string                `json:"columns"`
	Warnings []domain.QualityWarning `json:"warnings,omitempty"`
}

// DashboardService owns the dataset caches and runs the pure pipeline
// (bytes, sheet, filters) -> (view, summaries) on behalf of the handlers.
type DashboardService struct {
	cfg        *config.Config
	loader     *dataprocessing.Loader
	aggregator *analytics.Aggregator
	fetcher    *fetch.SourceFetcher
	validator  *validation.FileValidator
	cache      *store.DatasetCache
	blobs      *store.BlobStore
	metrics    *infrastructure.Metrics
	logger     *slog.Logger
}

// NewDashboardService wires the pipeline components together.
func NewDashboardService(cfg *config.Config, metrics *infrastructure.Metrics, logger *slog.Logger) (*DashboardService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cache, err := store.NewDatasetCache(cfg.Cache.Capacity, logger)
	if err != nil {
		return nil, fmt.Errorf("create dataset cache: %w", err)
	}
	blobs, err := store.NewBlobStore(cfg.Cache.Capacity)
	if err != nil {
		return nil, fmt.Errorf("create blob store: %w", err)
	}

	return &DashboardService{
		cfg:        cfg,
		loader:     dataprocessing.NewLoader(logger),
		aggregator: analytics.NewAggregator(logger),
		fetcher:    fetch.NewSourceFetcher(cfg.Source.FetchTimeout, logger),
		validator:  validation.NewFileValidator(logger),
		cache:      cache,
		blobs:      blobs,
		metrics:    metrics,
		logger:     logger.With(slog.String("component", "dashboard_service")),
	}, nil
}

// RegisterUpload validates and registers uploaded spreadsheet bytes, parsing
// them once so the caller gets row counts and quality warnings back.
func (s *DashboardService) RegisterUpload(ctx context.Context, filename string, data []byte, sheet string) (*DatasetInfo, error) {
	if err := s.validator.ValidateUpload(filename, int64(len(data)), s.cfg.Upload.MaxBytes); err != nil {
		return nil, err
	}
	return s.register(ctx, data, sheet)
}

// LoadSource registers the bundled default file or the configured remote URL
// as a dataset. A fetch failure is fatal for this attempt only; the caller
// may fall back to another source.
func (s *DashboardService) LoadSource(ctx context.Context, source, sheet string) (*DatasetInfo, error) {
	switch source {
	case SourceBundled:
		data, err := os.ReadFile(s.cfg.Source.BundledFile)
		if err != nil {
			return nil, apperrors.NewNotFoundError("bundled dataset")
		}
		return s.register(ctx, data, sheet)
	case SourceRemote:
		if s.cfg.Source.RemoteURL == "" {
			return nil, apperrors.NewAppValidationError("no remote source configured")
		}
		data, err := s.fetcher.Fetch(ctx, s.cfg.Source.RemoteURL)
		if err != nil {
			if s.metrics != nil {
				s.metrics.FetchFailures.Inc()
			}
			return nil, err
		}
		return s.register(ctx, data, sheet)
	default:
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("unknown source %q", source))
	}
}

func (s *DashboardService) register(ctx context.Context, data []byte, sheet string) (*DatasetInfo, error) {
	id := s.blobs.Put(data)

	set, err := s.loadCached(ctx, id, data, sheet)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "dataset registered",
		slog.String("dataset_id", id),
		slog.Int("rows", len(set.Records)))

	return &DatasetInfo{
		ID:       id,
		Rows:     len(set.Records),
		Columns:  set.Columns,
		Warnings: set.Warnings,
	}, nil
}

// Dashboard runs the aggregation pipeline for a registered dataset.
func (s *DashboardService) Dashboard(ctx context.Context, datasetID, sheet string, f domain.Filter) (*domain.Dashboard, error) {
	set, err := s.recordSet(ctx, datasetID, sheet)
	if err != nil {
		return nil, err
	}
	return s.aggregator.Aggregate(ctx, set, f), nil
}

// ExportCSV serializes the filtered view as a BOM-prefixed CSV download.
func (s *DashboardService) ExportCSV(ctx context.Context, datasetID, sheet string, f domain.Filter) ([]byte, string, error) {
	d, err := s.Dashboard(ctx, datasetID, sheet, f)
	if err != nil {
		return nil, "", err
	}
	data, err := exporter.ViewCSV(d.Rows)
	if err != nil {
		return nil, "", apperrors.NewStorageError("failed to serialize export", err)
	}
	return data, ExportFilename, nil
}

// recordSet resolves a dataset id to its canonical record set, re-parsing
// the stored blob on a cache miss.
func (s *DashboardService) recordSet(ctx context.Context, datasetID, sheet string) (*domain.RecordSet, error) {
	if set, ok := s.cache.Get(datasetID, sheet); ok {
		if s.metrics != nil {
			s.metrics.CacheHits.Inc()
		}
		return set, nil
	}
	if s.metrics != nil {
		s.metrics.CacheMisses.Inc()
	}

	data, ok := s.blobs.Get(datasetID)
	if !ok {
		return nil, apperrors.NewNotFoundError("dataset")
	}
	return s.loadCached(ctx, datasetID, data, sheet)
}

func (s *DashboardService) loadCached(ctx context.Context, datasetID string, data []byte, sheet string) (*domain.RecordSet, error) {
	if set, ok := s.cache.Get(datasetID, sheet); ok {
		return set, nil
	}
	set, err := s.loader.Load(ctx, data, sheet)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ParseFailures.Inc()
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.DatasetsLoaded.Inc()
	}
	s.cache.Put(datasetID, sheet, set)
	return set, nil
}

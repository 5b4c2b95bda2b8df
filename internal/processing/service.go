package processing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RMahshie/sigdash/internal/cache"
	"github.com/RMahshie/sigdash/internal/repository"
	"github.com/RMahshie/sigdash/internal/signals"
	"github.com/RMahshie/sigdash/internal/storage"
	"github.com/RMahshie/sigdash/internal/table"
	"github.com/RMahshie/sigdash/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DashboardService runs signal discovery on uploaded datasets and serves
// dashboard analyses from them
type DashboardService interface {
	ProcessDataset(ctx context.Context, datasetID uuid.UUID) error
	Catalog(ctx context.Context, datasetID uuid.UUID) (*models.SignalCatalog, error)
	Analyze(ctx context.Context, datasetID uuid.UUID, params models.AnalysisParams) (*models.DashboardResult, error)
}

type dashboardService struct {
	s3         storage.S3Service
	repository repository.DatasetRepository
	settings   Settings
	tables     *cache.Cache[*table.Table]
	results    *cache.Cache[*models.DashboardResult]
}

// NewDashboardService creates a service whose table and result caches each
// hold at most cacheSize entries
func NewDashboardService(s3Service storage.S3Service, repo repository.DatasetRepository, settings Settings, cacheSize int) (DashboardService, error) {
	tables, err := cache.New[*table.Table](cacheSize)
	if err != nil {
		return nil, err
	}
	results, err := cache.New[*models.DashboardResult](cacheSize)
	if err != nil {
		return nil, err
	}

	return &dashboardService{
		s3:         s3Service,
		repository: repo,
		settings:   settings,
		tables:     tables,
		results:    results,
	}, nil
}

func (s *dashboardService) ProcessDataset(ctx context.Context, datasetID uuid.UUID) error {
	// Step 1: Update to processing status
	if err := s.repository.UpdateStatus(ctx, datasetID, models.StatusProcessing, 10); err != nil {
		return err
	}

	// Step 2: Get dataset details
	dataset, err := s.repository.GetByID(ctx, datasetID)
	if err != nil {
		return err
	}
	if dataset.S3Key == nil {
		return s.fail(ctx, datasetID, "Dataset has no uploaded file", errors.New("missing s3 key"))
	}

	// Step 3: Download from S3
	if err := s.repository.UpdateStatus(ctx, datasetID, models.StatusProcessing, 30); err != nil {
		return err
	}
	data, err := s.s3.DownloadFile(ctx, *dataset.S3Key)
	if err != nil {
		return s.fail(ctx, datasetID, "Failed to download dataset", err)
	}

	// Step 4: Parse the table
	if err := s.repository.UpdateStatus(ctx, datasetID, models.StatusProcessing, 60); err != nil {
		return err
	}
	tbl, err := table.Load(*dataset.S3Key, bytes.NewReader(data), "")
	if err != nil {
		return s.fail(ctx, datasetID, "Failed to read dataset file", err)
	}
	fingerprint := cache.Fingerprint(data)
	s.tables.Add(fingerprint, tbl)

	// Step 5: Discover signals
	if err := s.repository.UpdateStatus(ctx, datasetID, models.StatusProcessing, 80); err != nil {
		return err
	}
	discovered := signals.Discover(tbl.Columns())
	if len(discovered.Signals) == 0 {
		return s.fail(ctx, datasetID,
			"No signals found. Expected columns like 'Time - <signal name>' and '<anything> - <signal name>'",
			errors.New("no signals discovered"))
	}

	log.Info().
		Str("datasetID", datasetID.String()).
		Str("fingerprint", fingerprint).
		Int("rows", tbl.NumRows()).
		Strs("signals", discovered.Names()).
		Int("warnings", len(discovered.Warnings)).
		Msg("Signals discovered")

	// Step 6: Store catalog
	if err := s.repository.UpdateStatus(ctx, datasetID, models.StatusProcessing, 90); err != nil {
		return err
	}
	catalog := &models.SignalCatalog{
		DatasetID:   datasetID.String(),
		Fingerprint: fingerprint,
		Signals:     discovered.Signals,
		Warnings:    discovered.Warnings,
		CreatedAt:   time.Now(),
	}
	if err := s.repository.StoreCatalog(ctx, catalog); err != nil {
		return err
	}

	// Step 7: Mark complete
	return s.repository.UpdateStatus(ctx, datasetID, models.StatusCompleted, 100)
}

func (s *dashboardService) Catalog(ctx context.Context, datasetID uuid.UUID) (*models.SignalCatalog, error) {
	dataset, err := s.repository.GetByID(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	if dataset.Status != models.StatusCompleted {
		return nil, fmt.Errorf("%w: status is %s", ErrNotReady, dataset.Status)
	}

	return s.repository.GetCatalog(ctx, datasetID)
}

func (s *dashboardService) Analyze(ctx context.Context, datasetID uuid.UUID, params models.AnalysisParams) (*models.DashboardResult, error) {
	opts, err := s.settings.Resolve(params)
	if err != nil {
		return nil, err
	}

	dataset, err := s.repository.GetByID(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	if dataset.Status != models.StatusCompleted {
		return nil, fmt.Errorf("%w: status is %s", ErrNotReady, dataset.Status)
	}

	catalog, err := s.repository.GetCatalog(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	key := resultKey(catalog.Fingerprint, opts)
	if result, ok := s.results.Get(key); ok {
		log.Debug().Str("datasetID", datasetID.String()).Msg("Analysis served from cache")
		return result, nil
	}

	tbl, err := s.loadTable(ctx, dataset, catalog.Fingerprint)
	if err != nil {
		return nil, err
	}

	result, err := Analyze(tbl, signals.Catalog{Signals: catalog.Signals, Warnings: catalog.Warnings}, opts)
	if err != nil {
		return nil, err
	}
	s.results.Add(key, result)

	return result, nil
}

// loadTable returns the parsed table for a fingerprint, downloading and
// parsing the file again after a cache eviction
func (s *dashboardService) loadTable(ctx context.Context, dataset *models.Dataset, fingerprint string) (*table.Table, error) {
	if tbl, ok := s.tables.Get(fingerprint); ok {
		return tbl, nil
	}
	if dataset.S3Key == nil {
		return nil, fmt.Errorf("dataset %s has no uploaded file", dataset.ID)
	}

	data, err := s.s3.DownloadFile(ctx, *dataset.S3Key)
	if err != nil {
		return nil, err
	}
	if got := cache.Fingerprint(data); got != fingerprint {
		log.Warn().Str("datasetID", dataset.ID).Str("expected", fingerprint).Str("actual", got).
			Msg("Dataset content changed since processing")
	}

	tbl, err := table.Load(*dataset.S3Key, bytes.NewReader(data), "")
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	s.tables.Add(fingerprint, tbl)

	return tbl, nil
}

// fail records a user-facing error on the dataset and returns the cause
func (s *dashboardService) fail(ctx context.Context, datasetID uuid.UUID, msg string, cause error) error {
	if err := s.repository.UpdateError(ctx, datasetID, msg); err != nil {
		log.Error().Err(err).Str("datasetID", datasetID.String()).Msg("Failed to record dataset error")
	}
	return fmt.Errorf("%s: %w", msg, cause)
}

func resultKey(fingerprint string, opts AnalysisOptions) string {
	return cache.Key(fingerprint,
		strings.Join(opts.Rows, "\x1f"),
		opts.Window,
		opts.Mode,
		opts.Bins,
		opts.Include3D,
		opts.View.UseSmoothed,
		opts.View.MaxPoints,
		opts.View.ColorBy,
	)
}

package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RMahshie/sigdash/internal/processing"
	"github.com/RMahshie/sigdash/internal/repository"
	"github.com/RMahshie/sigdash/internal/signals"
	"github.com/RMahshie/sigdash/internal/storage"
	"github.com/RMahshie/sigdash/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const uploadURLExpiry = 15 * time.Minute

// DatasetHandler handles dataset-related HTTP requests
type DatasetHandler struct {
	repo           repository.DatasetRepository
	s3Service      storage.S3Service
	dashboardSvc   processing.DashboardService
	maxUploadBytes int64
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(repo repository.DatasetRepository, s3Service storage.S3Service, dashboardSvc processing.DashboardService, maxUploadBytes int64) *DatasetHandler {
	return &DatasetHandler{
		repo:           repo,
		s3Service:      s3Service,
		dashboardSvc:   dashboardSvc,
		maxUploadBytes: maxUploadBytes,
	}
}

// CreateDataset registers a new dataset and returns an upload URL
func (h *DatasetHandler) CreateDataset(ctx context.Context, req *models.CreateDatasetRequest) (*models.CreateDatasetResponse, error) {
	log.Info().Int64("fileSize", req.Body.FileSize).Str("fileName", req.Body.FileName).Msg("Creating new dataset")

	if req.Body.FileSize > h.maxUploadBytes {
		return nil, huma.Error400BadRequest(fmt.Sprintf("File too large. The limit is %d MB.", h.maxUploadBytes>>20), nil)
	}

	datasetID := uuid.New()
	key := storage.DatasetKey(datasetID.String(), req.Body.MimeType)

	uploadURL, err := h.s3Service.GenerateUploadURL(ctx, key, req.Body.MimeType)
	if err != nil {
		if strings.Contains(err.Error(), "invalid content type") {
			return nil, huma.Error400BadRequest("File format not supported. Upload an .xlsx or .csv export.", err)
		}
		return nil, huma.Error500InternalServerError("Failed to prepare upload. Please try again.", err)
	}

	now := time.Now()
	dataset := &models.Dataset{
		ID:        datasetID.String(),
		SessionID: req.Body.SessionID,
		FileName:  req.Body.FileName,
		Status:    models.StatusPending,
		S3Key:     &key,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.repo.Create(ctx, dataset); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create dataset", err)
	}

	log.Info().Str("datasetID", dataset.ID).Str("s3Key", key).Msg("Dataset created, returning upload URL")
	return &models.CreateDatasetResponse{
		Body: models.CreateDatasetResponseBody{
			ID:        dataset.ID,
			UploadURL: uploadURL,
			ExpiresIn: int(uploadURLExpiry.Seconds()),
		},
	}, nil
}

// GetDatasetStatus returns the processing status of a dataset
func (h *DatasetHandler) GetDatasetStatus(ctx context.Context, req *models.DatasetIDRequest) (*models.GetDatasetStatusResponse, error) {
	dataset, err := h.lookup(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	message := statusMessage(dataset.Status, dataset.Progress)
	if dataset.Status == models.StatusFailed && dataset.ErrorMsg != nil {
		message = *dataset.ErrorMsg
	}

	return &models.GetDatasetStatusResponse{
		Body: models.GetDatasetStatusResponseBody{
			ID:       dataset.ID,
			Status:   dataset.Status,
			Progress: dataset.Progress,
			Message:  message,
		},
	}, nil
}

// StartProcessing discovers the signals of an uploaded file in the background
func (h *DatasetHandler) StartProcessing(ctx context.Context, req *models.DatasetIDRequest) (*models.StartProcessingResponse, error) {
	dataset, err := h.lookup(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if dataset.Status == models.StatusProcessing {
		return nil, huma.Error409Conflict("Dataset is already being processed", nil)
	}

	datasetID := uuid.MustParse(dataset.ID)
	go func() {
		bg := context.Background()
		if err := h.dashboardSvc.ProcessDataset(bg, datasetID); err != nil {
			log.Error().Err(err).Str("datasetID", dataset.ID).Msg("Dataset processing failed")

			// repository failures inside the service leave the status untouched
			current, gerr := h.repo.GetByID(bg, datasetID)
			if gerr == nil && current.Status != models.StatusFailed {
				if uerr := h.repo.UpdateError(bg, datasetID, fmt.Sprintf("Processing failed: %v", err)); uerr != nil {
					log.Error().Err(uerr).Str("datasetID", dataset.ID).Msg("Failed to record dataset error")
				}
			}
		}
	}()

	resp := &models.StartProcessingResponse{}
	resp.Body.Message = "Processing started successfully"
	return resp, nil
}

// GetSignals returns the signals discovered in a processed dataset
func (h *DatasetHandler) GetSignals(ctx context.Context, req *models.DatasetIDRequest) (*models.GetSignalsResponse, error) {
	datasetID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid dataset ID", err)
	}

	catalog, err := h.dashboardSvc.Catalog(ctx, datasetID)
	if err != nil {
		return nil, dashboardError(err)
	}

	return &models.GetSignalsResponse{
		Body: models.GetSignalsResponseBody{
			ID:       req.ID,
			Names:    catalog.Names(),
			Signals:  catalog.Signals,
			Warnings: catalog.Warnings,
		},
	}, nil
}

// AnalyzeDataset computes the dashboard panels for three signals
func (h *DatasetHandler) AnalyzeDataset(ctx context.Context, req *models.AnalyzeDatasetRequest) (*models.AnalyzeDatasetResponse, error) {
	datasetID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid dataset ID", err)
	}

	start := time.Now()
	result, err := h.dashboardSvc.Analyze(ctx, datasetID, req.Body)
	if err != nil {
		return nil, dashboardError(err)
	}
	log.Info().
		Str("datasetID", req.ID).
		Strs("rows", req.Body.Rows).
		Bool("include3D", req.Body.Include3D).
		Dur("elapsed", time.Since(start)).
		Msg("Dashboard analysis served")

	return &models.AnalyzeDatasetResponse{Body: *result}, nil
}

// GetDownloadURL returns a pre-signed link to the uploaded file
func (h *DatasetHandler) GetDownloadURL(ctx context.Context, req *models.DatasetIDRequest) (*models.GetDownloadURLResponse, error) {
	dataset, err := h.lookup(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if dataset.S3Key == nil {
		return nil, huma.Error404NotFound("Dataset has no uploaded file", nil)
	}

	url, err := h.s3Service.GenerateDownloadURL(ctx, *dataset.S3Key)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate download URL", err)
	}

	resp := &models.GetDownloadURLResponse{}
	resp.Body.ID = dataset.ID
	resp.Body.FileName = dataset.FileName
	resp.Body.DownloadURL = url
	return resp, nil
}

// ListSessionDatasets returns the datasets uploaded in a client session
func (h *DatasetHandler) ListSessionDatasets(ctx context.Context, req *models.SessionDatasetsRequest) (*models.SessionDatasetsResponse, error) {
	datasets, err := h.repo.GetBySessionID(ctx, req.SessionID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list datasets", err)
	}

	resp := &models.SessionDatasetsResponse{}
	resp.Body.Datasets = datasets
	if resp.Body.Datasets == nil {
		resp.Body.Datasets = []*models.Dataset{}
	}
	return resp, nil
}

func (h *DatasetHandler) lookup(ctx context.Context, id string) (*models.Dataset, error) {
	datasetID, err := uuid.Parse(id)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid dataset ID", err)
	}

	dataset, err := h.repo.GetByID(ctx, datasetID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, huma.Error404NotFound("Dataset not found", err)
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load dataset", err)
	}
	return dataset, nil
}

// dashboardError maps service errors onto HTTP statuses
func dashboardError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return huma.Error404NotFound("Dataset not found", err)
	case errors.Is(err, processing.ErrNotReady):
		return huma.Error409Conflict("Dataset has not finished processing", err)
	case errors.Is(err, processing.ErrInvalidParameter):
		return huma.Error400BadRequest(err.Error(), err)
	case errors.Is(err, processing.ErrInsufficientData), errors.Is(err, signals.ErrExtraction):
		return huma.Error422UnprocessableEntity(err.Error(), err)
	default:
		return huma.Error500InternalServerError("Failed to analyze dataset", err)
	}
}

func statusMessage(status string, progress int) string {
	switch status {
	case models.StatusPending:
		return "Waiting for upload..."
	case models.StatusProcessing:
		switch {
		case progress < 30:
			return "Starting..."
		case progress < 60:
			return "Downloading file..."
		case progress < 80:
			return "Reading table..."
		default:
			return "Discovering signals..."
		}
	case models.StatusCompleted:
		return "Signals ready"
	case models.StatusFailed:
		return "Processing failed. Please try again."
	default:
		return "Unknown status"
	}
}

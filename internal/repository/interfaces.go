package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/sigdash/pkg/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// DatasetRepository defines the interface for dataset data operations
type DatasetRepository interface {
	Create(ctx context.Context, dataset *models.Dataset) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Dataset, error)
	GetBySessionID(ctx context.Context, sessionID string) ([]*models.Dataset, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error
	UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error
	StoreCatalog(ctx context.Context, catalog *models.SignalCatalog) error
	GetCatalog(ctx context.Context, datasetID uuid.UUID) (*models.SignalCatalog, error)
}

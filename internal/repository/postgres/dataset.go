package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/RMahshie/sigdash/internal/repository"
	"github.com/RMahshie/sigdash/pkg/models"
	"github.com/google/uuid"
)

// PostgresDatasetRepository implements DatasetRepository for PostgreSQL
type PostgresDatasetRepository struct {
	db *sql.DB
}

// NewPostgresDatasetRepository creates a new PostgreSQL dataset repository
func NewPostgresDatasetRepository(db *sql.DB) repository.DatasetRepository {
	return &PostgresDatasetRepository{db: db}
}

const datasetColumns = `id, session_id, file_name, status, progress, s3_key, fingerprint, error_message, created_at, updated_at, completed_at`

// Create inserts a new dataset record
func (r *PostgresDatasetRepository) Create(ctx context.Context, dataset *models.Dataset) error {
	if dataset.ID == "" {
		dataset.ID = uuid.New().String()
	}

	query := `
		INSERT INTO datasets (id, session_id, file_name, status, progress, s3_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		dataset.ID,
		dataset.SessionID,
		dataset.FileName,
		dataset.Status,
		dataset.Progress,
		dataset.S3Key).Scan(&dataset.CreatedAt, &dataset.UpdatedAt)
}

// GetByID retrieves a dataset by ID
func (r *PostgresDatasetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Dataset, error) {
	query := `SELECT ` + datasetColumns + ` FROM datasets WHERE id = $1`

	dataset, err := scanDataset(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dataset %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return dataset, nil
}

// GetBySessionID retrieves datasets by session ID, newest first
func (r *PostgresDatasetRepository) GetBySessionID(ctx context.Context, sessionID string) ([]*models.Dataset, error) {
	query := `SELECT ` + datasetColumns + ` FROM datasets WHERE session_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []*models.Dataset
	for rows.Next() {
		dataset, err := scanDataset(rows)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, dataset)
	}

	return datasets, rows.Err()
}

// UpdateStatus updates the status and progress of a dataset
func (r *PostgresDatasetRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	query := `
		UPDATE datasets
		SET status = $1, progress = $2, updated_at = NOW(),
		    completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END
		WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, status, progress, id)
	return err
}

// UpdateError marks a dataset as failed with a message
func (r *PostgresDatasetRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	query := `
		UPDATE datasets
		SET status = 'failed', error_message = $1, updated_at = NOW()
		WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, errorMsg, id)
	return err
}

// StoreCatalog stores the discovered signals and records the content fingerprint
func (r *PostgresDatasetRepository) StoreCatalog(ctx context.Context, catalog *models.SignalCatalog) error {
	signals, err := json.Marshal(catalog.Signals)
	if err != nil {
		return fmt.Errorf("failed to marshal signals: %w", err)
	}

	warnings := catalog.Warnings
	if warnings == nil {
		warnings = []models.DiscoveryWarning{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return fmt.Errorf("failed to marshal warnings: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO signal_catalogs (dataset_id, fingerprint, signals, warnings, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (dataset_id) DO UPDATE
		SET fingerprint = EXCLUDED.fingerprint, signals = EXCLUDED.signals,
		    warnings = EXCLUDED.warnings, created_at = EXCLUDED.created_at`

	if _, err := tx.ExecContext(ctx, query,
		catalog.DatasetID,
		catalog.Fingerprint,
		string(signals),
		string(warningsJSON)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE datasets SET fingerprint = $1, updated_at = NOW() WHERE id = $2`,
		catalog.Fingerprint, catalog.DatasetID); err != nil {
		return err
	}

	return tx.Commit()
}

// GetCatalog retrieves the signal catalog of a dataset
func (r *PostgresDatasetRepository) GetCatalog(ctx context.Context, datasetID uuid.UUID) (*models.SignalCatalog, error) {
	query := `
		SELECT dataset_id, fingerprint, signals, warnings, created_at
		FROM signal_catalogs
		WHERE dataset_id = $1`

	var catalog models.SignalCatalog
	var signals, warnings []byte

	err := r.db.QueryRowContext(ctx, query, datasetID).Scan(
		&catalog.DatasetID,
		&catalog.Fingerprint,
		&signals,
		&warnings,
		&catalog.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("catalog for dataset %s: %w", datasetID, repository.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(signals, &catalog.Signals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal signals: %w", err)
	}
	if err := json.Unmarshal(warnings, &catalog.Warnings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal warnings: %w", err)
	}

	return &catalog, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDataset(row rowScanner) (*models.Dataset, error) {
	var dataset models.Dataset
	var s3Key, fingerprint, errorMsg sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&dataset.ID,
		&dataset.SessionID,
		&dataset.FileName,
		&dataset.Status,
		&dataset.Progress,
		&s3Key,
		&fingerprint,
		&errorMsg,
		&dataset.CreatedAt,
		&dataset.UpdatedAt,
		&completedAt)
	if err != nil {
		return nil, err
	}

	if s3Key.Valid {
		dataset.S3Key = &s3Key.String
	}
	if fingerprint.Valid {
		dataset.Fingerprint = &fingerprint.String
	}
	if errorMsg.Valid {
		dataset.ErrorMsg = &errorMsg.String
	}
	if completedAt.Valid {
		dataset.CompletedAt = &completedAt.Time
	}

	return &dataset, nil
}

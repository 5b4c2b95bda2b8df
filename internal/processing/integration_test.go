package processing

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/RMahshie/sigdash/internal/repository/postgres"
	"github.com/RMahshie/sigdash/internal/storage"
	"github.com/RMahshie/sigdash/pkg/models"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/minio"
	pgContainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestContainer holds test infrastructure
type TestContainer struct {
	postgresContainer testcontainers.Container
	minioContainer    testcontainers.Container
	dbURL             string
	s3Config          storage.S3Config
}

// SetupIntegrationTest starts PostgreSQL and MinIO containers
func SetupIntegrationTest(t *testing.T) *TestContainer {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	pg, err := pgContainer.Run(ctx,
		"postgres:15-alpine",
		pgContainer.WithDatabase("sigdash_test"),
		pgContainer.WithUsername("testuser"),
		pgContainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	dbURL, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	mc, err := minio.Run(ctx,
		"minio/minio:RELEASE.2024-10-29T16-01-48Z",
		minio.WithUsername("minioadmin"),
		minio.WithPassword("minioadmin"),
	)
	require.NoError(t, err)

	minioURL, err := mc.ConnectionString(ctx)
	require.NoError(t, err)

	return &TestContainer{
		postgresContainer: pg,
		minioContainer:    mc,
		dbURL:             dbURL,
		s3Config: storage.S3Config{
			Bucket:    "sigdash-test-" + uuid.New().String()[:8],
			Endpoint:  minioURL,
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
		},
	}
}

// CleanupIntegrationTest terminates the test containers
func (tc *TestContainer) CleanupIntegrationTest(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	if tc.minioContainer != nil {
		require.NoError(t, tc.minioContainer.Terminate(ctx))
	}
	if tc.postgresContainer != nil {
		require.NoError(t, tc.postgresContainer.Terminate(ctx))
	}
}

func TestDashboardPipeline_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tc := SetupIntegrationTest(t)
	defer tc.CleanupIntegrationTest(t)

	ctx := context.Background()

	db, err := sql.Open("postgres", tc.dbURL)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, postgres.Migrate(ctx, db))

	repo := postgres.NewPostgresDatasetRepository(db)

	require.NoError(t, storage.EnsureBucket(ctx, tc.s3Config))
	s3Service, err := storage.NewS3Service(ctx, tc.s3Config)
	require.NoError(t, err)

	svc, err := NewDashboardService(s3Service, repo, DefaultSettings(), 4)
	require.NoError(t, err)

	// the client normally uploads through the pre-signed URL
	id := uuid.New()
	key := storage.DatasetKey(id.String(), storage.ContentTypeCSV)
	require.NoError(t, s3Service.UploadFile(ctx, key, csvExport(300), storage.ContentTypeCSV))
	defer s3Service.DeleteFile(ctx, key)

	dataset := &models.Dataset{
		ID:        id.String(),
		SessionID: "integration-session",
		FileName:  "run.csv",
		Status:    models.StatusPending,
		S3Key:     &key,
	}
	require.NoError(t, repo.Create(ctx, dataset))

	require.NoError(t, svc.ProcessDataset(ctx, id))

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stored.Status)
	assert.Equal(t, 100, stored.Progress)
	assert.NotNil(t, stored.CompletedAt)
	require.NotNil(t, stored.Fingerprint)

	catalog, err := svc.Catalog(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Velocity", "Diameter", "Tension"}, catalog.Names())
	assert.Equal(t, *stored.Fingerprint, catalog.Fingerprint)

	result, err := svc.Analyze(ctx, id, models.AnalysisParams{
		Rows:      []string{"Velocity", "Diameter", "Tension"},
		Include3D: true,
		MaxPoints: 100,
	})
	require.NoError(t, err)
	require.Len(t, result.Panels, 3)
	assert.Len(t, result.Panels[0].Series.Value, 300)
	require.NotNil(t, result.View)
	assert.Equal(t, 100, result.View.Len())

	peak, ok := PeakFrequency(result.Panels[0].Spectrum)
	require.True(t, ok)
	assert.InDelta(t, 1.0, peak, 0.2)

	sessions, err := repo.GetBySessionID(ctx, "integration-session")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestDashboardPipelineFailure_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tc := SetupIntegrationTest(t)
	defer tc.CleanupIntegrationTest(t)

	ctx := context.Background()

	db, err := sql.Open("postgres", tc.dbURL)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, postgres.Migrate(ctx, db))

	repo := postgres.NewPostgresDatasetRepository(db)

	require.NoError(t, storage.EnsureBucket(ctx, tc.s3Config))
	s3Service, err := storage.NewS3Service(ctx, tc.s3Config)
	require.NoError(t, err)

	svc, err := NewDashboardService(s3Service, repo, DefaultSettings(), 4)
	require.NoError(t, err)

	// never uploaded
	id := uuid.New()
	key := storage.DatasetKey(id.String(), storage.ContentTypeXLSX)
	require.NoError(t, repo.Create(ctx, &models.Dataset{
		ID:        id.String(),
		SessionID: "integration-session",
		FileName:  "missing.xlsx",
		Status:    models.StatusPending,
		S3Key:     &key,
	}))

	err = svc.ProcessDataset(ctx, id)
	require.Error(t, err)

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, stored.Status)
	require.NotNil(t, stored.ErrorMsg)
	assert.Equal(t, "Failed to download dataset", *stored.ErrorMsg)

	_, err = svc.Analyze(ctx, id, models.AnalysisParams{Rows: []string{"A", "B", "C"}})
	assert.ErrorIs(t, err, ErrNotReady)
}

package api

import (
	"net/http"

	"github.com/RMahshie/sigdash/internal/api/handlers"
	"github.com/RMahshie/sigdash/internal/processing"
	"github.com/RMahshie/sigdash/internal/repository"
	"github.com/RMahshie/sigdash/internal/storage"
	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, s3Service storage.S3Service, datasetRepo repository.DatasetRepository, dashboardSvc processing.DashboardService, maxUploadBytes int64) {
	datasetHandler := handlers.NewDatasetHandler(datasetRepo, s3Service, dashboardSvc, maxUploadBytes)

	huma.Register(api, huma.Operation{
		OperationID: "createDataset",
		Method:      http.MethodPost,
		Path:        "/api/datasets",
		Summary:     "Create a new dataset",
		Description: "Registers an instrument export and returns an upload URL",
		Tags:        []string{"Datasets"},
	}, datasetHandler.CreateDataset)

	huma.Register(api, huma.Operation{
		OperationID: "startProcessing",
		Method:      http.MethodPost,
		Path:        "/api/datasets/{id}/process",
		Summary:     "Start processing dataset",
		Description: "Parses the uploaded file and discovers its signals in the background",
		Tags:        []string{"Datasets"},
	}, datasetHandler.StartProcessing)

	huma.Register(api, huma.Operation{
		OperationID: "getDatasetStatus",
		Method:      http.MethodGet,
		Path:        "/api/datasets/{id}/status",
		Summary:     "Get dataset status",
		Description: "Returns the current status and progress of signal discovery",
		Tags:        []string{"Datasets"},
	}, datasetHandler.GetDatasetStatus)

	huma.Register(api, huma.Operation{
		OperationID: "getDatasetDownload",
		Method:      http.MethodGet,
		Path:        "/api/datasets/{id}/download",
		Summary:     "Get dataset download URL",
		Description: "Returns a pre-signed URL for the originally uploaded file",
		Tags:        []string{"Datasets"},
	}, datasetHandler.GetDownloadURL)

	huma.Register(api, huma.Operation{
		OperationID: "listSessionDatasets",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{session_id}/datasets",
		Summary:     "List session datasets",
		Description: "Returns the datasets uploaded in a client session, newest first",
		Tags:        []string{"Datasets"},
	}, datasetHandler.ListSessionDatasets)

	huma.Register(api, huma.Operation{
		OperationID: "getSignals",
		Method:      http.MethodGet,
		Path:        "/api/datasets/{id}/signals",
		Summary:     "List discovered signals",
		Description: "Returns the signals found in a processed dataset and any orphan time columns",
		Tags:        []string{"Dashboard"},
	}, datasetHandler.GetSignals)

	huma.Register(api, huma.Operation{
		OperationID: "analyzeDataset",
		Method:      http.MethodPost,
		Path:        "/api/datasets/{id}/analysis",
		Summary:     "Build dashboard panels",
		Description: "Computes time series, moving averages, histograms, FFT spectra and the optional 3D view for three signals",
		Tags:        []string{"Dashboard"},
	}, datasetHandler.AnalyzeDataset)
}

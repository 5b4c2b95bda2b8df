package models

import (
	"time"
)

// Dataset status values
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// Dataset represents an uploaded instrument export (for internal use)
type Dataset struct {
	ID          string     `json:"id"`
	SessionID   string     `json:"session_id"`
	FileName    string     `json:"file_name"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	S3Key       *string    `json:"s3_key,omitempty"`
	Fingerprint *string    `json:"fingerprint,omitempty"`
	ErrorMsg    *string    `json:"error_message,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// SignalCatalog is the stored result of signal discovery for a dataset
type SignalCatalog struct {
	DatasetID   string             `json:"dataset_id"`
	Fingerprint string             `json:"fingerprint"`
	Signals     []Signal           `json:"signals"`
	Warnings    []DiscoveryWarning `json:"warnings"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Names returns the signal names in discovery order
func (c *SignalCatalog) Names() []string {
	names := make([]string, 0, len(c.Signals))
	for _, s := range c.Signals {
		names = append(names, s.Name)
	}
	return names
}

// CreateDatasetRequestBody is the body of a create dataset request
type CreateDatasetRequestBody struct {
	SessionID string `json:"session_id" minLength:"10" maxLength:"50" required:"true" doc:"Client session identifier"`
	FileName  string `json:"file_name" minLength:"1" maxLength:"255" required:"true" doc:"Original file name"`
	FileSize  int64  `json:"file_size" minimum:"1" required:"true" doc:"File size in bytes"`
	MimeType  string `json:"mime_type" enum:"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv" required:"true" doc:"File MIME type"`
}

// CreateDatasetRequest represents a request to register a new dataset
type CreateDatasetRequest struct {
	Body CreateDatasetRequestBody
}

// CreateDatasetResponseBody is the body of the create dataset response
type CreateDatasetResponseBody struct {
	ID        string `json:"id" doc:"Dataset unique identifier"`
	UploadURL string `json:"upload_url" doc:"Pre-signed S3 URL for file upload"`
	ExpiresIn int    `json:"expires_in" doc:"URL expiration time in seconds"`
}

// CreateDatasetResponse represents the response from creating a dataset
type CreateDatasetResponse struct {
	Body CreateDatasetResponseBody
}

// DatasetIDRequest addresses a single dataset by path parameter
type DatasetIDRequest struct {
	ID string `path:"id" doc:"Dataset ID"`
}

// GetDatasetStatusResponseBody is the body of the status response
type GetDatasetStatusResponseBody struct {
	ID       string `json:"id" doc:"Dataset ID"`
	Status   string `json:"status" enum:"pending,processing,completed,failed" doc:"Processing status"`
	Progress int    `json:"progress" minimum:"0" maximum:"100" doc:"Processing progress percentage"`
	Message  string `json:"message,omitempty" doc:"Human-readable status message"`
}

// GetDatasetStatusResponse represents the current status of a dataset
type GetDatasetStatusResponse struct {
	Body GetDatasetStatusResponseBody
}

// StartProcessingResponse represents the response from starting processing
type StartProcessingResponse struct {
	Body struct {
		Message string `json:"message" doc:"Confirmation message"`
	}
}

// GetSignalsResponseBody lists the signals discovered in a dataset
type GetSignalsResponseBody struct {
	ID       string             `json:"id" doc:"Dataset ID"`
	Names    []string           `json:"names" doc:"Signal names in discovery order"`
	Signals  []Signal           `json:"signals" doc:"Discovered signals"`
	Warnings []DiscoveryWarning `json:"warnings,omitempty" doc:"Time columns without a value column"`
}

// GetSignalsResponse represents the signal catalog of a dataset
type GetSignalsResponse struct {
	Body GetSignalsResponseBody
}

// AnalysisParams are the user-chosen parameters for a dashboard request
type AnalysisParams struct {
	Rows        []string `json:"rows" minItems:"3" maxItems:"3" required:"true" doc:"Signal names for rows 1-3"`
	Window      int      `json:"window,omitempty" minimum:"1" maximum:"5000" doc:"Moving average window"`
	Mode        string   `json:"mode,omitempty" enum:"trailing,centered" doc:"Moving average boundary policy"`
	Bins        int      `json:"bins,omitempty" minimum:"1" maximum:"1000" doc:"Histogram bins"`
	Include3D   bool     `json:"include_3d,omitempty" doc:"Prepare the 3D scatter view"`
	UseSmoothed bool     `json:"use_smoothed,omitempty" doc:"Use moving averages for the 3D view"`
	MaxPoints   int      `json:"max_points,omitempty" minimum:"1" maximum:"50000" doc:"3D downsampling cap"`
	ColorBy     string   `json:"color_by,omitempty" doc:"3D color dimension, e.g. 'Sample index' or 'Row 2 time'"`
}

// AnalyzeDatasetRequest requests the dashboard panels for a dataset
type AnalyzeDatasetRequest struct {
	ID   string `path:"id" doc:"Dataset ID"`
	Body AnalysisParams
}

// AnalyzeDatasetResponse carries the dashboard panels
type AnalyzeDatasetResponse struct {
	Body DashboardResult
}

// GetDownloadURLResponse carries a pre-signed link to the original upload
type GetDownloadURLResponse struct {
	Body struct {
		ID          string `json:"id" doc:"Dataset ID"`
		FileName    string `json:"file_name" doc:"Original file name"`
		DownloadURL string `json:"download_url" doc:"Pre-signed S3 URL for the uploaded file"`
	}
}

// SessionDatasetsRequest lists the datasets uploaded in one client session
type SessionDatasetsRequest struct {
	SessionID string `path:"session_id" minLength:"10" maxLength:"50" doc:"Client session identifier"`
}

// SessionDatasetsResponse represents the datasets of a session, newest first
type SessionDatasetsResponse struct {
	Body struct {
		Datasets []*Dataset `json:"datasets" doc:"Datasets uploaded in this session"`
	}
}

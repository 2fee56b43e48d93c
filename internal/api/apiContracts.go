package api

import (
	"time"

	"github.com/dkrish/GoOCR/internal/domain/jobModel"
)

type JobResponse struct {
	JobId     string             `json:"jobId" example:"8d4f0c1e-26b1-4f8e-9a36-91f1f52cf7dd"`
	Status    string             `json:"status" example:"processing"`
	Progress  *jobModel.Progress `json:"progress,omitempty"`
	Result    *jobModel.Result   `json:"result,omitempty"`
	Error     *OutgoingError     `json:"error,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	StartedAt *time.Time         `json:"startedAt,omitempty"`
	EndedAt   *time.Time         `json:"completedAt,omitempty"`
}

type OutgoingError struct {
	Code    int    `json:"code" example:"404"`
	Message string `json:"message" example:"Job not found"`
}

type InitJobResponse struct {
	JobId     string `json:"jobId"`
	Status    string `json:"status" example:"pending"`
	StatusURL string `json:"statusUrl"`
}

type StatusResponse struct {
	JobId    string             `json:"jobId"`
	Status   string             `json:"status" example:"processing"`
	Progress *jobModel.Progress `json:"progress,omitempty"`
}

type UploadResponse struct {
	FileId       string `json:"fileId"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
}

type FileInfo struct {
	FileId       string    `json:"fileId"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Extractor bool   `json:"extractorReachable"`
}

type ConfigResponse struct {
	Provider      string `json:"provider"`
	Model         string `json:"model"`
	MaxPages      int    `json:"maxPages"`
	MaxUploadSize int    `json:"maxUploadSize"`
	DefaultPrompt string `json:"defaultPrompt"`
}

// requests---------------------

type ProcessFileRequest struct {
	FileId  string            `json:"fileId" validate:"required"`
	Prompt  string            `json:"prompt,omitempty"`
	Options *jobModel.Options `json:"options,omitempty"`
}

type ProcessURLRequest struct {
	URL     string            `json:"url" validate:"required"`
	Prompt  string            `json:"prompt,omitempty"`
	Options *jobModel.Options `json:"options,omitempty"`
}

type ProcessBase64Request struct {
	Data     string            `json:"data" validate:"required"`
	Filename string            `json:"filename,omitempty"`
	MimeType string            `json:"mimeType,omitempty"`
	Prompt   string            `json:"prompt,omitempty"`
	Options  *jobModel.Options `json:"options,omitempty"`
}

type ProcessPathRequest struct {
	Path    string            `json:"path" validate:"required"`
	Prompt  string            `json:"prompt,omitempty"`
	Options *jobModel.Options `json:"options,omitempty"`
}

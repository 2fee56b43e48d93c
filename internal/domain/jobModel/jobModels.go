package jobModel

import (
	"context"
	"time"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// IsTerminal reports whether no further transitions can occur.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Job is one tracked unit of document-to-text extraction work. A job is
// mutated only by the run that owns it and becomes immutable once terminal.
type Job struct {
	Id          string     `json:"id"`
	FileId      string     `json:"file_id,omitempty"`
	TraceId     string     `json:"trace_id,omitempty"`
	Status      JobStatus  `json:"status"`
	Progress    *Progress  `json:"progress,omitempty"`
	Prompt      string     `json:"prompt,omitempty"`
	Options     *Options   `json:"options,omitempty"`
	Result      *Result    `json:"result,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type Progress struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	Percentage  int `json:"percentage"`
}

// Options are pass-through configuration: the core carries them on the job
// but never interprets page_range or include_confidence.
type Options struct {
	Language          string `json:"language,omitempty"`
	OutputFormat      string `json:"output_format,omitempty"`
	IncludeConfidence bool   `json:"include_confidence,omitempty"`
	PageRange         string `json:"page_range,omitempty"`
}

type Result struct {
	Text     string         `json:"text"`
	Pages    []PageResult   `json:"pages"`
	Metadata ResultMetadata `json:"metadata"`
}

type PageResult struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
}

// ResultMetadata carries exactly one provenance field, matching the
// submission origin.
type ResultMetadata struct {
	TotalPages  int       `json:"total_pages"`
	ProcessedAt time.Time `json:"processed_at"`
	Model       string    `json:"model"`
	SourceURL   string    `json:"source_url,omitempty"`
	SourcePath  string    `json:"source_path,omitempty"`
	Filename    string    `json:"filename,omitempty"`
}

// FileRecord represents an ingested source document.
type FileRecord struct {
	Id           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	Path         string    `json:"path"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

type FileStore interface {
	GetFile(ctx context.Context, fileId string) (FileRecord, bool)
	SaveFile(ctx context.Context, record FileRecord) error
	DeleteFile(ctx context.Context, fileId string)
	ListFiles(ctx context.Context) []FileRecord
}

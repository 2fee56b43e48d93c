package ocr

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dkrish/GoOCR/internal/adapter/utils"
	"github.com/dkrish/GoOCR/internal/config"
	"github.com/dkrish/GoOCR/internal/domain/jobModel"
	"github.com/dkrish/GoOCR/internal/metrics"
	"github.com/dkrish/GoOCR/internal/ocr/extractor"
	"github.com/dkrish/GoOCR/internal/rasterizer"
	"github.com/dkrish/GoOCR/internal/storage"
	"github.com/dkrish/GoOCR/pkg/logger_i"
)

var (
	// ErrNotFound covers unknown job ids, unknown file ids and missing paths.
	ErrNotFound = errors.New("not found")
	// ErrValidation covers malformed submission input; no job is created.
	ErrValidation = errors.New("validation failed")
)

// ProcessRequest carries the caller-supplied prompt and pass-through
// options common to every submission operation.
type ProcessRequest struct {
	Prompt  string
	Options *jobModel.Options
}

// Service is the job orchestrator plus its read-only query facade. Each
// submission validates synchronously, stores a pending job and answers
// immediately; one goroutine then drives the job to a terminal state.
type Service interface {
	UploadFile(ctx context.Context, originalName string, mimeType string, data []byte) (jobModel.FileRecord, error)
	ProcessFile(ctx context.Context, fileId string, req ProcessRequest) (jobModel.Job, error)
	ProcessURL(ctx context.Context, rawURL string, req ProcessRequest) (jobModel.Job, error)
	ProcessBase64(ctx context.Context, data string, filename string, mimeType string, req ProcessRequest) (jobModel.Job, error)
	ProcessPath(ctx context.Context, path string, req ProcessRequest) (jobModel.Job, error)

	GetStatus(ctx context.Context, jobId string) (jobModel.JobStatus, *jobModel.Progress, error)
	GetResult(ctx context.Context, jobId string) (jobModel.Job, error)
	DeleteFile(ctx context.Context, fileId string) error
	ListFiles(ctx context.Context) []jobModel.FileRecord

	CheckHealth(ctx context.Context) bool
	Drain()
}

type service struct {
	jobStore  jobModel.JobStore
	fileStore jobModel.FileStore
	extractor extractor.Provider
	raster    rasterizer.Rasterizer
	files     *storage.Service
	logger    *logger_i.Logger
	inFlight  sync.WaitGroup
}

func NewService(jobStore jobModel.JobStore, fileStore jobModel.FileStore, provider extractor.Provider, raster rasterizer.Rasterizer, files *storage.Service) Service {
	return &service{
		jobStore:  jobStore,
		fileStore: fileStore,
		extractor: provider,
		raster:    raster,
		files:     files,
		logger:    logger_i.NewLogger("OCR Service"),
	}
}

func (s *service) UploadFile(ctx context.Context, originalName string, mimeType string, data []byte) (jobModel.FileRecord, error) {
	if !slices.Contains(config.AllowedMimeTypes, mimeType) {
		return jobModel.FileRecord{}, fmt.Errorf("%w: mime type %s is not allowed", ErrValidation, mimeType)
	}
	if len(data) > config.MaxUploadSize {
		return jobModel.FileRecord{}, fmt.Errorf("%w: file exceeds %d bytes", ErrValidation, config.MaxUploadSize)
	}

	fileId := utils.GetNewUUID()
	path, err := s.files.SaveFile(fileId, originalName, data)
	if err != nil {
		return jobModel.FileRecord{}, err
	}

	record := jobModel.FileRecord{
		Id:           fileId,
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         int64(len(data)),
		Path:         path,
		UploadedAt:   time.Now(),
	}
	if err := s.fileStore.SaveFile(ctx, record); err != nil {
		return jobModel.FileRecord{}, err
	}
	return record, nil
}

func (s *service) ProcessFile(ctx context.Context, fileId string, req ProcessRequest) (jobModel.Job, error) {
	record, found := s.fileStore.GetFile(ctx, fileId)
	if !found {
		return jobModel.Job{}, fmt.Errorf("%w: file with id %s", ErrNotFound, fileId)
	}

	job := s.createJob(ctx, req)
	job.FileId = fileId
	if err := s.jobStore.SaveJob(ctx, job); err != nil {
		return jobModel.Job{}, err
	}
	metrics.CountJobCreated("file")

	s.spawn(job, provenance{filename: record.OriginalName}, func(runCtx context.Context) ([]rasterizer.Page, error) {
		return s.resolveFile(runCtx, record)
	})
	return job, nil
}

func (s *service) ProcessURL(ctx context.Context, rawURL string, req ProcessRequest) (jobModel.Job, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return jobModel.Job{}, fmt.Errorf("%w: invalid url %q", ErrValidation, rawURL)
	}

	job := s.createJob(ctx, req)
	if err := s.jobStore.SaveJob(ctx, job); err != nil {
		return jobModel.Job{}, err
	}
	metrics.CountJobCreated("url")

	//fetch and content-type errors surface as job failure, not here
	s.spawn(job, provenance{sourceURL: rawURL}, func(runCtx context.Context) ([]rasterizer.Page, error) {
		return s.resolveURL(runCtx, rawURL)
	})
	return job, nil
}

func (s *service) ProcessBase64(ctx context.Context, data string, filename string, mimeType string, req ProcessRequest) (jobModel.Job, error) {
	job := s.createJob(ctx, req)
	if err := s.jobStore.SaveJob(ctx, job); err != nil {
		return jobModel.Job{}, err
	}
	metrics.CountJobCreated("base64")

	//the payload is accepted as-is; decode errors surface as job failure
	s.spawn(job, provenance{filename: filename}, func(runCtx context.Context) ([]rasterizer.Page, error) {
		return s.resolveBase64(runCtx, data, filename, mimeType)
	})
	return job, nil
}

func (s *service) ProcessPath(ctx context.Context, path string, req ProcessRequest) (jobModel.Job, error) {
	if _, err := os.Stat(path); err != nil {
		return jobModel.Job{}, fmt.Errorf("%w: file at path %s", ErrNotFound, path)
	}

	job := s.createJob(ctx, req)
	if err := s.jobStore.SaveJob(ctx, job); err != nil {
		return jobModel.Job{}, err
	}
	metrics.CountJobCreated("path")

	s.spawn(job, provenance{sourcePath: path}, func(runCtx context.Context) ([]rasterizer.Page, error) {
		return s.resolvePath(runCtx, path)
	})
	return job, nil
}

func (s *service) createJob(ctx context.Context, req ProcessRequest) jobModel.Job {
	prompt := req.Prompt
	if prompt == "" {
		prompt = config.DefaultPrompt
	}
	traceId, _ := ctx.Value(config.TRACE_ID_KEY).(string)
	return jobModel.Job{
		Id:        utils.GetNewUUID(),
		TraceId:   traceId,
		Status:    jobModel.JobStatusPending,
		Prompt:    prompt,
		Options:   req.Options,
		CreatedAt: time.Now(),
	}
}

// spawn runs the job in its own goroutine. The caller never blocks on it
// and no failure inside the run can escape past runJob.
func (s *service) spawn(job jobModel.Job, prov provenance, resolve func(ctx context.Context) ([]rasterizer.Page, error)) {
	s.inFlight.Add(1)
	go func() {
		defer s.inFlight.Done()
		s.runJob(job, prov, resolve)
	}()
}

func (s *service) runJob(job jobModel.Job, prov provenance, resolve func(ctx context.Context) ([]rasterizer.Page, error)) {
	start := time.Now()
	metrics.IncrementJobsInFlight()
	defer func() {
		metrics.DecrementJobsInFlight()
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	log := s.logger.With("traceId", job.TraceId, "jobId", job.Id)

	job.Status = jobModel.JobStatusProcessing
	startedAt := time.Now()
	job.StartedAt = &startedAt
	s.saveJob(ctx, log, job)

	pages, err := resolve(ctx)
	if err != nil {
		job = s.failJob(ctx, log, job, err)
		return
	}
	if len(pages) == 0 {
		job = s.failJob(ctx, log, job, errors.New("document produced no pages"))
		return
	}

	totalPages := len(pages)
	log.Info("Starting extraction", "totalPages", totalPages)

	//pages run strictly in order; prior texts stay local and are dropped
	//wholesale if any later page fails
	texts := make([]string, 0, totalPages)
	modelUsed := s.extractor.Model()
	for i, page := range pages {
		extractStart := time.Now()
		extraction, err := s.extractor.Extract(ctx, page.Base64, page.MimeType, job.Prompt)
		metrics.CaptureExtractionMetrics(s.extractor.Name(), time.Since(extractStart))
		if err != nil {
			job = s.failJob(ctx, log, job, err)
			return
		}
		texts = append(texts, extraction.Text)
		if extraction.Model != "" {
			modelUsed = extraction.Model
		}
		metrics.CountPageProcessed()

		job.Progress = &jobModel.Progress{
			CurrentPage: i + 1,
			TotalPages:  totalPages,
			Percentage:  int(math.Round(float64(i+1) / float64(totalPages) * 100)),
		}
		s.saveJob(ctx, log, job)
	}

	pageResults := make([]jobModel.PageResult, totalPages)
	for i, text := range texts {
		pageResults[i] = jobModel.PageResult{PageNumber: i + 1, Text: text}
	}

	completedAt := time.Now()
	job.Status = jobModel.JobStatusCompleted
	job.CompletedAt = &completedAt
	job.Result = &jobModel.Result{
		Text:  strings.Join(texts, config.PageBreakSeparator),
		Pages: pageResults,
		Metadata: jobModel.ResultMetadata{
			TotalPages:  totalPages,
			ProcessedAt: completedAt,
			Model:       modelUsed,
			SourceURL:   prov.sourceURL,
			SourcePath:  prov.sourcePath,
			Filename:    prov.filename,
		},
	}
	s.saveJob(ctx, log, job)
	log.Info("Job completed", "totalPages", totalPages, "duration", time.Since(start).String())
}

func (s *service) failJob(ctx context.Context, log *logger_i.Logger, job jobModel.Job, cause error) jobModel.Job {
	log.Error("Job failed", "error", cause)
	completedAt := time.Now()
	job.Status = jobModel.JobStatusFailed
	job.Error = cause.Error()
	job.Result = nil
	job.CompletedAt = &completedAt
	s.saveJob(ctx, log, job)
	return job
}

func (s *service) saveJob(ctx context.Context, log *logger_i.Logger, job jobModel.Job) {
	if err := s.jobStore.SaveJob(ctx, job); err != nil {
		log.Error("Failed to persist job state", "error", err)
	}
}

func (s *service) GetStatus(ctx context.Context, jobId string) (jobModel.JobStatus, *jobModel.Progress, error) {
	job, found := s.jobStore.GetJob(ctx, jobId)
	if !found {
		return "", nil, fmt.Errorf("%w: job with id %s", ErrNotFound, jobId)
	}
	return job.Status, job.Progress, nil
}

func (s *service) GetResult(ctx context.Context, jobId string) (jobModel.Job, error) {
	job, found := s.jobStore.GetJob(ctx, jobId)
	if !found {
		return jobModel.Job{}, fmt.Errorf("%w: job with id %s", ErrNotFound, jobId)
	}
	return job, nil
}

func (s *service) DeleteFile(ctx context.Context, fileId string) error {
	record, found := s.fileStore.GetFile(ctx, fileId)
	if !found {
		return fmt.Errorf("%w: file with id %s", ErrNotFound, fileId)
	}
	//removing the bytes is best-effort, the record removal is not
	s.files.DeleteFile(record.Path)
	s.fileStore.DeleteFile(ctx, fileId)
	return nil
}

func (s *service) ListFiles(ctx context.Context) []jobModel.FileRecord {
	return s.fileStore.ListFiles(ctx)
}

func (s *service) CheckHealth(ctx context.Context) bool {
	return s.extractor.CheckHealth(ctx)
}

// Drain blocks until every in-flight job reached a terminal state. Used
// by graceful shutdown after the listener stops accepting work.
func (s *service) Drain() {
	s.inFlight.Wait()
}

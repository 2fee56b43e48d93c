package ocr_test

import (
	"context"
	"sync"

	"github.com/dkrish/GoOCR/internal/domain/jobModel"
	"github.com/dkrish/GoOCR/internal/ocr/extractor"
	"github.com/dkrish/GoOCR/internal/rasterizer"
)

// MockProvider implements extractor.Provider
type MockProvider struct {
	// Control fields to simulate different behaviors
	OnExtract     func(ctx context.Context, imageB64 string, mimeType string, prompt string) (extractor.Extraction, error)
	OnCheckHealth func(ctx context.Context) bool
}

func (m *MockProvider) Extract(ctx context.Context, imageB64 string, mimeType string, prompt string) (extractor.Extraction, error) {
	if m.OnExtract != nil {
		return m.OnExtract(ctx, imageB64, mimeType, prompt)
	}
	return extractor.Extraction{Text: "mocked page text", Model: "mock-model"}, nil
}

func (m *MockProvider) CheckHealth(ctx context.Context) bool {
	if m.OnCheckHealth != nil {
		return m.OnCheckHealth(ctx)
	}
	return true
}

func (m *MockProvider) Model() string { return "mock-model" }

func (m *MockProvider) Name() string { return "mock" }

// MockRasterizer implements rasterizer.Rasterizer
type MockRasterizer struct {
	OnRasterize func(ctx context.Context, pdfPath string) ([]rasterizer.Page, error)
}

func (m *MockRasterizer) Rasterize(ctx context.Context, pdfPath string) ([]rasterizer.Page, error) {
	if m.OnRasterize != nil {
		return m.OnRasterize(ctx, pdfPath)
	}
	return []rasterizer.Page{{Number: 1, MimeType: "image/png", Base64: "page-1"}}, nil
}

// RecordingJobStore keeps every saved snapshot so tests can check the
// order of state transitions and progress updates.
type RecordingJobStore struct {
	mu        sync.Mutex
	jobs      map[string]jobModel.Job
	snapshots []jobModel.Job
}

func NewRecordingJobStore() *RecordingJobStore {
	return &RecordingJobStore{jobs: make(map[string]jobModel.Job)}
}

func (s *RecordingJobStore) SaveJob(ctx context.Context, job jobModel.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.Id] = job
	s.snapshots = append(s.snapshots, job)
	return nil
}

func (s *RecordingJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, found := s.jobs[jobId]
	return job, found
}

func (s *RecordingJobStore) DeleteJob(ctx context.Context, jobId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, jobId)
}

func (s *RecordingJobStore) Snapshots() []jobModel.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]jobModel.Job, len(s.snapshots))
	copy(out, s.snapshots)
	return out
}

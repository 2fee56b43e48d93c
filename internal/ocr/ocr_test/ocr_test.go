package ocr_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dkrish/GoOCR/internal/config"
	"github.com/dkrish/GoOCR/internal/data/store"
	"github.com/dkrish/GoOCR/internal/domain/jobModel"
	"github.com/dkrish/GoOCR/internal/ocr"
	"github.com/dkrish/GoOCR/internal/ocr/extractor"
	"github.com/dkrish/GoOCR/internal/rasterizer"
	"github.com/dkrish/GoOCR/internal/storage"
)

func newTestService(t *testing.T, jobStore jobModel.JobStore, provider *MockProvider, raster *MockRasterizer) ocr.Service {
	t.Helper()
	storageService, err := storage.NewService(t.TempDir())
	if err != nil {
		t.Fatalf("storage init failed: %v", err)
	}
	return ocr.NewService(jobStore, store.InitInMemoryFileStore(), provider, raster, storageService)
}

func writeTempPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0644); err != nil {
		t.Fatalf("writing test pdf: %v", err)
	}
	return path
}

func TestProcessPath_Scenarios(t *testing.T) {
	threePages := []rasterizer.Page{
		{Number: 1, MimeType: "image/png", Base64: "p1"},
		{Number: 2, MimeType: "image/png", Base64: "p2"},
		{Number: 3, MimeType: "image/png", Base64: "p3"},
	}

	tests := []struct {
		name           string
		setupMocks     func(p *MockProvider, r *MockRasterizer)
		expectedStatus jobModel.JobStatus
		expectedText   string
		expectedPages  int
		expectedErr    string
	}{
		{
			name: "Success_MultiPage_PDF",
			setupMocks: func(p *MockProvider, r *MockRasterizer) {
				r.OnRasterize = func(ctx context.Context, pdfPath string) ([]rasterizer.Page, error) {
					return threePages, nil
				}
				p.OnExtract = func(ctx context.Context, b64 string, mime string, prompt string) (extractor.Extraction, error) {
					return extractor.Extraction{Text: "text-" + b64, Model: "mock-model"}, nil
				}
			},
			expectedStatus: jobModel.JobStatusCompleted,
			expectedText:   "text-p1" + config.PageBreakSeparator + "text-p2" + config.PageBreakSeparator + "text-p3",
			expectedPages:  3,
		},
		{
			name: "Failure_Mid_Document_Drops_Prior_Pages",
			setupMocks: func(p *MockProvider, r *MockRasterizer) {
				r.OnRasterize = func(ctx context.Context, pdfPath string) ([]rasterizer.Page, error) {
					return threePages, nil
				}
				p.OnExtract = func(ctx context.Context, b64 string, mime string, prompt string) (extractor.Extraction, error) {
					if b64 == "p2" {
						return extractor.Extraction{}, errors.New("model unavailable")
					}
					return extractor.Extraction{Text: "text-" + b64}, nil
				}
			},
			expectedStatus: jobModel.JobStatusFailed,
			expectedErr:    "model unavailable",
		},
		{
			name: "Failure_Rasterizer",
			setupMocks: func(p *MockProvider, r *MockRasterizer) {
				r.OnRasterize = func(ctx context.Context, pdfPath string) ([]rasterizer.Page, error) {
					return nil, errors.New("document has 150 pages, limit is 100")
				}
			},
			expectedStatus: jobModel.JobStatusFailed,
			expectedErr:    "limit is 100",
		},
		{
			name: "Failure_Empty_Document",
			setupMocks: func(p *MockProvider, r *MockRasterizer) {
				r.OnRasterize = func(ctx context.Context, pdfPath string) ([]rasterizer.Page, error) {
					return []rasterizer.Page{}, nil
				}
			},
			expectedStatus: jobModel.JobStatusFailed,
			expectedErr:    "no pages",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &MockProvider{}
			raster := &MockRasterizer{}
			tt.setupMocks(provider, raster)

			jobStore := store.InitInMemoryJobStore()
			s := newTestService(t, jobStore, provider, raster)

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
			pdfPath := writeTempPDF(t)

			job, err := s.ProcessPath(ctx, pdfPath, ocr.ProcessRequest{})
			if err != nil {
				t.Fatalf("ProcessPath failed: %v", err)
			}
			if job.Status != jobModel.JobStatusPending {
				t.Errorf("Submission status got %s, want pending", job.Status)
			}

			s.Drain()

			final, err := s.GetResult(ctx, job.Id)
			if err != nil {
				t.Fatalf("GetResult failed: %v", err)
			}

			if final.Status != tt.expectedStatus {
				t.Errorf("Status got %s, want %s", final.Status, tt.expectedStatus)
			}
			if final.CompletedAt == nil {
				t.Error("CompletedAt not stamped on terminal job")
			}

			if tt.expectedStatus == jobModel.JobStatusFailed {
				if final.Result != nil {
					t.Errorf("Failed job must not carry a result, got %+v", final.Result)
				}
				if !strings.Contains(final.Error, tt.expectedErr) {
					t.Errorf("Error got %q, want it to contain %q", final.Error, tt.expectedErr)
				}
				return
			}

			if final.Result == nil {
				t.Fatal("Completed job has no result")
			}
			if final.Result.Text != tt.expectedText {
				t.Errorf("Text got %q, want %q", final.Result.Text, tt.expectedText)
			}
			if len(final.Result.Pages) != tt.expectedPages {
				t.Errorf("Pages got %d, want %d", len(final.Result.Pages), tt.expectedPages)
			}
			for i, page := range final.Result.Pages {
				if page.PageNumber != i+1 {
					t.Errorf("Page %d numbered %d", i, page.PageNumber)
				}
			}
			if final.Result.Metadata.SourcePath != pdfPath {
				t.Errorf("SourcePath got %q, want %q", final.Result.Metadata.SourcePath, pdfPath)
			}
			if final.Result.Metadata.SourceURL != "" || final.Result.Metadata.Filename != "" {
				t.Error("Exactly one provenance field must be set for path submissions")
			}
			if final.Progress == nil || final.Progress.CurrentPage != tt.expectedPages || final.Progress.Percentage != 100 {
				t.Errorf("Final progress got %+v, want %d/%d at 100%%", final.Progress, tt.expectedPages, tt.expectedPages)
			}
		})
	}
}

func TestProcessPath_ImagePassthrough(t *testing.T) {
	imgPath := filepath.Join(t.TempDir(), "scan.jpg")
	if err := os.WriteFile(imgPath, []byte("jpeg-bytes"), 0644); err != nil {
		t.Fatalf("writing test image: %v", err)
	}

	var gotMime string
	provider := &MockProvider{
		OnExtract: func(ctx context.Context, b64 string, mime string, prompt string) (extractor.Extraction, error) {
			gotMime = mime
			return extractor.Extraction{Text: "image text"}, nil
		},
	}
	raster := &MockRasterizer{
		OnRasterize: func(ctx context.Context, pdfPath string) ([]rasterizer.Page, error) {
			t.Error("Rasterizer must not run for image submissions")
			return nil, nil
		},
	}

	s := newTestService(t, store.InitInMemoryJobStore(), provider, raster)
	ctx := context.Background()

	job, err := s.ProcessPath(ctx, imgPath, ocr.ProcessRequest{})
	if err != nil {
		t.Fatalf("ProcessPath failed: %v", err)
	}
	s.Drain()

	final, _ := s.GetResult(ctx, job.Id)
	if final.Status != jobModel.JobStatusCompleted {
		t.Fatalf("Status got %s, want completed (error: %s)", final.Status, final.Error)
	}
	if gotMime != "image/jpeg" {
		t.Errorf("Mime type got %s, want image/jpeg", gotMime)
	}
	if final.Progress == nil || final.Progress.TotalPages != 1 {
		t.Errorf("Single image should be one page, got %+v", final.Progress)
	}
}

func TestProcessBase64_DataPassedAsIs(t *testing.T) {
	var gotB64 string
	provider := &MockProvider{
		OnExtract: func(ctx context.Context, b64 string, mime string, prompt string) (extractor.Extraction, error) {
			gotB64 = b64
			return extractor.Extraction{Text: "decoded text"}, nil
		},
	}

	s := newTestService(t, store.InitInMemoryJobStore(), provider, &MockRasterizer{})
	ctx := context.Background()

	job, err := s.ProcessBase64(ctx, "AAAABBBB", "photo.png", "image/png", ocr.ProcessRequest{})
	if err != nil {
		t.Fatalf("ProcessBase64 failed: %v", err)
	}
	s.Drain()

	final, _ := s.GetResult(ctx, job.Id)
	if final.Status != jobModel.JobStatusCompleted {
		t.Fatalf("Status got %s, want completed (error: %s)", final.Status, final.Error)
	}
	if gotB64 != "AAAABBBB" {
		t.Errorf("Payload got %q, want it untouched", gotB64)
	}
	if final.Result.Metadata.Filename != "photo.png" {
		t.Errorf("Filename provenance got %q, want photo.png", final.Result.Metadata.Filename)
	}
}

func TestSubmission_Validation(t *testing.T) {
	s := newTestService(t, store.InitInMemoryJobStore(), &MockProvider{}, &MockRasterizer{})
	ctx := context.Background()

	t.Run("Unknown_File_Id", func(t *testing.T) {
		_, err := s.ProcessFile(ctx, "no-such-file", ocr.ProcessRequest{})
		if !errors.Is(err, ocr.ErrNotFound) {
			t.Errorf("Got %v, want ErrNotFound", err)
		}
	})

	t.Run("Missing_Path", func(t *testing.T) {
		_, err := s.ProcessPath(ctx, "/definitely/not/here.pdf", ocr.ProcessRequest{})
		if !errors.Is(err, ocr.ErrNotFound) {
			t.Errorf("Got %v, want ErrNotFound", err)
		}
	})

	t.Run("Malformed_URL", func(t *testing.T) {
		_, err := s.ProcessURL(ctx, "not a url at all", ocr.ProcessRequest{})
		if !errors.Is(err, ocr.ErrValidation) {
			t.Errorf("Got %v, want ErrValidation", err)
		}
	})

	t.Run("Unknown_Job_Id", func(t *testing.T) {
		_, _, err := s.GetStatus(ctx, "ghost-job")
		if !errors.Is(err, ocr.ErrNotFound) {
			t.Errorf("Got %v, want ErrNotFound", err)
		}
	})
}

func TestUploadFile_Validation(t *testing.T) {
	s := newTestService(t, store.InitInMemoryJobStore(), &MockProvider{}, &MockRasterizer{})
	ctx := context.Background()

	_, err := s.UploadFile(ctx, "notes.txt", "text/plain", []byte("hello"))
	if !errors.Is(err, ocr.ErrValidation) {
		t.Errorf("Disallowed mime type: got %v, want ErrValidation", err)
	}

	record, err := s.UploadFile(ctx, "scan.png", "image/png", []byte{0x89, 0x50, 0x4e, 0x47})
	if err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}
	if record.Id == "" || record.Size != 4 {
		t.Errorf("Record not filled in: %+v", record)
	}

	files := s.ListFiles(ctx)
	if len(files) != 1 || files[0].Id != record.Id {
		t.Errorf("ListFiles got %+v, want the uploaded record", files)
	}

	if err := s.DeleteFile(ctx, record.Id); err != nil {
		t.Fatalf("DeleteFile failed: %v", err)
	}
	if err := s.DeleteFile(ctx, record.Id); !errors.Is(err, ocr.ErrNotFound) {
		t.Errorf("Second delete: got %v, want ErrNotFound", err)
	}
}

func TestUploadThenProcess_FullFlow(t *testing.T) {
	provider := &MockProvider{
		OnExtract: func(ctx context.Context, b64 string, mime string, prompt string) (extractor.Extraction, error) {
			return extractor.Extraction{Text: "extracted from " + mime}, nil
		},
	}
	s := newTestService(t, store.InitInMemoryJobStore(), provider, &MockRasterizer{})
	ctx := context.Background()

	record, err := s.UploadFile(ctx, "receipt.png", "image/png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}

	job, err := s.ProcessFile(ctx, record.Id, ocr.ProcessRequest{Prompt: "read the receipt"})
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	s.Drain()

	final, _ := s.GetResult(ctx, job.Id)
	if final.Status != jobModel.JobStatusCompleted {
		t.Fatalf("Status got %s, want completed (error: %s)", final.Status, final.Error)
	}
	if final.Result.Metadata.Filename != "receipt.png" {
		t.Errorf("Filename provenance got %q, want receipt.png", final.Result.Metadata.Filename)
	}
	if final.Prompt != "read the receipt" {
		t.Errorf("Prompt got %q, want the caller's prompt", final.Prompt)
	}
}

func TestJobLifecycle_Transitions(t *testing.T) {
	pages := make([]rasterizer.Page, 4)
	for i := range pages {
		pages[i] = rasterizer.Page{Number: i + 1, MimeType: "image/png", Base64: fmt.Sprintf("p%d", i+1)}
	}

	provider := &MockProvider{}
	raster := &MockRasterizer{
		OnRasterize: func(ctx context.Context, pdfPath string) ([]rasterizer.Page, error) {
			return pages, nil
		},
	}

	recorder := NewRecordingJobStore()
	s := newTestService(t, recorder, provider, raster)
	ctx := context.Background()

	job, err := s.ProcessPath(ctx, writeTempPDF(t), ocr.ProcessRequest{})
	if err != nil {
		t.Fatalf("ProcessPath failed: %v", err)
	}
	s.Drain()

	snapshots := recorder.Snapshots()
	if len(snapshots) < 3 {
		t.Fatalf("Expected pending, processing and progress snapshots, got %d", len(snapshots))
	}

	if snapshots[0].Status != jobModel.JobStatusPending {
		t.Errorf("First snapshot got %s, want pending", snapshots[0].Status)
	}
	if snapshots[1].Status != jobModel.JobStatusProcessing {
		t.Errorf("Second snapshot got %s, want processing", snapshots[1].Status)
	}
	if snapshots[1].StartedAt == nil {
		t.Error("StartedAt not stamped when the job picks up")
	}

	//progress may only move forward, and nothing is saved past the
	//terminal snapshot
	lastPage := 0
	sawTerminal := false
	for i, snap := range snapshots {
		if sawTerminal {
			t.Fatalf("Snapshot %d saved after terminal state", i)
		}
		if snap.Progress != nil {
			if snap.Progress.CurrentPage < lastPage {
				t.Errorf("Progress went backwards: %d after %d", snap.Progress.CurrentPage, lastPage)
			}
			lastPage = snap.Progress.CurrentPage
		}
		if snap.Status.IsTerminal() {
			sawTerminal = true
		}
	}
	if !sawTerminal {
		t.Fatal("Job never reached a terminal state")
	}

	final, _ := s.GetResult(ctx, job.Id)
	if final.Progress.CurrentPage != len(pages) || final.Progress.TotalPages != len(pages) {
		t.Errorf("Final progress got %+v, want %d/%d", final.Progress, len(pages), len(pages))
	}
}

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/dkrish/GoOCR/internal/config"
	"github.com/dkrish/GoOCR/internal/data/redisStore"
	"github.com/dkrish/GoOCR/internal/data/store"
	"github.com/dkrish/GoOCR/internal/domain/jobModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisJobStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	internalStore := redisStore.NewTestStore(client)
	jobStore := store.TestJobStore(internalStore)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	jobID := "job_abc_123"

	testJob := jobModel.Job{
		Id:     jobID,
		Status: jobModel.JobStatusProcessing,
		Prompt: "Extract all text from this image.",
		Progress: &jobModel.Progress{
			CurrentPage: 2,
			TotalPages:  5,
			Percentage:  40,
		},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		err := jobStore.SaveJob(ctx, testJob)
		if err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		retrievedJob, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Job was saved but not found in Redis")
		}

		if retrievedJob.Status != testJob.Status {
			t.Errorf("Status mismatch! Got %s, want %s", retrievedJob.Status, testJob.Status)
		}
		if retrievedJob.Progress == nil || retrievedJob.Progress.CurrentPage != 2 {
			t.Errorf("Progress mismatch! Got %+v, want current_page=2", retrievedJob.Progress)
		}
	})

	t.Run("Result Roundtrip", func(t *testing.T) {
		completedAt := time.Now()
		completed := testJob
		completed.Status = jobModel.JobStatusCompleted
		completed.CompletedAt = &completedAt
		completed.Result = &jobModel.Result{
			Text:  "page one\n\n--- Page Break ---\n\npage two",
			Pages: []jobModel.PageResult{{PageNumber: 1, Text: "page one"}, {PageNumber: 2, Text: "page two"}},
			Metadata: jobModel.ResultMetadata{
				TotalPages: 2,
				Model:      "deepseek-ocr",
				Filename:   "scan.pdf",
			},
		}

		if err := jobStore.SaveJob(ctx, completed); err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		retrieved, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Completed job not found in Redis")
		}
		if retrieved.Result == nil || len(retrieved.Result.Pages) != 2 {
			t.Fatalf("Result lost on roundtrip: %+v", retrieved.Result)
		}
		if retrieved.Result.Metadata.Filename != "scan.pdf" {
			t.Errorf("Metadata mismatch! Got %s, want scan.pdf", retrieved.Result.Metadata.Filename)
		}
	})

	t.Run("Get Non-Existent Job", func(t *testing.T) {
		_, found := jobStore.GetJob(ctx, "ghost-id")
		if found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Delete Job", func(t *testing.T) {
		jobStore.DeleteJob(ctx, jobID)

		// Verify it's gone from miniredis
		if mr.Exists(jobID) {
			t.Error("Job still exists in Redis after DeleteJob call")
		}
	})
}

func TestRedisJobStore_Race(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	jobStore := store.TestJobStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "race-trace")
	job := jobModel.Job{Id: "race-job"}

	const workers = 50
	for i := 0; i < workers; i++ {
		go func() {
			_ = jobStore.SaveJob(ctx, job)
			_, _ = jobStore.GetJob(ctx, "race-job")
		}()
	}
}

package adapter

import (
	"fmt"

	"github.com/dkrish/GoOCR/internal/api"
	"github.com/dkrish/GoOCR/internal/domain/jobModel"
)

func ToInitJobResponse(job jobModel.Job) api.InitJobResponse {
	return api.InitJobResponse{
		JobId:     job.Id,
		Status:    string(job.Status),
		StatusURL: fmt.Sprintf("/ocr/status/%s", job.Id),
	}
}

func ToStatusResponse(jobId string, status jobModel.JobStatus, progress *jobModel.Progress) api.StatusResponse {
	return api.StatusResponse{
		JobId:    jobId,
		Status:   string(status),
		Progress: progress,
	}
}

func ToJobResponse(job jobModel.Job) api.JobResponse {
	var errorPtr *api.OutgoingError
	if job.Error != "" {
		errorPtr = &api.OutgoingError{
			Code:    0,
			Message: job.Error,
		}
	}

	return api.JobResponse{
		JobId:     job.Id,
		Status:    string(job.Status),
		Progress:  job.Progress,
		Result:    job.Result,
		Error:     errorPtr,
		CreatedAt: job.CreatedAt,
		StartedAt: job.StartedAt,
		EndedAt:   job.CompletedAt,
	}
}

func ToUploadResponse(record jobModel.FileRecord) api.UploadResponse {
	return api.UploadResponse{
		FileId:       record.Id,
		OriginalName: record.OriginalName,
		MimeType:     record.MimeType,
		Size:         record.Size,
	}
}

func ToFileInfoList(records []jobModel.FileRecord) []api.FileInfo {
	infos := make([]api.FileInfo, len(records))
	for i, record := range records {
		infos[i] = api.FileInfo{
			FileId:       record.Id,
			OriginalName: record.OriginalName,
			MimeType:     record.MimeType,
			Size:         record.Size,
			UploadedAt:   record.UploadedAt,
		}
	}
	return infos
}

func BadRequest(id string, message string, code int) api.JobResponse {
	return api.JobResponse{
		JobId:  id,
		Status: "error",
		Error: &api.OutgoingError{
			Code:    code,
			Message: message,
		},
	}
}

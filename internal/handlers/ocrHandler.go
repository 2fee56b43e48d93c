package handlers

import (
	"io"
	"net/http"
	"sync"

	"github.com/dkrish/GoOCR/internal/adapter"
	"github.com/dkrish/GoOCR/internal/adapter/utils"
	"github.com/dkrish/GoOCR/internal/api"
	"github.com/dkrish/GoOCR/internal/config"
	"github.com/dkrish/GoOCR/internal/ocr"
	"github.com/dkrish/GoOCR/pkg/logger_i"
)

var (
	handlerInstance *OcrHandler //private singleton
	once            sync.Once
	logOH           *logger_i.Logger
)

type OcrHandler struct {
	service ocr.Service
}

func InitOcrHandler(ocrService ocr.Service) {
	once.Do(func() {
		handlerInstance = &OcrHandler{service: ocrService}

		logOH = logger_i.NewLogger("OcrHandler")
		logOH.Info("Starting ocr handler")
	})
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// UploadHandler godoc
// @Summary      Upload a document
// @Description  Receives a PDF or image via multipart/form-data and stores it for later processing.
// @Tags         Files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "The PDF, PNG or JPEG file to upload"
// @Success      201  {object}  api.UploadResponse  "File stored"
// @Failure      400  {object}  api.JobResponse     "Missing file, bad type or too large"
// @Router       /ocr/upload [post]
func UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logOH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	if err := r.ParseMultipartForm(int64(config.MaxUploadSize)); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("file")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	data, err := io.ReadAll(fileReader)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Read error")
		return
	}

	mimeType := fileMetadata.Header.Get("Content-Type")
	record, err := handlerInstance.service.UploadFile(r.Context(), fileMetadata.Filename, mimeType, data)
	if err != nil {
		writeServiceError(w, "", err)
		return
	}
	writeJsonResponse(w, http.StatusCreated, adapter.ToUploadResponse(record))
}

// ProcessFileHandler godoc
// @Summary      Start OCR on an uploaded file
// @Description  Creates an asynchronous OCR job for a previously uploaded file and returns the job ID.
// @Tags         Processing
// @Accept       json
// @Produce      json
// @Param        request  body      api.ProcessFileRequest  true  "File ID with optional prompt and options"
// @Success      202      {object}  api.InitJobResponse     "Job created"
// @Failure      400      {object}  api.JobResponse         "Invalid request data"
// @Failure      404      {object}  api.JobResponse         "File not found"
// @Router       /ocr/process [post]
func ProcessFileHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logOH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.ProcessFileRequest
	if !decodeBody(w, r, &requestData) {
		return
	}
	if requestData.FileId == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "fileId is required")
		return
	}

	job, err := handlerInstance.service.ProcessFile(r.Context(), requestData.FileId, ocr.ProcessRequest{
		Prompt:  requestData.Prompt,
		Options: requestData.Options,
	})
	if err != nil {
		writeServiceError(w, requestData.FileId, err)
		return
	}
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(job))
}

// ProcessURLHandler godoc
// @Summary      Start OCR on a remote document
// @Description  Creates an asynchronous OCR job that downloads the document from the given URL.
// @Tags         Processing
// @Accept       json
// @Produce      json
// @Param        request  body      api.ProcessURLRequest  true  "Document URL with optional prompt and options"
// @Success      202      {object}  api.InitJobResponse    "Job created"
// @Failure      400      {object}  api.JobResponse        "Missing or malformed URL"
// @Router       /ocr/process-url [post]
func ProcessURLHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logOH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.ProcessURLRequest
	if !decodeBody(w, r, &requestData) {
		return
	}
	if requestData.URL == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "url is required")
		return
	}

	job, err := handlerInstance.service.ProcessURL(r.Context(), requestData.URL, ocr.ProcessRequest{
		Prompt:  requestData.Prompt,
		Options: requestData.Options,
	})
	if err != nil {
		writeServiceError(w, "", err)
		return
	}
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(job))
}

// ProcessBase64Handler godoc
// @Summary      Start OCR on a base64 payload
// @Description  Creates an asynchronous OCR job for an inline base64-encoded document.
// @Tags         Processing
// @Accept       json
// @Produce      json
// @Param        request  body      api.ProcessBase64Request  true  "Base64 data with optional filename, mime type, prompt and options"
// @Success      202      {object}  api.InitJobResponse       "Job created"
// @Failure      400      {object}  api.JobResponse           "Missing data field"
// @Router       /ocr/process-base64 [post]
func ProcessBase64Handler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logOH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.ProcessBase64Request
	if !decodeBody(w, r, &requestData) {
		return
	}
	if requestData.Data == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "data is required")
		return
	}

	job, err := handlerInstance.service.ProcessBase64(r.Context(), requestData.Data, requestData.Filename, requestData.MimeType, ocr.ProcessRequest{
		Prompt:  requestData.Prompt,
		Options: requestData.Options,
	})
	if err != nil {
		writeServiceError(w, "", err)
		return
	}
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(job))
}

// ProcessPathHandler godoc
// @Summary      Start OCR on a server-side file
// @Description  Creates an asynchronous OCR job for a file already on the server's filesystem.
// @Tags         Processing
// @Accept       json
// @Produce      json
// @Param        request  body      api.ProcessPathRequest  true  "Filesystem path with optional prompt and options"
// @Success      202      {object}  api.InitJobResponse     "Job created"
// @Failure      400      {object}  api.JobResponse         "Missing path field"
// @Failure      404      {object}  api.JobResponse         "No file at path"
// @Router       /ocr/process-path [post]
func ProcessPathHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logOH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.ProcessPathRequest
	if !decodeBody(w, r, &requestData) {
		return
	}
	if requestData.Path == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "path is required")
		return
	}

	job, err := handlerInstance.service.ProcessPath(r.Context(), requestData.Path, ocr.ProcessRequest{
		Prompt:  requestData.Prompt,
		Options: requestData.Options,
	})
	if err != nil {
		writeServiceError(w, "", err)
		return
	}
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(job))
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the state and page progress of a job without the extracted text.
// @Tags         Jobs
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200  {object}  api.StatusResponse  "Current state and progress"
// @Failure      404  {object}  api.JobResponse     "Job not found"
// @Router       /ocr/status/{jobId} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	jobId := utils.GetChiURLParam(r, "jobId")
	status, progress, err := handlerInstance.service.GetStatus(r.Context(), jobId)
	if err != nil {
		writeServiceError(w, jobId, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToStatusResponse(jobId, status, progress))
}

// GetResultHandler godoc
// @Summary      Get job result
// @Description  Retrieves the full job including the extracted text once the job completed.
// @Tags         Jobs
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse  "Full job with result or error"
// @Failure      404  {object}  api.JobResponse  "Job not found"
// @Router       /ocr/result/{jobId} [get]
func GetResultHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	jobId := utils.GetChiURLParam(r, "jobId")
	job, err := handlerInstance.service.GetResult(r.Context(), jobId)
	if err != nil {
		writeServiceError(w, jobId, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToJobResponse(job))
}

// ListFilesHandler godoc
// @Summary      List uploaded files
// @Tags         Files
// @Produce      json
// @Success      200  {array}  api.FileInfo  "Uploads ordered by upload time"
// @Router       /ocr/files [get]
func ListFilesHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToFileInfoList(handlerInstance.service.ListFiles(r.Context())))
}

// DeleteFileHandler godoc
// @Summary      Delete an uploaded file
// @Tags         Files
// @Produce      json
// @Param        fileId  path  string  true  "File ID"
// @Success      204  "File deleted"
// @Failure      404  {object}  api.JobResponse  "File not found"
// @Router       /ocr/file/{fileId} [delete]
func DeleteFileHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	fileId := utils.GetChiURLParam(r, "fileId")
	if err := handlerInstance.service.DeleteFile(r.Context(), fileId); err != nil {
		writeServiceError(w, fileId, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthHandler godoc
// @Summary      Service health
// @Description  Reports whether the extraction backend is reachable.
// @Tags         Service
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	reachable := handlerInstance.service.CheckHealth(r.Context())
	status := "ok"
	if !reachable {
		status = "degraded"
	}
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{Status: status, Extractor: reachable})
}

// ConfigHandler godoc
// @Summary      Effective service configuration
// @Tags         Service
// @Produce      json
// @Success      200  {object}  api.ConfigResponse
// @Router       /config [get]
func ConfigHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.ConfigResponse{
		Provider:      config.GetEnv(config.ExtractorProviderEnv, "ollama"),
		Model:         config.GetEnv("OLLAMA_MODEL", config.OllamaModel),
		MaxPages:      config.MaxPages,
		MaxUploadSize: config.MaxUploadSize,
		DefaultPrompt: config.DefaultPrompt,
	})
}

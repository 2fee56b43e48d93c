package middleware

import (
	"net/http"
	"strconv"

	"github.com/dkrish/GoOCR/internal/handlers"
	"github.com/dkrish/GoOCR/internal/metrics"
	"github.com/dkrish/GoOCR/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
	id           string
}

var GetHandler = Wrap(handlers.GetHandler)
var HealthHandler = Wrap(handlers.HealthHandler)
var ConfigHandler = Wrap(handlers.ConfigHandler)

var UploadHandler = Wrap(handlers.UploadHandler)
var ProcessFileHandler = Wrap(handlers.ProcessFileHandler)
var ProcessURLHandler = Wrap(handlers.ProcessURLHandler)
var ProcessBase64Handler = Wrap(handlers.ProcessBase64Handler)
var ProcessPathHandler = Wrap(handlers.ProcessPathHandler)
var GetStatusHandler = Wrap(handlers.GetStatusHandler)
var GetResultHandler = Wrap(handlers.GetResultHandler)
var ListFilesHandler = Wrap(handlers.ListFilesHandler)
var DeleteFileHandler = Wrap(handlers.DeleteFileHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re.logger.Info("New request received")
	re = injectTrace(re)
	re = authenticate(re)
	if re.badRequest.isBadRequest {
		return re //stop if auth fails
	}
	re = rateLimiter(re)
	return re
}

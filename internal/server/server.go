package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/dkrish/GoOCR/internal/adapter/utils"
	"github.com/dkrish/GoOCR/internal/config"
	"github.com/dkrish/GoOCR/internal/middleware"
	"github.com/dkrish/GoOCR/pkg/logger_i"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	DrainJobs        func() //blocks until in-flight jobs reach a terminal state
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string) {
	_logger = logger_i.NewLogger("Server")

	r := utils.GetRouter()

	r.Router.Get("/", middleware.GetHandler)
	r.Router.Get("/health", middleware.HealthHandler)
	r.Router.Get("/config", middleware.ConfigHandler)

	r.Router.Post("/ocr/upload", middleware.UploadHandler)
	r.Router.Post("/ocr/process", middleware.ProcessFileHandler)
	r.Router.Post("/ocr/process-url", middleware.ProcessURLHandler)
	r.Router.Post("/ocr/process-base64", middleware.ProcessBase64Handler)
	r.Router.Post("/ocr/process-path", middleware.ProcessPathHandler)
	r.Router.Get("/ocr/status/{jobId}", middleware.GetStatusHandler)
	r.Router.Get("/ocr/result/{jobId}", middleware.GetResultHandler)
	r.Router.Get("/ocr/files", middleware.ListFilesHandler)
	r.Router.Delete("/ocr/file/{fileId}", middleware.DeleteFileHandler)

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error :", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	println("\nServer is shutting down", state)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully: %s", err)
		}

		//let running jobs finish before the stores go away
		shutdownParams.DrainJobs()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully shutting down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}

// @title           Document OCR API
// @version         1.0
// @description     This API handles asynchronous OCR extraction from PDFs and images.
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/dkrish/GoOCR/internal/config"
	"github.com/dkrish/GoOCR/internal/data/store"
	jobmodel "github.com/dkrish/GoOCR/internal/domain/jobModel"
	"github.com/dkrish/GoOCR/internal/handlers"
	"github.com/dkrish/GoOCR/internal/ocr"
	"github.com/dkrish/GoOCR/internal/ocr/extractor"
	"github.com/dkrish/GoOCR/internal/rasterizer"
	"github.com/dkrish/GoOCR/internal/server"
	"github.com/dkrish/GoOCR/internal/storage"
	"github.com/dkrish/GoOCR/pkg/logger_i"
)

var listenAddr string

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//jobs live in redis when it's up, in memory otherwise
	var jobStore jobmodel.JobStore
	if redisJobs := store.GetRedisJobStore(serviceContext); redisJobs != nil {
		jobStore = redisJobs
	} else {
		logger.Error("Redis job store is offline, falling back to in-memory")
		jobStore = store.InitInMemoryJobStore()
	}
	fileStore := store.InitInMemoryFileStore()

	storageService, err := storage.NewService(config.GetEnv("UPLOAD_DIR", config.UploadDir))
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		return
	}

	provider, err := buildProvider(serviceContext, logger)
	if err != nil {
		logger.Error("Failed to initialize extraction provider. Shutting down.", "error", err)
		return
	}
	if !provider.CheckHealth(serviceContext) {
		logger.Warn("Extraction backend unreachable at startup", "provider", provider.Name())
	}

	ocrService := ocr.NewService(jobStore, fileStore, provider, rasterizer.NewPDFRasterizer(), storageService)
	handlers.InitOcrHandler(ocrService)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		DrainJobs:        ocrService.Drain,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func buildProvider(ctx context.Context, logger *logger_i.Logger) (extractor.Provider, error) {
	policy := extractor.RetryPolicy{
		MaxRetries: config.ExtractMaxRetries,
		BaseDelay:  config.ExtractRetryDelay,
		Timeout:    config.ExtractTimeout,
	}

	if config.GetEnv(config.ExtractorProviderEnv, "ollama") == "gemini" {
		logger.Info("Using gemini extraction provider")
		return extractor.NewGeminiClient(ctx, os.Getenv("GEMINI_API_KEY"), config.GetEnv("GEMINI_MODEL", config.GeminiModelName), policy)
	}

	logger.Info("Using ollama extraction provider")
	return extractor.NewOllamaClient(
		config.GetEnv("OLLAMA_HOST", config.OllamaHost),
		config.GetEnv("OLLAMA_MODEL", config.OllamaModel),
		policy,
	), nil
}

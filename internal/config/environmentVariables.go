package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	NoAuthBypass = true //dev only - set false and provide AuthToken for prod
	AuthToken    = ""

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//extractor - ollama is the default provider
	OllamaHost           = "http://localhost:11434"
	OllamaModel          = "deepseek-ocr"
	ExtractTimeout       = 5 * time.Minute //per attempt, the call is cancelled past this
	ExtractMaxRetries    = 3
	ExtractRetryDelay    = 1 * time.Second //linear: delay * attempt
	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	ExtractorProviderEnv = "EXTRACTOR_PROVIDER" //"ollama" (default) or "gemini"

	//ocr defaults
	DefaultPrompt       = "Extract all text from this image."
	DefaultLanguage     = "auto"
	DefaultOutputFormat = "text"
	MaxPages            = 100 //documented limit, the rasterizer rejects beyond this
	PageBreakSeparator  = "\n\n--- Page Break ---\n\n"

	//storage
	UploadDir     = "./uploads"
	MaxUploadSize = 50 << 20 //50mb

	//rasterizer - favors OCR fidelity over output size
	RasterizeScale = 2.0

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword = ""

	//redis has 16 DB we can use
	RedisJobStore = 0

	RedisJobStoreTTL = 24 * time.Hour
)

// AllowedMimeTypes is the upload allow-list. Anything else is rejected at
// the upload boundary, before a file record exists.
var AllowedMimeTypes = []string{"application/pdf", "image/png", "image/jpeg"}

func GetEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Command mcp exposes the OCR pipeline over the Model Context Protocol on
// stdio, so local agents can submit documents without the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dkrish/GoOCR/internal/adapter"
	"github.com/dkrish/GoOCR/internal/config"
	"github.com/dkrish/GoOCR/internal/data/store"
	"github.com/dkrish/GoOCR/internal/ocr"
	"github.com/dkrish/GoOCR/internal/ocr/extractor"
	"github.com/dkrish/GoOCR/internal/rasterizer"
	"github.com/dkrish/GoOCR/internal/storage"
	"github.com/dkrish/GoOCR/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type processPathArgs struct {
	Path   string `json:"path" jsonschema:"absolute path to a PDF or image file on this machine"`
	Prompt string `json:"prompt,omitempty" jsonschema:"optional extraction prompt"`
}

type getResultArgs struct {
	JobId string `json:"jobId" jsonschema:"id returned by ocr_process_path"`
}

func main() {
	logger_i.Init()
	logger := logger_i.NewLogger("mcp")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storageService, err := storage.NewService(config.GetEnv("UPLOAD_DIR", config.UploadDir))
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	policy := extractor.RetryPolicy{
		MaxRetries: config.ExtractMaxRetries,
		BaseDelay:  config.ExtractRetryDelay,
		Timeout:    config.ExtractTimeout,
	}
	provider := extractor.NewOllamaClient(
		config.GetEnv("OLLAMA_HOST", config.OllamaHost),
		config.GetEnv("OLLAMA_MODEL", config.OllamaModel),
		policy,
	)

	//stdio sessions are single-user, the in-memory stores are enough
	ocrService := ocr.NewService(store.InitInMemoryJobStore(), store.InitInMemoryFileStore(), provider, rasterizer.NewPDFRasterizer(), storageService)

	server := mcp.NewServer(&mcp.Implementation{Name: "goocr", Version: "1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ocr_process_path",
		Description: "Start asynchronous OCR on a PDF or image file. Returns a job id to poll with ocr_get_result.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args processPathArgs) (*mcp.CallToolResult, any, error) {
		job, err := ocrService.ProcessPath(ctx, args.Path, ocr.ProcessRequest{Prompt: args.Prompt})
		if err != nil {
			return nil, nil, err
		}
		return textResult(adapter.ToInitJobResponse(job))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ocr_get_result",
		Description: "Fetch the current state of an OCR job, including the extracted text once completed.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args getResultArgs) (*mcp.CallToolResult, any, error) {
		job, err := ocrService.GetResult(ctx, args.JobId)
		if err != nil {
			return nil, nil, err
		}
		return textResult(adapter.ToJobResponse(job))
	})

	logger.Info("MCP server listening on stdio")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Error("MCP server stopped", "error", err)
		os.Exit(1)
	}
	ocrService.Drain()
}

func textResult(payload any) (*mcp.CallToolResult, any, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding tool result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

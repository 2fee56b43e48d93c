package extractor

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dkrish/GoOCR/internal/config"
	"github.com/dkrish/GoOCR/internal/customHttpClient"
	"github.com/dkrish/GoOCR/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ollamaClient talks to an Ollama-hosted vision model through its
// OpenAI-compatible endpoint. SDK-internal retries are disabled so the
// linear-backoff policy in runWithRetries is the only retry loop.
type ollamaClient struct {
	client    openai.Client
	baseURL   string
	modelName string
	policy    RetryPolicy
	logger    *logger_i.Logger
}

func NewOllamaClient(baseURL string, modelName string, policy RetryPolicy) Provider {
	return &ollamaClient{
		client: openai.NewClient(
			option.WithBaseURL(strings.TrimRight(baseURL, "/")+"/v1"),
			option.WithAPIKey("ollama"), //ollama ignores the key but the SDK requires one
			option.WithHTTPClient(customHttpClient.Pooled),
			option.WithMaxRetries(0),
		),
		baseURL:   strings.TrimRight(baseURL, "/"),
		modelName: modelName,
		policy:    policy,
		logger:    logger_i.NewLogger("extractor_ollama"),
	}
}

func (c *ollamaClient) Extract(ctx context.Context, imageB64 string, mimeType string, prompt string) (Extraction, error) {
	if prompt == "" {
		prompt = config.DefaultPrompt
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, imageB64)

	return runWithRetries(ctx, c.logger, c.policy, func(attemptCtx context.Context) (Extraction, error) {
		completion, err := c.client.Chat.Completions.New(attemptCtx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(c.modelName),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
					openai.TextContentPart(prompt),
					openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
						URL: dataURL,
					}),
				}),
			},
		})
		if err != nil {
			return Extraction{}, err
		}
		if len(completion.Choices) == 0 {
			return Extraction{}, fmt.Errorf("no choices in completion response")
		}

		model := completion.Model
		if model == "" {
			model = c.modelName
		}
		return Extraction{
			Text:  completion.Choices[0].Message.Content,
			Model: model,
		}, nil
	})
}

// CheckHealth probes the native tags endpoint, which answers even when no
// model is loaded. Never returns an error, only reachability.
func (c *ollamaClient) CheckHealth(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := customHttpClient.Pooled.Do(req)
	if err != nil {
		c.logger.Error("Health check failed", "error", err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *ollamaClient) Model() string {
	return c.modelName
}

func (c *ollamaClient) Name() string {
	return "ollama"
}

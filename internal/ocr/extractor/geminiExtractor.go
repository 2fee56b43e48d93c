package extractor

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/dkrish/GoOCR/internal/config"
	"github.com/dkrish/GoOCR/pkg/logger_i"
	"google.golang.org/genai"
)

type geminiClient struct {
	client    *genai.Client
	modelName string
	policy    RetryPolicy
	logger    *logger_i.Logger
}

// NewGeminiClient is the hosted alternative to the local Ollama provider,
// selected with EXTRACTOR_PROVIDER=gemini.
func NewGeminiClient(ctx context.Context, apikey string, modelName string, policy RetryPolicy) (Provider, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiClient{
		client:    c,
		modelName: modelName,
		policy:    policy,
		logger:    logger_i.NewLogger("extractor_gemini"),
	}, nil
}

func (c *geminiClient) Extract(ctx context.Context, imageB64 string, mimeType string, prompt string) (Extraction, error) {
	if prompt == "" {
		prompt = config.DefaultPrompt
	}

	raw, err := base64.StdEncoding.DecodeString(imageB64)
	if err != nil {
		return Extraction{}, fmt.Errorf("decoding page image: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: raw}},
			},
		},
	}

	return runWithRetries(ctx, c.logger, c.policy, func(attemptCtx context.Context) (Extraction, error) {
		result, err := c.client.Models.GenerateContent(attemptCtx, c.modelName, contents, nil)
		if err != nil {
			return Extraction{}, err
		}
		return Extraction{
			Text:  result.Text(),
			Model: c.modelName,
		}, nil
	})
}

// CheckHealth reports construction-time reachability only; the hosted API
// has no cheap probe worth a billable call.
func (c *geminiClient) CheckHealth(ctx context.Context) bool {
	return c.client != nil
}

func (c *geminiClient) Model() string {
	return c.modelName
}

func (c *geminiClient) Name() string {
	return "gemini"
}

package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// OpenAIClient implements domain.TextGenerator against an OpenAI-compatible
// chat completion endpoint via LangchainGo. It classifies transport outcomes
// only; content validation belongs to the response parser.
type OpenAIClient struct {
	llm         llms.Model
	maxTokens   int
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

// NewOpenAIClient creates a new OpenAIClient. A missing API key is a fatal
// configuration error here, at construction, not per call.
func NewOpenAIClient(cfg config.GenerationConfig, logger *zap.Logger) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("generation API key is not configured")
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger.Info("Initialized generation client",
		zap.String("model", cfg.Model),
		zap.Duration("timeout", timeout))

	return &OpenAIClient{
		llm:         llm,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     timeout,
		logger:      logger,
	}, nil
}

// Complete sends the system and user instructions to the backend and returns
// the raw completion text. Timeouts and backend failures surface as errors
// for the caller to classify as retryable or not.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	resp, err := c.llm.GenerateContent(ctx, messages,
		llms.WithMaxTokens(c.maxTokens),
		llms.WithTemperature(c.temperature),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.logger.Error("Generation request timed out", zap.Duration("timeout", c.timeout))
			return "", fmt.Errorf("generation request timed out: %w", err)
		}
		c.logger.Error("Generation backend call failed", zap.Error(err))
		return "", fmt.Errorf("generation backend call failed: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		c.logger.Error("Generation backend returned an empty completion")
		return "", fmt.Errorf("generation backend returned an empty completion")
	}

	return resp.Choices[0].Content, nil
}

var _ domain.TextGenerator = (*OpenAIClient)(nil)

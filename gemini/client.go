package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"go.uber.org/zap"

	"github.com/fljobs/backend/agent"
	"github.com/fljobs/backend/config"
	"github.com/fljobs/backend/logger"
)

// Client wraps the Vertex AI Gemini client as a text generator
type Client struct {
	client    *genai.Client
	projectID string
	location  string
	modelName string
	logger    *zap.Logger
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("vertex ai: %w", agent.ErrBackendUnavailable)
	}

	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:    client,
		projectID: cfg.ProjectID,
		location:  cfg.Location,
		modelName: cfg.GeminiModel,
		logger:    logger.WithCommonFields(log, "vertexai", cfg.GeminiModel).Named("gemini"),
	}, nil
}

// Close closes the Gemini client
func (c *Client) Close() error {
	return c.client.Close()
}

// Generate sends the prompt with the given sampling parameters.
// A model handle is built per call since its config is mutable.
func (c *Client) Generate(ctx context.Context, prompt string, params agent.GenerationParams) (string, error) {
	model := c.client.GenerativeModel(c.modelName)
	model.SetMaxOutputTokens(params.MaxOutputTokens)
	model.SetTemperature(params.Temperature)
	model.SetTopP(params.TopP)
	if penalty := frequencyPenalty(params.RepetitionPenalty); penalty != 0 {
		model.GenerationConfig.FrequencyPenalty = &penalty
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", errors.New("no response from Gemini")
	}

	c.logger.Debug("Generated content",
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("response_chars", len(text)))
	return text, nil
}

// frequencyPenalty maps a multiplicative repetition penalty (1 = none) onto
// Gemini's additive frequency penalty
func frequencyPenalty(repetition float32) float32 {
	if repetition <= 1 {
		return 0
	}
	return repetition - 1
}

// Helper functions

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return strings.TrimSpace(sb.String())
}

var _ agent.TextGenerator = (*Client)(nil)

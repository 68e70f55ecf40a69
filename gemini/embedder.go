package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/fljobs/backend/agent"
	"github.com/fljobs/backend/config"
	"github.com/fljobs/backend/logger"
	"github.com/fljobs/backend/utils"
)

// Embedder computes text embeddings through the Google GenAI SDK.
// An API key selects the Gemini API backend, otherwise Vertex AI is used.
type Embedder struct {
	client    *genai.Client
	modelName string
	logger    *zap.Logger
}

// NewEmbedder creates an Embedder from configuration
func NewEmbedder(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Embedder, error) {
	clientCfg := &genai.ClientConfig{
		HTTPClient: utils.NewHTTPClient(cfg.AITimeout),
	}

	provider := "gemini-api"
	switch {
	case strings.TrimSpace(cfg.GeminiAPIKey) != "":
		clientCfg.APIKey = strings.TrimSpace(cfg.GeminiAPIKey)
		clientCfg.Backend = genai.BackendGeminiAPI
	case cfg.ProjectID != "":
		clientCfg.Project = cfg.ProjectID
		clientCfg.Location = cfg.Location
		clientCfg.Backend = genai.BackendVertexAI
		provider = "vertexai"
	default:
		return nil, fmt.Errorf("embeddings: %w", agent.ErrBackendUnavailable)
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Embedder{
		client:    client,
		modelName: cfg.EmbeddingModel,
		logger:    logger.WithCommonFields(log, provider, cfg.EmbeddingModel).Named("embedder"),
	}, nil
}

// Embed returns the embedding vector for text
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Models.EmbedContent(ctx, e.modelName, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, errors.New("genai returned no embeddings")
	}

	values := resp.Embeddings[0].Values
	e.logger.Debug("Embedded text", zap.Int("chars", len(text)), zap.Int("dimensions", len(values)))
	return values, nil
}

// Model returns the embedding model name
func (e *Embedder) Model() string {
	return e.modelName
}

var _ agent.Embedder = (*Embedder)(nil)

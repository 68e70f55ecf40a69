package agent

import (
	"context"
	"io"
)

// Embedder maps text to a fixed-length vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// TextGenerator produces free-form text for a prompt
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// GenerationParams are the sampling settings sent with every generation call
type GenerationParams struct {
	MaxOutputTokens   int32
	Temperature       float32
	TopP              float32
	RepetitionPenalty float32
}

// DefaultGenerationParams returns the parameters used for job posts and match analysis
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		MaxOutputTokens:   800,
		Temperature:       0.7,
		TopP:              0.9,
		RepetitionPenalty: 1.1,
	}
}

// GeneratorFactory acquires the text generation backend
type GeneratorFactory func(ctx context.Context) (TextGenerator, error)

// EmbedderFactory acquires the embedding backend
type EmbedderFactory func(ctx context.Context) (Embedder, error)

// backends is the immutable pair published once both are acquired
type backends struct {
	generator TextGenerator
	embedder  Embedder
}

func closeBackend(v any) error {
	if c, ok := v.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

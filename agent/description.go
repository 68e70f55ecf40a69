package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fljobs/backend/logger"
	"github.com/fljobs/backend/models"
)

// DescriptionGenerator turns raw job fields into an enhanced description,
// a short summary and a display post
type DescriptionGenerator struct {
	params  GenerationParams
	timeout time.Duration
	logger  *zap.Logger
}

// NewDescriptionGenerator creates a DescriptionGenerator
func NewDescriptionGenerator(params GenerationParams, timeout time.Duration, log *zap.Logger) *DescriptionGenerator {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &DescriptionGenerator{params: params, timeout: timeout, logger: logger.OrNop(log)}
}

// Generate uses gen when it is non-nil and falls back to the fixed template
// when gen is nil or any generation step fails
func (g *DescriptionGenerator) Generate(ctx context.Context, gen TextGenerator, fields models.JobFields) models.GenerationResult {
	if gen == nil {
		return templateDescription(fields)
	}

	result, err := g.generateWithAI(ctx, gen, fields)
	if err != nil {
		g.logger.Error("Job description generation failed, using template",
			zap.String("position", fields.Position),
			zap.Error(err))
		return templateDescription(fields)
	}
	return result
}

func (g *DescriptionGenerator) generateWithAI(ctx context.Context, gen TextGenerator, fields models.JobFields) (models.GenerationResult, error) {
	description, err := g.call(ctx, gen, descriptionPrompt(fields))
	if err != nil {
		return models.GenerationResult{}, fmt.Errorf("description: %w", err)
	}

	summary, err := g.call(ctx, gen, summaryPrompt(description))
	if err != nil {
		return models.GenerationResult{}, fmt.Errorf("summary: %w", err)
	}

	return models.GenerationResult{
		EnhancedDescription: description,
		Summary:             summary,
		FormattedPost:       formatPost(fields, description),
		AIEnhanced:          true,
	}, nil
}

func (g *DescriptionGenerator) call(ctx context.Context, gen TextGenerator, prompt string) (string, error) {
	return generate(ctx, gen, prompt, g.params, g.timeout, g.logger)
}

// generate runs one bounded backend call. Blank output counts as a failure.
func generate(ctx context.Context, gen TextGenerator, prompt string, params GenerationParams, timeout time.Duration, log *zap.Logger) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	text, err := gen.Generate(ctx, prompt, params)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyGeneration
	}

	log.Debug("Generated text",
		zap.Duration("elapsed", time.Since(start)),
		zap.String("prompt", logger.TruncateForLog(prompt, 120)),
		zap.String("response", logger.TruncateForLog(text, 200)))
	return text, nil
}

func formatPost(f models.JobFields, description string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏪 **%s**\n", orDefault(f.Position, "Job Position"))
	fmt.Fprintf(&sb, "📍 %s - %s\n\n", orDefault(f.StoreName, "Company"), orDefault(f.Location, "Location"))
	sb.WriteString(description)
	sb.WriteString("\n\n📋 **Quick Details:**\n")
	fmt.Fprintf(&sb, "• Work Hours: %s\n", orDefault(f.WorkHours, "TBD"))
	fmt.Fprintf(&sb, "• Wage: %s\n\n", orDefault(f.Wage, "Competitive"))
	sb.WriteString("📞 **How to Apply:** Contact us to learn more about this opportunity.")
	return sb.String()
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

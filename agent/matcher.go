package agent

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fljobs/backend/logger"
	"github.com/fljobs/backend/models"
)

// MatchScorer scores candidates against job requirements using embeddings
// plus a generated analysis, or keyword overlap when AI is unavailable
type MatchScorer struct {
	params  GenerationParams
	timeout time.Duration
	jitter  JitterFunc
	logger  *zap.Logger
}

// NewMatchScorer creates a MatchScorer. A nil jitter uses DefaultJitter.
func NewMatchScorer(params GenerationParams, timeout time.Duration, jitter JitterFunc, log *zap.Logger) *MatchScorer {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	if jitter == nil {
		jitter = DefaultJitter
	}
	return &MatchScorer{params: params, timeout: timeout, jitter: jitter, logger: logger.OrNop(log)}
}

// Score takes the embedding path when both backends are non-nil. Any failure
// on that path reruns the whole call on keyword matching.
func (m *MatchScorer) Score(ctx context.Context, emb Embedder, gen TextGenerator, jobRequirements string, profile models.CandidateProfile) models.MatchResult {
	if emb == nil || gen == nil {
		return keywordMatch(jobRequirements, profile, m.jitter)
	}

	result, err := m.scoreWithAI(ctx, emb, gen, jobRequirements, profile)
	if err != nil {
		m.logger.Error("Match scoring failed, using keyword matching", zap.Error(err))
		return keywordMatch(jobRequirements, profile, m.jitter)
	}
	return result
}

func (m *MatchScorer) scoreWithAI(ctx context.Context, emb Embedder, gen TextGenerator, jobRequirements string, profile models.CandidateProfile) (models.MatchResult, error) {
	candidateText := profile.CanonicalText()

	var candidateVec, jobVec []float32
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := m.embed(gctx, emb, candidateText)
		if err != nil {
			return fmt.Errorf("embed candidate: %w", err)
		}
		candidateVec = v
		return nil
	})
	g.Go(func() error {
		v, err := m.embed(gctx, emb, jobRequirements)
		if err != nil {
			return fmt.Errorf("embed job: %w", err)
		}
		jobVec = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.MatchResult{}, err
	}

	similarity, err := CosineSimilarity(candidateVec, jobVec)
	if err != nil {
		return models.MatchResult{}, err
	}
	base := similarity * 100

	analysis, err := generate(ctx, gen, analysisPrompt(candidateText, jobRequirements), m.params, m.timeout, m.logger)
	if err != nil {
		return models.MatchResult{}, fmt.Errorf("analysis: %w", err)
	}

	strengths, gaps, recommendations := analysisLists(analysis)
	m.logger.Debug("Scored match", zap.Float64("embedding_score", base))

	return models.NewMatchResult(models.ClampScore(base), models.MatchAnalysis{
		DetailedAnalysis: analysis,
		EmbeddingScore:   base,
		Strengths:        strengths,
		Gaps:             gaps,
		Recommendations:  recommendations,
	}, true), nil
}

func (m *MatchScorer) embed(ctx context.Context, emb Embedder, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return emb.Embed(ctx, text)
}

// CosineSimilarity returns dot(a,b) / (|a|*|b|)
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, ErrZeroVector
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0, ErrInvalidSimilarity
	}
	return sim, nil
}

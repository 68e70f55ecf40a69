package agent

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fljobs/backend/models"
)

func cashierProfile() models.CandidateProfile {
	return models.CandidateProfile{Skills: models.FlexibleStringSlice{"cashier", "retail"}}
}

func TestScoreMatchFallbackJitterBand(t *testing.T) {
	for j := -5; j <= 15; j++ {
		svc := NewService(nil, nil, WithJitter(fixedJitter(j)))
		svc.Initialize(context.Background())

		res := svc.ScoreMatch(context.Background(), "cashier retail", cashierProfile())

		assert.GreaterOrEqual(t, res.MatchScore, 95, "jitter %d", j)
		assert.LessOrEqual(t, res.MatchScore, 100, "jitter %d", j)
		assert.False(t, res.AIEnhanced)
		assert.Equal(t, models.CompatibilityExcellent, res.Compatibility)
		assert.Equal(t, "Based on keyword matching, found 2 matching terms.", res.Analysis.DetailedAnalysis)
	}
}

func TestKeywordMatch(t *testing.T) {
	tests := []struct {
		name    string
		job     string
		profile models.CandidateProfile
		jitter  int
		want    int
	}{
		{"half overlap", "cashier retail manager inventory", cashierProfile(), 0, 50},
		{"jitter floors at zero", "forklift", cashierProfile(), -5, 0},
		{"empty job text", "", cashierProfile(), 7, 7},
		{"empty profile", "cashier", models.CandidateProfile{}, 0, 0},
		{"third rounds down", "cashier barista cook", cashierProfile(), 0, 33},
		{"case and punctuation", "Cashier, RETAIL.", cashierProfile(), 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := keywordMatch(tt.job, tt.profile, fixedJitter(tt.jitter))

			assert.Equal(t, tt.want, res.MatchScore)
			assert.Equal(t, float64(tt.want), res.Analysis.EmbeddingScore)
			assert.Equal(t, models.CompatibilityFor(tt.want), res.Compatibility)
			assert.Equal(t, []string{"Profile contains relevant keywords"}, res.Analysis.Strengths)
			assert.Equal(t, []string{"Some requirements may not be covered"}, res.Analysis.Gaps)
			assert.Equal(t, []string{"Review job requirements and highlight relevant experience"}, res.Analysis.Recommendations)
		})
	}
}

func TestTokenSet(t *testing.T) {
	got := tokenSet("Skills: C++, C#, retail | Go (golang)  ")

	want := map[string]struct{}{
		"skills": {}, "c++": {}, "c#": {}, "retail": {}, "go": {}, "golang": {},
	}
	assert.Equal(t, want, got)
	assert.Empty(t, tokenSet("  |  , "))
}

func TestScoreMatchWithAI(t *testing.T) {
	candidateText := "Skills: cashier, retail"
	emb := &fakeEmbedder{
		Vectors: map[string][]float32{
			candidateText: {1, 0},
			"POS work":    {0.6, 0.8},
		},
	}
	gen := &fakeGenerator{
		GenerateFunc: func(context.Context, string, GenerationParams) (string, error) {
			return "Key Strengths: retail. Potential gaps: POS. We recommend training.", nil
		},
	}
	svc := readyService(gen, emb)

	res := svc.ScoreMatch(context.Background(), "POS work", cashierProfile())

	assert.True(t, res.AIEnhanced)
	assert.Equal(t, 60, res.MatchScore)
	assert.Equal(t, models.CompatibilityFair, res.Compatibility)
	assert.InDelta(t, 60.0, res.Analysis.EmbeddingScore, 1e-4)
	assert.Equal(t, []string{"Relevant experience", "Good skill match"}, res.Analysis.Strengths)
	assert.Equal(t, []string{"Some specialized skills needed"}, res.Analysis.Gaps)
	assert.Equal(t, []string{"Highlight relevant experience", "Consider additional training"}, res.Analysis.Recommendations)

	prompts := gen.calls()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "CANDIDATE PROFILE:\n"+candidateText)
	assert.Contains(t, prompts[0], "JOB REQUIREMENTS:\nPOS work")
	assert.ElementsMatch(t, []string{candidateText, "POS work"}, emb.texts)
}

func TestScoreMatchWithAIClampsNegativeSimilarity(t *testing.T) {
	emb := &fakeEmbedder{
		Vectors: map[string][]float32{"Skills: cashier, retail": {1, 0}},
		Default: []float32{-1, 0},
	}
	svc := readyService(&fakeGenerator{}, emb)

	res := svc.ScoreMatch(context.Background(), "anything", cashierProfile())

	assert.True(t, res.AIEnhanced)
	assert.Equal(t, 0, res.MatchScore)
	assert.Equal(t, models.CompatibilityLimited, res.Compatibility)
	assert.InDelta(t, -100.0, res.Analysis.EmbeddingScore, 1e-6)
	assert.Equal(t, []string{"Profile matches some requirements"}, res.Analysis.Strengths)
	assert.Equal(t, []string{"Minor skill gaps"}, res.Analysis.Gaps)
	assert.Equal(t, []string{"Review and tailor application"}, res.Analysis.Recommendations)
}

func TestScoreMatchAIFailureFallsBack(t *testing.T) {
	boom := errors.New("backend down")

	tests := []struct {
		name string
		emb  *fakeEmbedder
		gen  *fakeGenerator
	}{
		{"embedding error", &fakeEmbedder{EmbedFunc: func(context.Context, string) ([]float32, error) { return nil, boom }}, &fakeGenerator{}},
		{"dimension mismatch", &fakeEmbedder{
			Vectors: map[string][]float32{"Skills: cashier, retail": {1, 0, 0}},
			Default: []float32{1, 0},
		}, &fakeGenerator{}},
		{"zero vector", &fakeEmbedder{Default: []float32{0, 0}}, &fakeGenerator{}},
		{"analysis error", &fakeEmbedder{Default: []float32{1, 1}}, &fakeGenerator{
			GenerateFunc: func(context.Context, string, GenerationParams) (string, error) { return "", boom },
		}},
		{"analysis empty", &fakeEmbedder{Default: []float32{1, 1}}, &fakeGenerator{
			GenerateFunc: func(context.Context, string, GenerationParams) (string, error) { return "", nil },
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.ErrorLevel)
			svc := readyService(tt.gen, tt.emb, WithJitter(fixedJitter(0)), WithLogger(zap.New(core)))

			res := svc.ScoreMatch(context.Background(), "cashier retail", cashierProfile())

			assert.False(t, res.AIEnhanced)
			assert.Equal(t, 100, res.MatchScore)
			assert.Equal(t, "Based on keyword matching, found 2 matching terms.", res.Analysis.DetailedAnalysis)
			assert.Equal(t, 1, logs.FilterMessage("Match scoring failed, using keyword matching").Len())
		})
	}
}

func TestScoreMatchEmbeddingTimeout(t *testing.T) {
	emb := &fakeEmbedder{
		EmbedFunc: func(ctx context.Context, _ string) ([]float32, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	svc := readyService(&fakeGenerator{}, emb, WithTimeout(10*time.Millisecond), WithJitter(fixedJitter(0)))

	res := svc.ScoreMatch(context.Background(), "cashier", cashierProfile())

	assert.False(t, res.AIEnhanced)
	assert.Equal(t, 100, res.MatchScore)
}

func TestScoreMatchAlwaysInRange(t *testing.T) {
	vectors := [][]float32{{1, 0}, {0, 1}, {-1, 0}, {0.5, 0.5}, {-0.2, 0.9}}
	jobs := []string{"", "cashier", "cashier retail inventory", "forklift driver"}

	for _, v := range vectors {
		for _, job := range jobs {
			emb := &fakeEmbedder{Vectors: map[string][]float32{"Skills: cashier, retail": {1, 0}}, Default: v}
			ai := readyService(&fakeGenerator{}, emb).ScoreMatch(context.Background(), job, cashierProfile())
			assert.GreaterOrEqual(t, ai.MatchScore, 0)
			assert.LessOrEqual(t, ai.MatchScore, 100)
		}
	}
	for _, job := range jobs {
		for _, j := range []int{-5, 0, 15} {
			res := keywordMatch(job, cashierProfile(), fixedJitter(j))
			assert.GreaterOrEqual(t, res.MatchScore, 0)
			assert.LessOrEqual(t, res.MatchScore, 100)
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	sim, err := CosineSimilarity([]float32{1, 2, 3}, []float32{2, 4, 6})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)

	sim, err = CosineSimilarity([]float32{1, 0}, []float32{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sim, 1e-9)

	_, err = CosineSimilarity([]float32{1}, []float32{1, 2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = CosineSimilarity([]float32{0, 0}, []float32{1, 2})
	assert.ErrorIs(t, err, ErrZeroVector)

	_, err = CosineSimilarity(nil, nil)
	assert.ErrorIs(t, err, ErrZeroVector)

	_, err = CosineSimilarity([]float32{float32(math.NaN()), 1}, []float32{1, 1})
	assert.ErrorIs(t, err, ErrInvalidSimilarity)
}

func TestAnalysisLists(t *testing.T) {
	s, g, r := analysisLists("STRENGTHS are clear; no GAP worth noting; I Recommend applying")
	assert.Len(t, s, 2)
	assert.Equal(t, []string{"Some specialized skills needed"}, g)
	assert.Len(t, r, 2)

	s, g, r = analysisLists("looks fine")
	assert.Equal(t, []string{"Profile matches some requirements"}, s)
	assert.Equal(t, []string{"Minor skill gaps"}, g)
	assert.Equal(t, []string{"Review and tailor application"}, r)
}

package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fljobs/backend/models"
)

func acmeCashier() models.JobFields {
	return models.JobFields{
		Position:     "Cashier",
		StoreName:    "Acme Mart",
		Location:     "Downtown",
		WorkHours:    "9am-5pm",
		Wage:         "$15/hr",
		Requirements: "POS experience",
	}
}

func TestGenerateJobDescriptionDegraded(t *testing.T) {
	svc := NewService(nil, nil)
	svc.Initialize(context.Background())
	require.Equal(t, StateDegraded, svc.State())

	first := svc.GenerateJobDescription(context.Background(), acmeCashier())
	second := svc.GenerateJobDescription(context.Background(), acmeCashier())

	assert.Equal(t, first, second)
	assert.False(t, first.AIEnhanced)
	for _, want := range []string{"Cashier", "Acme Mart", "Downtown", "$15/hr", "9am-5pm", "POS experience"} {
		assert.Contains(t, first.FormattedPost, want)
	}
	assert.Contains(t, first.FormattedPost, "Various duties as assigned")
	assert.NotContains(t, first.FormattedPost, "AI generation")
	assert.Equal(t, first.EnhancedDescription, first.FormattedPost)
	assert.Equal(t, "Join our team as a Cashier at Acme Mart", first.Summary)
}

func TestTemplateDescriptionExact(t *testing.T) {
	got := templateDescription(acmeCashier())

	want := "**Cashier - Acme Mart**\n\n" +
		"**Location:** Downtown\n" +
		"**Work Hours:** 9am-5pm\n" +
		"**Wage:** $15/hr\n\n" +
		"**Responsibilities:**\nVarious duties as assigned\n\n" +
		"**Requirements:**\nPOS experience\n\n" +
		"We are looking for a dedicated team member to join our growing business."
	assert.Equal(t, want, got.FormattedPost)
}

func TestTemplateDescriptionPlaceholders(t *testing.T) {
	got := templateDescription(models.JobFields{WorkHours: "   "})

	assert.True(t, strings.HasPrefix(got.FormattedPost, "**Position - Company**"))
	assert.Contains(t, got.FormattedPost, "**Location:** TBD")
	assert.Contains(t, got.FormattedPost, "**Work Hours:** TBD")
	assert.Contains(t, got.FormattedPost, "**Wage:** Competitive")
	assert.Contains(t, got.FormattedPost, "Relevant experience preferred")
	assert.Equal(t, "Join our team as a team member at our company", got.Summary)
}

func TestGenerateJobDescriptionWithAI(t *testing.T) {
	gen := &fakeGenerator{
		GenerateFunc: func(_ context.Context, prompt string, _ GenerationParams) (string, error) {
			if strings.HasPrefix(prompt, "Create a brief") {
				return "  Short summary.  ", nil
			}
			return "Full description.", nil
		},
	}
	params := GenerationParams{MaxOutputTokens: 500, Temperature: 0.5, TopP: 0.8, RepetitionPenalty: 1.2}
	svc := readyService(gen, &fakeEmbedder{}, WithGenerationParams(params))

	res := svc.GenerateJobDescription(context.Background(), acmeCashier())

	assert.True(t, res.AIEnhanced)
	assert.Equal(t, "Full description.", res.EnhancedDescription)
	assert.Equal(t, "Short summary.", res.Summary)

	prompts := gen.calls()
	require.Len(t, prompts, 2)
	assert.Contains(t, prompts[0], "Job Title: Cashier")
	assert.Contains(t, prompts[0], "Store/Company: Acme Mart")
	assert.Contains(t, prompts[0], "Benefits and growth opportunities")
	assert.Contains(t, prompts[1], "Full description.")
	assert.Contains(t, prompts[1], "under 100 words")
	for _, p := range gen.params {
		assert.Equal(t, params, p)
	}

	assert.Equal(t, "🏪 **Cashier**\n"+
		"📍 Acme Mart - Downtown\n\n"+
		"Full description.\n\n"+
		"📋 **Quick Details:**\n"+
		"• Work Hours: 9am-5pm\n"+
		"• Wage: $15/hr\n\n"+
		"📞 **How to Apply:** Contact us to learn more about this opportunity.", res.FormattedPost)
}

func TestGenerateJobDescriptionDefaultParams(t *testing.T) {
	gen := &fakeGenerator{}
	svc := readyService(gen, &fakeEmbedder{})

	svc.GenerateJobDescription(context.Background(), acmeCashier())

	require.NotEmpty(t, gen.params)
	assert.Equal(t, DefaultGenerationParams(), gen.params[0])
	assert.Equal(t, int32(800), gen.params[0].MaxOutputTokens)
}

func TestGenerateJobDescriptionFailureFallsBack(t *testing.T) {
	tests := []struct {
		name string
		fn   func(call int) (string, error)
	}{
		{"first call errors", func(int) (string, error) { return "", errors.New("503") }},
		{"summary call errors", func(call int) (string, error) {
			if call == 2 {
				return "", errors.New("503")
			}
			return "desc", nil
		}},
		{"empty output", func(int) (string, error) { return "   ", nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			gen := &fakeGenerator{
				GenerateFunc: func(context.Context, string, GenerationParams) (string, error) {
					calls++
					return tt.fn(calls)
				},
			}
			core, logs := observer.New(zapcore.ErrorLevel)
			svc := readyService(gen, &fakeEmbedder{}, WithLogger(zap.New(core)))

			res := svc.GenerateJobDescription(context.Background(), acmeCashier())

			assert.Equal(t, templateDescription(acmeCashier()), res)
			assert.True(t, svc.IsReady())
			assert.Equal(t, 1, logs.FilterMessage("Job description generation failed, using template").Len())
		})
	}
}

func TestGenerateJobDescriptionEmptyIsSentinel(t *testing.T) {
	gen := &fakeGenerator{
		GenerateFunc: func(context.Context, string, GenerationParams) (string, error) { return "", nil },
	}
	g := NewDescriptionGenerator(DefaultGenerationParams(), time.Second, nil)

	_, err := g.generateWithAI(context.Background(), gen, acmeCashier())

	assert.ErrorIs(t, err, ErrEmptyGeneration)
}

func TestGenerateJobDescriptionTimeout(t *testing.T) {
	gen := &fakeGenerator{
		GenerateFunc: func(ctx context.Context, _ string, _ GenerationParams) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	svc := readyService(gen, &fakeEmbedder{}, WithTimeout(10*time.Millisecond))

	res := svc.GenerateJobDescription(context.Background(), acmeCashier())

	assert.False(t, res.AIEnhanced)
	assert.True(t, svc.IsReady())
}

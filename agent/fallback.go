package agent

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/fljobs/backend/models"
)

// templateDescription renders the fixed posting used when no generator is available.
// The output depends only on fields.
func templateDescription(f models.JobFields) models.GenerationResult {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s - %s**\n\n", orDefault(f.Position, "Position"), orDefault(f.StoreName, "Company"))
	fmt.Fprintf(&sb, "**Location:** %s\n", orDefault(f.Location, "TBD"))
	fmt.Fprintf(&sb, "**Work Hours:** %s\n", orDefault(f.WorkHours, "TBD"))
	fmt.Fprintf(&sb, "**Wage:** %s\n\n", orDefault(f.Wage, "Competitive"))
	fmt.Fprintf(&sb, "**Responsibilities:**\n%s\n\n", orDefault(f.Responsibilities, "Various duties as assigned"))
	fmt.Fprintf(&sb, "**Requirements:**\n%s\n\n", orDefault(f.Requirements, "Relevant experience preferred"))
	sb.WriteString("We are looking for a dedicated team member to join our growing business.")

	post := sb.String()
	return models.GenerationResult{
		EnhancedDescription: post,
		Summary: fmt.Sprintf("Join our team as a %s at %s",
			orDefault(f.Position, "team member"), orDefault(f.StoreName, "our company")),
		FormattedPost: post,
		AIEnhanced:    false,
	}
}

// keywordMatch scores by the share of job tokens present in the candidate text,
// shifted by jitter
func keywordMatch(jobRequirements string, profile models.CandidateProfile, jitter JitterFunc) models.MatchResult {
	jobTokens := tokenSet(jobRequirements)
	candidateTokens := tokenSet(profile.CanonicalText())

	common := 0
	for tok := range jobTokens {
		if _, ok := candidateTokens[tok]; ok {
			common++
		}
	}

	var overlap float64
	if len(jobTokens) > 0 {
		overlap = float64(common) / float64(len(jobTokens)) * 100
	}
	score := models.FloorScore(overlap + float64(jitter()))

	return models.NewMatchResult(score, models.MatchAnalysis{
		DetailedAnalysis: fmt.Sprintf("Based on keyword matching, found %d matching terms.", common),
		EmbeddingScore:   float64(score),
		Strengths:        []string{"Profile contains relevant keywords"},
		Gaps:             []string{"Some requirements may not be covered"},
		Recommendations:  []string{"Review job requirements and highlight relevant experience"},
	}, false)
}

// tokenSet lowercases, splits on whitespace and trims surrounding punctuation.
// '+' and '#' survive so "c++" and "c#" stay distinct tokens.
func tokenSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		tok := strings.TrimFunc(f, func(r rune) bool {
			return r != '+' && r != '#' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}

// analysisLists picks canned strengths, gaps and recommendations based on
// which keywords appear in the free-form analysis. Kept for output compatibility
// with existing clients; it does not read the analysis content beyond that.
func analysisLists(analysis string) (strengths, gaps, recommendations []string) {
	lower := strings.ToLower(analysis)

	strengths = []string{"Profile matches some requirements"}
	if strings.Contains(lower, "strength") {
		strengths = []string{"Relevant experience", "Good skill match"}
	}

	gaps = []string{"Minor skill gaps"}
	if strings.Contains(lower, "gap") {
		gaps = []string{"Some specialized skills needed"}
	}

	recommendations = []string{"Review and tailor application"}
	if strings.Contains(lower, "recommend") {
		recommendations = []string{"Highlight relevant experience", "Consider additional training"}
	}

	return strengths, gaps, recommendations
}

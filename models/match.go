package models

import "math"

// Compatibility is the discrete band a match score falls into
type Compatibility string

const (
	CompatibilityExcellent Compatibility = "Excellent"
	CompatibilityGood      Compatibility = "Good"
	CompatibilityFair      Compatibility = "Fair"
	CompatibilityLimited   Compatibility = "Limited"
)

// Score bounds and band thresholds. Each threshold is the inclusive lower bound of its band.
const (
	MinMatchScore = 0
	MaxMatchScore = 100

	excellentThreshold = 85
	goodThreshold      = 70
	fairThreshold      = 55
)

// CompatibilityFor maps a final match score to its compatibility band
func CompatibilityFor(score int) Compatibility {
	switch {
	case score >= excellentThreshold:
		return CompatibilityExcellent
	case score >= goodThreshold:
		return CompatibilityGood
	case score >= fairThreshold:
		return CompatibilityFair
	default:
		return CompatibilityLimited
	}
}

// ClampScore rounds a raw percentage to the nearest integer inside [0,100].
// NaN maps to 0.
func ClampScore(raw float64) int {
	if math.IsNaN(raw) {
		return MinMatchScore
	}
	return clampInt(int(math.Round(math.Max(math.Min(raw, MaxMatchScore), MinMatchScore))))
}

// FloorScore truncates a raw percentage down to an integer inside [0,100]
func FloorScore(raw float64) int {
	if math.IsNaN(raw) {
		return MinMatchScore
	}
	return clampInt(int(math.Floor(math.Max(math.Min(raw, MaxMatchScore), MinMatchScore))))
}

func clampInt(v int) int {
	if v < MinMatchScore {
		return MinMatchScore
	}
	if v > MaxMatchScore {
		return MaxMatchScore
	}
	return v
}

// MatchAnalysis explains a match score
type MatchAnalysis struct {
	DetailedAnalysis string   `json:"detailed_analysis"`
	EmbeddingScore   float64  `json:"embedding_score"`
	Strengths        []string `json:"strengths"`
	Gaps             []string `json:"gaps"`
	Recommendations  []string `json:"recommendations"`
}

// MatchResult is the outcome of scoring a candidate against a job
type MatchResult struct {
	MatchScore    int           `json:"match_score"`
	Compatibility Compatibility `json:"compatibility"`
	Analysis      MatchAnalysis `json:"analysis"`
	AIEnhanced    bool          `json:"ai_enhanced"`
}

// NewMatchResult clamps the score and derives the compatibility band from it
func NewMatchResult(score int, analysis MatchAnalysis, aiEnhanced bool) MatchResult {
	score = clampInt(score)
	return MatchResult{
		MatchScore:    score,
		Compatibility: CompatibilityFor(score),
		Analysis:      analysis,
		AIEnhanced:    aiEnhanced,
	}
}

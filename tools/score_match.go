package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fljobs/backend/models"
)

// ScoreCandidateMatchTool scores a candidate profile against job requirements
type ScoreCandidateMatchTool struct {
	ai JobAI
}

// NewScoreCandidateMatchTool creates a new match scoring tool
func NewScoreCandidateMatchTool(ai JobAI) *ScoreCandidateMatchTool {
	return &ScoreCandidateMatchTool{ai: ai}
}

func (t *ScoreCandidateMatchTool) Name() string {
	return "score_candidate_match"
}

func (t *ScoreCandidateMatchTool) Description() string {
	return `Score how well a candidate profile matches a job's requirements.
Returns a match score (0-100), a compatibility label (Excellent, Good, Fair, Limited)
and an analysis with strengths, gaps and recommendations.`
}

func (t *ScoreCandidateMatchTool) InputSchema() Schema {
	return objectSchema([]string{"job_requirements", "candidate_profile"}, map[string]Schema{
		"job_requirements":  typed("string", "Free-text job requirements"),
		"candidate_profile": typed("object", "Candidate skills, experience, education, languages and availability"),
	})
}

// ScoreMatchInput represents the input for match scoring
type ScoreMatchInput struct {
	JobRequirements  string                  `json:"job_requirements"`
	CandidateProfile models.CandidateProfile `json:"candidate_profile"`
}

func (t *ScoreCandidateMatchTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in ScoreMatchInput
	if err := json.Unmarshal(input, &in); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}
	if strings.TrimSpace(in.JobRequirements) == "" {
		return NewErrorResult("job_requirements is required")
	}

	return NewSuccessResult(t.ai.ScoreMatch(ctx, in.JobRequirements, in.CandidateProfile))
}

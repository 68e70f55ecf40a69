package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fljobs/backend/models"
)

// GenerateJobDescriptionTool expands raw job fields into a full posting
type GenerateJobDescriptionTool struct {
	ai JobAI
}

// NewGenerateJobDescriptionTool creates a new job description tool
func NewGenerateJobDescriptionTool(ai JobAI) *GenerateJobDescriptionTool {
	return &GenerateJobDescriptionTool{ai: ai}
}

func (t *GenerateJobDescriptionTool) Name() string {
	return "generate_job_description"
}

func (t *GenerateJobDescriptionTool) Description() string {
	return `Turn terse job posting fields into a professional job description.
Returns an enhanced description, a short summary, a display-formatted post,
and ai_enhanced=false when the template fallback was used.`
}

func (t *GenerateJobDescriptionTool) InputSchema() Schema {
	return objectSchema([]string{"position"}, map[string]Schema{
		"position":         typed("string", "Job title, e.g. Cashier"),
		"store_name":       typed("string", "Store or company name"),
		"location":         typed("string", "Neighbourhood or city"),
		"work_hours":       typed("string", "Working hours, e.g. 9am-5pm"),
		"wage":             typed("string", "Pay, e.g. $15/hr"),
		"responsibilities": typed("string", "Basic responsibilities"),
		"requirements":     typed("string", "Basic requirements"),
	})
}

func (t *GenerateJobDescriptionTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var fields models.JobFields
	if err := json.Unmarshal(input, &fields); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}
	if strings.TrimSpace(fields.Position) == "" {
		return NewErrorResult("position is required")
	}

	return NewSuccessResult(t.ai.GenerateJobDescription(ctx, fields))
}

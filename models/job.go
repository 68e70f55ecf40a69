package models

import (
	"encoding/json"
	"strings"
	"time"
)

// FlexibleStringSlice can unmarshal from either a string or []string
type FlexibleStringSlice []string

func (f *FlexibleStringSlice) UnmarshalJSON(data []byte) error {
	// Try to unmarshal as []string first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*f = arr
		return nil
	}

	// Try to unmarshal as string
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str != "" {
			*f = []string{str}
		} else {
			*f = []string{}
		}
		return nil
	}

	// If both fail, return empty slice
	*f = []string{}
	return nil
}

// JobFields are the raw fields an employer fills in for a posting.
// Empty strings mean the field was not supplied.
type JobFields struct {
	Position         string `json:"position" firestore:"position" example:"Cashier"`
	StoreName        string `json:"store_name" firestore:"store_name" example:"Acme Mart"`
	Location         string `json:"location" firestore:"location" example:"Downtown"`
	WorkHours        string `json:"work_hours" firestore:"work_hours" example:"9am-5pm"`
	Wage             string `json:"wage" firestore:"wage" example:"$15/hr"`
	Responsibilities string `json:"responsibilities" firestore:"responsibilities" example:"Handle checkout"`
	Requirements     string `json:"requirements" firestore:"requirements" example:"POS experience"`
}

// RequirementsText returns the text a candidate is scored against.
// The requirements field is used on its own unless position or responsibilities
// add more context, in which case the three are composed.
func (j JobFields) RequirementsText() string {
	parts := make([]string, 0, 3)
	for _, v := range []string{j.Position, j.Responsibilities, j.Requirements} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ". ")
}

// GenerationResult is the output of job description generation
type GenerationResult struct {
	EnhancedDescription string `json:"enhanced_description"`
	Summary             string `json:"summary"`
	FormattedPost       string `json:"formatted_post"`
	AIEnhanced          bool   `json:"ai_enhanced"`
}

// JobListing is a stored job posting created by an employer
type JobListing struct {
	ID string `json:"id" firestore:"-"`

	JobFields

	Summary       string    `json:"summary,omitempty" firestore:"summary"`
	FormattedPost string    `json:"formatted_post,omitempty" firestore:"formatted_post"`
	PostURL       string    `json:"post_url,omitempty" firestore:"post_url,omitempty"`
	AIEnhanced    bool      `json:"ai_enhanced" firestore:"ai_enhanced"`
	CreatedBy     string    `json:"created_by" firestore:"created_by"`
	CreatedAt     time.Time `json:"created_at" firestore:"created_at"`
}

// NewJobListing builds a listing from the submitted fields and the generation output.
// The responsibilities shown to candidates are replaced by the enhanced description.
func NewJobListing(fields JobFields, gen GenerationResult, createdBy string, now time.Time) *JobListing {
	listing := &JobListing{
		JobFields:     fields,
		Summary:       gen.Summary,
		FormattedPost: gen.FormattedPost,
		AIEnhanced:    gen.AIEnhanced,
		CreatedBy:     createdBy,
		CreatedAt:     now,
	}
	if gen.EnhancedDescription != "" {
		listing.Responsibilities = gen.EnhancedDescription
	}
	return listing
}

// LocationJob is a job advertised in a neighbourhood listing
type LocationJob struct {
	ID           int    `json:"id"`
	StoreName    string `json:"store_name"`
	Position     string `json:"position"`
	Location     string `json:"location"`
	Wage         string `json:"wage"`
	Requirements string `json:"requirements"`
	MatchScore   int    `json:"match_score"`
}

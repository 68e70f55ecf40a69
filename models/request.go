package models

// ErrorResponse represents an API error response
// @Description Standard error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Code    int    `json:"code" example:"400"`
	Details string `json:"details,omitempty" example:"email is required"`
}

// HealthResponse represents health check response
// @Description Server health status
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Version   string `json:"version" example:"2.0.0"`
	AIReady   bool   `json:"ai_ready" example:"false"`
	AIState   string `json:"ai_state" example:"degraded"`
	Timestamp string `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}

// RootResponse is returned by the service root
// @Description Service banner with AI availability
type RootResponse struct {
	Message  string `json:"message" example:"FL Jobs API is running"`
	Version  string `json:"version" example:"2.0.0"`
	AIStatus string `json:"ai_status" example:"Limited (Fallback mode)"`
}

// GenerateJobRequest is the body for job creation and preview
// @Description Raw job posting fields
type GenerateJobRequest struct {
	StoreName        string `json:"store_name" binding:"required" example:"Acme Mart"`
	Location         string `json:"location" binding:"required" example:"Downtown"`
	Position         string `json:"position" binding:"required" example:"Cashier"`
	WorkHours        string `json:"work_hours" example:"9am-5pm"`
	Wage             string `json:"wage" example:"$15/hr"`
	Responsibilities string `json:"responsibilities" example:"Handle checkout"`
	Requirements     string `json:"requirements" example:"POS experience"`
}

// Fields converts the request to job fields
func (r GenerateJobRequest) Fields() JobFields {
	return JobFields{
		Position:         r.Position,
		StoreName:        r.StoreName,
		Location:         r.Location,
		WorkHours:        r.WorkHours,
		Wage:             r.Wage,
		Responsibilities: r.Responsibilities,
		Requirements:     r.Requirements,
	}
}

// MatchScoreRequest asks for a candidate/job match.
// Either JobID and CandidateID reference stored records, or JobRequirements and
// CandidateProfile are given inline.
// @Description Match score request
type MatchScoreRequest struct {
	JobID            string            `json:"job_id,omitempty" example:"1"`
	CandidateID      int               `json:"candidate_id,omitempty" example:"1"`
	JobRequirements  string            `json:"job_requirements,omitempty" example:"Fashion retail experience, customer service skills"`
	CandidateProfile *CandidateProfile `json:"candidate_profile,omitempty"`
}

// MatchScoreResponse wraps a match result with the ids it was computed for
// @Description Match score result
type MatchScoreResponse struct {
	JobID       string `json:"job_id,omitempty"`
	CandidateID int    `json:"candidate_id,omitempty"`
	MatchResult
}

// JobListingsResponse lists an employer's postings
// @Description Job listings owned by the caller
type JobListingsResponse struct {
	Jobs  []*JobListing `json:"jobs"`
	Total int           `json:"total"`
}

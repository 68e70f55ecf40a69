package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompatibilityFor(t *testing.T) {
	tests := []struct {
		score int
		want  Compatibility
	}{
		{100, CompatibilityExcellent},
		{85, CompatibilityExcellent},
		{84, CompatibilityGood},
		{70, CompatibilityGood},
		{69, CompatibilityFair},
		{55, CompatibilityFair},
		{54, CompatibilityLimited},
		{0, CompatibilityLimited},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompatibilityFor(tt.score), "score %d", tt.score)
	}
}

func TestClampAndFloorScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-12.3))
	assert.Equal(t, 100, ClampScore(140))
	assert.Equal(t, 85, ClampScore(84.5))
	assert.Equal(t, 84, ClampScore(84.49))
	assert.Equal(t, 0, ClampScore(math.NaN()))
	assert.Equal(t, 100, ClampScore(math.Inf(1)))

	assert.Equal(t, 84, FloorScore(84.99))
	assert.Equal(t, 0, FloorScore(-0.5))
	assert.Equal(t, 100, FloorScore(115))
	assert.Equal(t, 0, FloorScore(math.NaN()))
}

func TestNewMatchResultDerivesCompatibility(t *testing.T) {
	res := NewMatchResult(150, MatchAnalysis{}, true)

	assert.Equal(t, 100, res.MatchScore)
	assert.Equal(t, CompatibilityExcellent, res.Compatibility)
	assert.True(t, res.AIEnhanced)
}

func TestCanonicalText(t *testing.T) {
	tests := []struct {
		name    string
		profile CandidateProfile
		want    string
	}{
		{"skills only", CandidateProfile{Skills: FlexibleStringSlice{"cashier"}}, "Skills: cashier"},
		{"empty", CandidateProfile{}, ""},
		{
			"all fields in order",
			CandidateProfile{
				Availability: "Weekends",
				Languages:    []string{"English", "Telugu"},
				Education:    "B.Com",
				Experience:   "2 years",
				Skills:       FlexibleStringSlice{"cashier", "retail"},
			},
			"Skills: cashier, retail | Experience: 2 years | Education: B.Com | Languages: English, Telugu | Availability: Weekends",
		},
		{
			"blank values skipped",
			CandidateProfile{Skills: FlexibleStringSlice{" ", ""}, Experience: "  ", Languages: []string{"", "Hindi"}},
			"Languages: Hindi",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.CanonicalText())
			assert.Equal(t, tt.want == "", tt.profile.IsEmpty())
		})
	}
}

func TestCandidateProfileSkillsAcceptStringOrList(t *testing.T) {
	var fromString CandidateProfile
	require.NoError(t, json.Unmarshal([]byte(`{"skills":"Customer service, Sales"}`), &fromString))
	assert.Equal(t, "Skills: Customer service, Sales", fromString.CanonicalText())

	var fromList CandidateProfile
	require.NoError(t, json.Unmarshal([]byte(`{"skills":["Customer service","Sales"]}`), &fromList))
	assert.Equal(t, "Skills: Customer service, Sales", fromList.CanonicalText())
}

func TestCandidateProfileFromCandidate(t *testing.T) {
	c := Candidate{Name: "Priya", Skills: "Customer service, Sales", Experience: "2 years", Availability: "Full-time"}

	assert.Equal(t, "Skills: Customer service, Sales | Experience: 2 years | Availability: Full-time", c.Profile().CanonicalText())
}

func TestUserCandidateProfileAndApply(t *testing.T) {
	u := &User{Name: "Old", Skills: []string{"a"}}
	name := "New"
	exp := "3 years"
	u.Apply(UpdateProfileRequest{Name: &name, Experience: &exp, Skills: []string{"cashier"}})

	assert.Equal(t, "New", u.Name)
	assert.Equal(t, "Skills: cashier | Experience: 3 years", u.CandidateProfile().CanonicalText())

	u.Apply(UpdateProfileRequest{})
	assert.Equal(t, "New", u.Name)
}

func TestRequirementsText(t *testing.T) {
	assert.Equal(t, "POS experience", JobFields{Requirements: "POS experience"}.RequirementsText())
	assert.Equal(t, "Cashier. Handle checkout. POS experience",
		JobFields{Position: "Cashier", Responsibilities: "Handle checkout", Requirements: "POS experience"}.RequirementsText())
	assert.Empty(t, JobFields{}.RequirementsText())
}

func TestNewJobListing(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	fields := JobFields{Position: "Cashier", Responsibilities: "Handle checkout"}

	listing := NewJobListing(fields, GenerationResult{EnhancedDescription: "Expanded", Summary: "S", AIEnhanced: true}, "u1", now)
	assert.Equal(t, "Expanded", listing.Responsibilities)
	assert.Equal(t, "S", listing.Summary)
	assert.True(t, listing.AIEnhanced)
	assert.Equal(t, now, listing.CreatedAt)

	listing = NewJobListing(fields, GenerationResult{}, "u1", now)
	assert.Equal(t, "Handle checkout", listing.Responsibilities)
}

func TestJobListingJSONFlattensFields(t *testing.T) {
	data, err := json.Marshal(&JobListing{ID: "1", JobFields: JobFields{Position: "Cashier"}})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "Cashier", m["position"])
	assert.Equal(t, "1", m["id"])
}

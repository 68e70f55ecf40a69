package models

import "strings"

// CandidateProfile is the part of a candidate used for matching
type CandidateProfile struct {
	Skills       FlexibleStringSlice `json:"skills,omitempty" example:"cashier,retail"`
	Experience   string              `json:"experience,omitempty" example:"2 years in fashion retail"`
	Education    string              `json:"education,omitempty" example:"Bachelor's in Business Administration"`
	Languages    []string            `json:"languages,omitempty" example:"English,Telugu"`
	Availability string              `json:"availability,omitempty" example:"Full-time, weekends"`
}

const (
	profileFieldSeparator = " | "
	profileListSeparator  = ", "
)

// CanonicalText renders the profile as a single line used for embedding and
// keyword matching. Fields keep a fixed order and empty ones are left out.
func (p CandidateProfile) CanonicalText() string {
	parts := make([]string, 0, 5)

	add := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			parts = append(parts, label+": "+value)
		}
	}

	add("Skills", joinNonBlank(p.Skills))
	add("Experience", p.Experience)
	add("Education", p.Education)
	add("Languages", joinNonBlank(p.Languages))
	add("Availability", p.Availability)

	return strings.Join(parts, profileFieldSeparator)
}

// IsEmpty reports whether the profile has nothing to match on
func (p CandidateProfile) IsEmpty() bool {
	return p.CanonicalText() == ""
}

func joinNonBlank(items []string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	return strings.Join(kept, profileListSeparator)
}

// Candidate is a job seeker visible to employers
type Candidate struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Skills       string `json:"skills"`
	Experience   string `json:"experience"`
	Education    string `json:"education"`
	Availability string `json:"availability"`
	Avatar       string `json:"avatar"`
}

// Profile returns the matching view of the candidate
func (c Candidate) Profile() CandidateProfile {
	profile := CandidateProfile{
		Experience:   c.Experience,
		Education:    c.Education,
		Availability: c.Availability,
	}
	if c.Skills != "" {
		profile.Skills = FlexibleStringSlice{c.Skills}
	}
	return profile
}

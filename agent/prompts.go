package agent

import (
	"fmt"

	"github.com/fljobs/backend/models"
)

func descriptionPrompt(f models.JobFields) string {
	return fmt.Sprintf(`Create a comprehensive and professional job description based on the following information:

Job Title: %s
Store/Company: %s
Location: %s
Work Hours: %s
Wage: %s
Basic Responsibilities: %s
Basic Requirements: %s

Please create a professional, detailed job description that includes:
1. An engaging job overview
2. Key responsibilities (enhance and expand the basic ones provided)
3. Required qualifications and skills
4. Preferred qualifications
5. Work environment details
6. Benefits and growth opportunities

Make it attractive to potential candidates while being clear about expectations.
Format it professionally for a job posting.`,
		f.Position, f.StoreName, f.Location, f.WorkHours, f.Wage, f.Responsibilities, f.Requirements)
}

func summaryPrompt(description string) string {
	return fmt.Sprintf(`Create a brief, engaging summary (2-3 sentences) for this job posting:

%s

The summary should highlight the key role, location, and main appeal to job seekers.
Keep it under 100 words.`, description)
}

func analysisPrompt(candidateText, jobRequirements string) string {
	return fmt.Sprintf(`Analyze the job match between this candidate and job requirements:

CANDIDATE PROFILE:
%s

JOB REQUIREMENTS:
%s

Provide analysis including:
1. Match score (0-100)
2. Key strengths (what matches well)
3. Potential gaps (what might be missing)
4. Recommendations for improvement

Be specific and helpful in your analysis.`, candidateText, jobRequirements)
}

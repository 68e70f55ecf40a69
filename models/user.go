package models

import "time"

// User represents a registered account
// @Description User account information
type User struct {
	ID                string    `json:"id" firestore:"id" example:"5f0c6a1e-3b52-4a43-9d8e-0d1f9a1f2c11"`
	Name              string    `json:"name" firestore:"name" example:"Priya Sharma"`
	Email             string    `json:"email" firestore:"email" example:"user@example.com"`
	Password          string    `json:"-" firestore:"password"` // Hashed password, never sent to client
	Phone             string    `json:"phone" firestore:"phone" example:"+91 98765 43210"`
	Location          string    `json:"location" firestore:"location" example:"Jubilee Hills"`
	Experience        string    `json:"experience" firestore:"experience"`
	Education         string    `json:"education" firestore:"education"`
	Skills            []string  `json:"skills" firestore:"skills"`
	Languages         []string  `json:"languages" firestore:"languages"`
	Availability      string    `json:"availability" firestore:"availability"`
	PreferredLocation string    `json:"preferred_location" firestore:"preferred_location"`
	Avatar            string    `json:"avatar,omitempty" firestore:"avatar,omitempty"`
	CreatedAt         time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// CandidateProfile returns the matching view of the user
func (u *User) CandidateProfile() CandidateProfile {
	return CandidateProfile{
		Skills:       FlexibleStringSlice(u.Skills),
		Experience:   u.Experience,
		Education:    u.Education,
		Languages:    u.Languages,
		Availability: u.Availability,
	}
}

// Apply copies the supplied profile fields onto the user.
// Nil fields in the request are left untouched.
func (u *User) Apply(req UpdateProfileRequest) {
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Location != nil {
		u.Location = *req.Location
	}
	if req.Experience != nil {
		u.Experience = *req.Experience
	}
	if req.Education != nil {
		u.Education = *req.Education
	}
	if req.Skills != nil {
		u.Skills = req.Skills
	}
	if req.Languages != nil {
		u.Languages = req.Languages
	}
	if req.Availability != nil {
		u.Availability = *req.Availability
	}
	if req.PreferredLocation != nil {
		u.PreferredLocation = *req.PreferredLocation
	}
	if req.Avatar != nil {
		u.Avatar = *req.Avatar
	}
}

// RegisterRequest represents registration request
// @Description User registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Priya Sharma"`
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
	Phone    string `json:"phone" binding:"required" example:"+91 98765 43210"`
	Location string `json:"location" binding:"required" example:"Jubilee Hills"`
}

// LoginRequest represents login request
// @Description User login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// UpdateProfileRequest represents profile update request
// @Description Profile update request; omitted fields are unchanged
type UpdateProfileRequest struct {
	Name              *string  `json:"name,omitempty" example:"Priya Sharma"`
	Phone             *string  `json:"phone,omitempty"`
	Location          *string  `json:"location,omitempty"`
	Experience        *string  `json:"experience,omitempty" example:"2 years in fashion retail"`
	Education         *string  `json:"education,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	Languages         []string `json:"languages,omitempty"`
	Availability      *string  `json:"availability,omitempty"`
	PreferredLocation *string  `json:"preferred_location,omitempty"`
	Avatar            *string  `json:"avatar,omitempty"`
}

// AuthResponse represents authentication response
// @Description Authentication response with JWT token
type AuthResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"bearer"`
	UserID      string `json:"user_id"`
}

// ProfileResponse represents user profile response
// @Description User profile response
type ProfileResponse struct {
	User    *User  `json:"user"`
	Message string `json:"message,omitempty" example:"Profile updated successfully"`
}

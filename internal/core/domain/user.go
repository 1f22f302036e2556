package domain

import "time"

// Identity is the authenticated caller behind a request.
type Identity struct {
	UserID    string
	SessionID string
}

// User models an account holder.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	FullName     string    `json:"full_name"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Company      string    `json:"company,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session binds a signed token to a revocable server-side record.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// CandidateProfile holds the details a candidate needs before applying.
type CandidateProfile struct {
	UserID          string    `json:"user_id"`
	ResumeURL       string    `json:"resume_url,omitempty"`
	Skills          []string  `json:"skills"`
	ExperienceYears int       `json:"experience_years"`
	Education       string    `json:"education,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	LinkedInURL     string    `json:"linkedin_url,omitempty"`
	PortfolioURL    string    `json:"portfolio_url,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RecruiterProfile holds company details shown on a recruiter's jobs.
type RecruiterProfile struct {
	UserID         string    `json:"user_id"`
	CompanyName    string    `json:"company_name"`
	CompanyWebsite string    `json:"company_website,omitempty"`
	CompanySize    string    `json:"company_size,omitempty"`
	Industry       string    `json:"industry,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

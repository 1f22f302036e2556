package ports

import (
	"context"

	"github.com/talentgate/jobboard/internal/core/domain"
)

// Profile is the caller's account together with their role-specific profile.
type Profile struct {
	User      *domain.User
	Candidate *domain.CandidateProfile
	Recruiter *domain.RecruiterProfile
}

// CandidateProfileInput holds candidate profile fields. Nil leaves a field unchanged.
type CandidateProfileInput struct {
	ResumeURL       *string
	Skills          []string
	ExperienceYears *int
	Education       *string
	Bio             *string
	LinkedInURL     *string
	PortfolioURL    *string
}

// RecruiterProfileInput holds recruiter profile fields. Nil leaves a field unchanged.
type RecruiterProfileInput struct {
	CompanyName    *string
	CompanyWebsite *string
	CompanySize    *string
	Industry       *string
	Bio            *string
}

// UpdateProfileInput is a partial update of the caller's own profile.
type UpdateProfileInput struct {
	User      UserDetails
	Candidate *CandidateProfileInput
	Recruiter *RecruiterProfileInput
}

type ProfileService interface {
	Get(ctx context.Context, caller *domain.Identity) (*Profile, error)
	Update(ctx context.Context, caller *domain.Identity, input UpdateProfileInput) (*Profile, error)
}

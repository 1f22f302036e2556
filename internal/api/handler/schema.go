package handler

import (
	"time"

	"github.com/talentgate/jobboard/internal/core/domain"
)

// --- Envelopes ---

type dataResponse struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

type paginatedResponse struct {
	Data       any   `json:"data"`
	Count      int64 `json:"count"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type signupRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Role      string `json:"role"       validate:"required,oneof=candidate recruiter"`
	Company   string `json:"company"`
	Phone     string `json:"phone"      validate:"omitempty,max=32"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// --- Jobs ---
//
// Job and application payloads are checked by the services after the
// authorization check, so a caller without access never learns which
// fields were wrong.

type applyRequest struct {
	CoverLetter string `json:"cover_letter"`
}

type createJobRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"`
	SalaryRange  string   `json:"salary_range"`
	Location     string   `json:"location"`
	Tags         []string `json:"tags"`
	Status       string   `json:"status"`
}

type updateJobRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Requirements *string  `json:"requirements"`
	SalaryRange  *string  `json:"salary_range"`
	Location     *string  `json:"location"`
	Tags         []string `json:"tags"`
	Status       *string  `json:"status"`
}

// --- Applications ---

type reviewRequest struct {
	Status *string `json:"status"`
	Score  *int    `json:"score"`
}

type startPipelineRequest struct {
	Candidates     []string               `json:"candidates"`
	PipelineConfig *pipelineConfigRequest `json:"pipeline_config"`
}

type pipelineConfigRequest struct {
	AutoRejectScore *int     `json:"auto_reject_score"`
	Stages          []string `json:"stages"`
}

type startPipelineResponse struct {
	Updated int64 `json:"updated"`
}

// --- Profile ---

type candidateProfileRequest struct {
	ResumeURL       *string  `json:"resume_url"       validate:"omitempty,url"`
	Skills          []string `json:"skills"           validate:"omitempty,dive,required"`
	ExperienceYears *int     `json:"experience_years" validate:"omitempty,gte=0"`
	Education       *string  `json:"education"`
	Bio             *string  `json:"bio"`
	LinkedInURL     *string  `json:"linkedin_url"     validate:"omitempty,url"`
	PortfolioURL    *string  `json:"portfolio_url"    validate:"omitempty,url"`
}

type recruiterProfileRequest struct {
	CompanyName    *string `json:"company_name"    validate:"omitempty,min=1"`
	CompanyWebsite *string `json:"company_website" validate:"omitempty,url"`
	CompanySize    *string `json:"company_size"`
	Industry       *string `json:"industry"`
	Bio            *string `json:"bio"`
}

type updateProfileRequest struct {
	FirstName *string                  `json:"first_name"`
	LastName  *string                  `json:"last_name"`
	Phone     *string                  `json:"phone"`
	Company   *string                  `json:"company"`
	AvatarURL *string                  `json:"avatar_url" validate:"omitempty,url"`
	Candidate *candidateProfileRequest `json:"candidate_profile"`
	Recruiter *recruiterProfileRequest `json:"recruiter_profile"`
}

type profileResponse struct {
	User      *domain.User             `json:"user"`
	Candidate *domain.CandidateProfile `json:"candidate_profile,omitempty"`
	Recruiter *domain.RecruiterProfile `json:"recruiter_profile,omitempty"`
}

// --- Admin ---

type changeRoleRequest struct {
	Role string `json:"role"`
}

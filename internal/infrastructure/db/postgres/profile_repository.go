package postgres

import (
	"context"
	"fmt"

	"github.com/talentgate/jobboard/internal/core/domain"
)

// ProfileRepository implements ports.ProfileRepository on the
// candidate_profiles and recruiter_profiles tables.
type ProfileRepository struct {
	db DB
}

func NewProfileRepository(db DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const candidateColumns = `user_id::text, resume_url, skills, experience_years, education, bio,
	linkedin_url, portfolio_url, updated_at`

func (r *ProfileRepository) scanCandidate(ctx context.Context, sql string, args ...any) (*domain.CandidateProfile, error) {
	var (
		p   domain.CandidateProfile
		exp int32
	)
	err := r.db.QueryRow(ctx, sql, args...).Scan(&p.UserID, &p.ResumeURL, &p.Skills, &exp,
		&p.Education, &p.Bio, &p.LinkedInURL, &p.PortfolioURL, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.ExperienceYears = int(exp)
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return &p, nil
}

func (r *ProfileRepository) FindCandidate(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	p, err := r.scanCandidate(ctx, `SELECT `+candidateColumns+` FROM candidate_profiles WHERE user_id = $1`, userID)
	if err != nil {
		if isMissing(err) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find candidate profile: %w", err)
	}
	return p, nil
}

func (r *ProfileRepository) UpsertCandidate(ctx context.Context, in *domain.CandidateProfile) (*domain.CandidateProfile, error) {
	skills := in.Skills
	if skills == nil {
		skills = []string{}
	}
	p, err := r.scanCandidate(ctx, `
		INSERT INTO candidate_profiles (user_id, resume_url, skills, experience_years, education, bio, linkedin_url, portfolio_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			resume_url       = EXCLUDED.resume_url,
			skills           = EXCLUDED.skills,
			experience_years = EXCLUDED.experience_years,
			education        = EXCLUDED.education,
			bio              = EXCLUDED.bio,
			linkedin_url     = EXCLUDED.linkedin_url,
			portfolio_url    = EXCLUDED.portfolio_url,
			updated_at       = now()
		RETURNING `+candidateColumns,
		in.UserID, in.ResumeURL, skills, int32(in.ExperienceYears), in.Education, in.Bio,
		in.LinkedInURL, in.PortfolioURL)
	if err != nil {
		return nil, fmt.Errorf("upsert candidate profile: %w", err)
	}
	return p, nil
}

const recruiterColumns = `user_id::text, company_name, company_website, company_size, industry, bio, updated_at`

func (r *ProfileRepository) scanRecruiter(ctx context.Context, sql string, args ...any) (*domain.RecruiterProfile, error) {
	var p domain.RecruiterProfile
	err := r.db.QueryRow(ctx, sql, args...).Scan(&p.UserID, &p.CompanyName, &p.CompanyWebsite,
		&p.CompanySize, &p.Industry, &p.Bio, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) FindRecruiter(ctx context.Context, userID string) (*domain.RecruiterProfile, error) {
	p, err := r.scanRecruiter(ctx, `SELECT `+recruiterColumns+` FROM recruiter_profiles WHERE user_id = $1`, userID)
	if err != nil {
		if isMissing(err) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find recruiter profile: %w", err)
	}
	return p, nil
}

func (r *ProfileRepository) UpsertRecruiter(ctx context.Context, in *domain.RecruiterProfile) (*domain.RecruiterProfile, error) {
	p, err := r.scanRecruiter(ctx, `
		INSERT INTO recruiter_profiles (user_id, company_name, company_website, company_size, industry, bio)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name    = EXCLUDED.company_name,
			company_website = EXCLUDED.company_website,
			company_size    = EXCLUDED.company_size,
			industry        = EXCLUDED.industry,
			bio             = EXCLUDED.bio,
			updated_at      = now()
		RETURNING `+recruiterColumns,
		in.UserID, in.CompanyName, in.CompanyWebsite, in.CompanySize, in.Industry, in.Bio)
	if err != nil {
		return nil, fmt.Errorf("upsert recruiter profile: %w", err)
	}
	return p, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentgate/jobboard/internal/core/access"
	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

// ProfileService reads and edits the caller's own profile. The role is not
// editable here; only an admin can change it.
type ProfileService struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	authz    *access.Authorizer
	logger   zerolog.Logger
	now      func() time.Time
}

func NewProfileService(users ports.UserRepository, profiles ports.ProfileRepository, authz *access.Authorizer, logger zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, profiles: profiles, authz: authz, logger: logger, now: time.Now}
}

func (s *ProfileService) Get(ctx context.Context, caller *domain.Identity) (*ports.Profile, error) {
	role, err := s.authz.Authorize(ctx, caller, access.Policy{})
	if err != nil {
		return nil, err
	}
	return s.load(ctx, caller.UserID, role)
}

func (s *ProfileService) Update(ctx context.Context, caller *domain.Identity, in ports.UpdateProfileInput) (*ports.Profile, error) {
	role, err := s.authz.Authorize(ctx, caller, access.Policy{})
	if err != nil {
		return nil, err
	}

	switch {
	case in.Candidate != nil && role != domain.RoleCandidate:
		return nil, domain.Invalid("Only candidates have a candidate profile")
	case in.Recruiter != nil && role != domain.RoleRecruiter:
		return nil, domain.Invalid("Only recruiters have a recruiter profile")
	}

	if _, err := s.users.UpdateDetails(ctx, caller.UserID, in.User); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	now := s.now().UTC()
	if in.Candidate != nil {
		if err := s.updateCandidate(ctx, caller.UserID, *in.Candidate, now); err != nil {
			return nil, err
		}
	}
	if in.Recruiter != nil {
		if err := s.updateRecruiter(ctx, caller.UserID, *in.Recruiter, now); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Str("user_id", caller.UserID).Msg("profile updated")
	return s.load(ctx, caller.UserID, role)
}

func (s *ProfileService) updateCandidate(ctx context.Context, userID string, in ports.CandidateProfileInput, now time.Time) error {
	p, err := s.profiles.FindCandidate(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		p = &domain.CandidateProfile{UserID: userID, Skills: []string{}}
	case err != nil:
		return fmt.Errorf("update candidate profile: %w", err)
	}

	if in.ExperienceYears != nil && *in.ExperienceYears < 0 {
		return domain.Invalid("experience_years must not be negative")
	}

	setString(&p.ResumeURL, in.ResumeURL)
	setString(&p.Education, in.Education)
	setString(&p.Bio, in.Bio)
	setString(&p.LinkedInURL, in.LinkedInURL)
	setString(&p.PortfolioURL, in.PortfolioURL)
	if in.Skills != nil {
		p.Skills = in.Skills
	}
	if in.ExperienceYears != nil {
		p.ExperienceYears = *in.ExperienceYears
	}
	p.UpdatedAt = now

	if _, err := s.profiles.UpsertCandidate(ctx, p); err != nil {
		return fmt.Errorf("update candidate profile: %w", err)
	}
	return nil
}

func (s *ProfileService) updateRecruiter(ctx context.Context, userID string, in ports.RecruiterProfileInput, now time.Time) error {
	p, err := s.profiles.FindRecruiter(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		p = &domain.RecruiterProfile{UserID: userID}
	case err != nil:
		return fmt.Errorf("update recruiter profile: %w", err)
	}

	setString(&p.CompanyName, in.CompanyName)
	setString(&p.CompanyWebsite, in.CompanyWebsite)
	setString(&p.CompanySize, in.CompanySize)
	setString(&p.Industry, in.Industry)
	setString(&p.Bio, in.Bio)
	if p.CompanyName == "" {
		return domain.Invalid("Company name is required")
	}
	p.UpdatedAt = now

	if _, err := s.profiles.UpsertRecruiter(ctx, p); err != nil {
		return fmt.Errorf("update recruiter profile: %w", err)
	}
	return nil
}

func (s *ProfileService) load(ctx context.Context, userID string, role domain.Role) (*ports.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	out := &ports.Profile{User: user}
	switch role {
	case domain.RoleCandidate:
		p, err := s.profiles.FindCandidate(ctx, userID)
		if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, fmt.Errorf("load candidate profile: %w", err)
		}
		out.Candidate = p
	case domain.RoleRecruiter:
		p, err := s.profiles.FindRecruiter(ctx, userID)
		if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, fmt.Errorf("load recruiter profile: %w", err)
		}
		out.Recruiter = p
	}
	return out, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

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

type ApplicationService struct {
	apps     ports.ApplicationRepository
	jobs     ports.JobRepository
	profiles ports.ProfileRepository
	authz    *access.Authorizer
	audit    ports.Auditor
	logger   zerolog.Logger
	now      func() time.Time
}

func NewApplicationService(
	apps ports.ApplicationRepository,
	jobs ports.JobRepository,
	profiles ports.ProfileRepository,
	authz *access.Authorizer,
	audit ports.Auditor,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		apps:     apps,
		jobs:     jobs,
		profiles: profiles,
		authz:    authz,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
}

// Apply submits the caller's application to an open job. The caller must
// be a candidate with a resume on file.
func (s *ApplicationService) Apply(ctx context.Context, caller *domain.Identity, jobID, coverLetter string) (*domain.Application, error) {
	if _, err := s.authz.Authorize(ctx, caller, requireRole(domain.RoleCandidate)); err != nil {
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("apply: load job: %w", err)
	}
	if job.Status != domain.JobOpen {
		return nil, domain.Invalid("Job is not accepting applications")
	}

	profile, err := s.profiles.FindCandidate(ctx, caller.UserID)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		return nil, domain.Invalid("Please complete your profile and upload a resume before applying")
	case err != nil:
		return nil, fmt.Errorf("apply: load profile: %w", err)
	case profile.ResumeURL == "":
		return nil, domain.Invalid("Please complete your profile and upload a resume before applying")
	}

	now := s.now().UTC()
	app, err := s.apps.Create(ctx, &domain.Application{
		JobID:       jobID,
		CandidateID: caller.UserID,
		Status:      domain.ApplicationApplied,
		CoverLetter: coverLetter,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyApplied) {
			return nil, err
		}
		return nil, fmt.Errorf("apply: %w", err)
	}

	s.logger.Info().
		Str("application_id", app.ID).
		Str("job_id", jobID).
		Str("candidate_id", caller.UserID).
		Msg("application submitted")
	return app, nil
}

// ListMine lists the caller's own applications.
func (s *ApplicationService) ListMine(ctx context.Context, caller *domain.Identity, in ports.ListApplicationsInput) (*ports.Page[*domain.Application], error) {
	if _, err := s.authz.Authorize(ctx, caller, access.Policy{}); err != nil {
		return nil, err
	}
	return s.list(ctx, ports.ListApplicationsFilter{CandidateID: caller.UserID}, in)
}

func (s *ApplicationService) GetMine(ctx context.Context, caller *domain.Identity, applicationID string) (*domain.Application, error) {
	if _, err := s.authz.Authorize(ctx, caller, ownApplication(s.apps, applicationID)); err != nil {
		return nil, err
	}
	return s.find(ctx, applicationID)
}

func (s *ApplicationService) ListForJob(ctx context.Context, caller *domain.Identity, jobID string, in ports.ListApplicationsInput) (*ports.Page[*domain.Application], error) {
	if _, err := s.authz.Authorize(ctx, caller, ownedJob(s.jobs, jobID)); err != nil {
		return nil, err
	}
	return s.list(ctx, ports.ListApplicationsFilter{JobID: jobID}, in)
}

func (s *ApplicationService) GetForJob(ctx context.Context, caller *domain.Identity, jobID, applicationID string) (*domain.Application, error) {
	if _, err := s.authz.Authorize(ctx, caller, ownedJob(s.jobs, jobID)); err != nil {
		return nil, err
	}
	return s.findInJob(ctx, jobID, applicationID)
}

// Review records a recruiter's status and/or score for one application.
func (s *ApplicationService) Review(ctx context.Context, caller *domain.Identity, jobID, applicationID string, in ports.ReviewInput) (*domain.Application, error) {
	if _, err := s.authz.Authorize(ctx, caller, ownedJob(s.jobs, jobID)); err != nil {
		return nil, err
	}

	if in.Status == nil && in.Score == nil {
		return nil, domain.Invalid("status or score is required")
	}
	var status *domain.ApplicationStatus
	if in.Status != nil {
		st := domain.ApplicationStatus(*in.Status)
		if !st.Valid() {
			return nil, domain.Invalid("status must be one of: applied screening interview_scheduled rejected hired")
		}
		status = &st
	}
	if in.Score != nil && (*in.Score < 0 || *in.Score > 100) {
		return nil, domain.Invalid("score must be between 0 and 100")
	}

	current, err := s.findInJob(ctx, jobID, applicationID)
	if err != nil {
		return nil, err
	}

	app, err := s.apps.UpdateReview(ctx, applicationID, status, in.Score)
	if err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("review application: %w", err)
	}

	if status != nil && *status != current.Status {
		s.audit.Record(domain.AuditEntry{
			ActorID:    caller.UserID,
			Action:     domain.AuditApplicationStatus,
			Resource:   "application",
			ResourceID: applicationID,
			Details: map[string]any{
				"job_id": jobID,
				"from":   string(current.Status),
				"to":     string(*status),
			},
			OccurredAt: s.now().UTC(),
		})
	}

	s.logger.Info().Str("application_id", applicationID).Str("job_id", jobID).Msg("application reviewed")
	return app, nil
}

// StartPipeline moves the chosen applications of a job into screening and
// stamps the job's pipeline config with the run time.
func (s *ApplicationService) StartPipeline(ctx context.Context, caller *domain.Identity, jobID string, in ports.StartPipelineInput) (int64, error) {
	if _, err := s.authz.Authorize(ctx, caller, ownedJob(s.jobs, jobID)); err != nil {
		return 0, err
	}
	if err := validatePipelineInput(in); err != nil {
		return 0, err
	}

	moved, err := s.apps.MoveToScreening(ctx, jobID, in.ApplicationIDs)
	if err != nil {
		return 0, fmt.Errorf("start pipeline: %w", err)
	}

	startedAt := s.now().UTC()
	patch := map[string]any{}
	if cfg := in.Config; cfg != nil {
		if cfg.AutoRejectScore != nil {
			patch["auto_reject_score"] = *cfg.AutoRejectScore
		}
		if cfg.Stages != nil {
			patch["stages"] = cfg.Stages
		}
	}
	patch["last_pipeline_start"] = startedAt.Format(time.RFC3339)

	if err := s.jobs.MergePipelineConfig(ctx, jobID, patch); err != nil {
		return 0, fmt.Errorf("start pipeline: update config: %w", err)
	}

	s.audit.Record(domain.AuditEntry{
		ActorID:    caller.UserID,
		Action:     domain.AuditPipelineStarted,
		Resource:   "job",
		ResourceID: jobID,
		Details: map[string]any{
			"requested": len(in.ApplicationIDs),
			"moved":     moved,
		},
		OccurredAt: startedAt,
	})
	s.logger.Info().
		Str("job_id", jobID).
		Int("requested", len(in.ApplicationIDs)).
		Int64("moved", moved).
		Msg("pipeline started")
	return moved, nil
}

// ListForRecruiter lists applications across every job the caller owns.
func (s *ApplicationService) ListForRecruiter(ctx context.Context, caller *domain.Identity, in ports.ListApplicationsInput) (*ports.Page[*domain.Application], error) {
	if _, err := s.authz.Authorize(ctx, caller, requireRole(domain.RoleRecruiter)); err != nil {
		return nil, err
	}
	return s.list(ctx, ports.ListApplicationsFilter{RecruiterID: caller.UserID}, in)
}

func (s *ApplicationService) list(ctx context.Context, filter ports.ListApplicationsFilter, in ports.ListApplicationsInput) (*ports.Page[*domain.Application], error) {
	if in.Status != "" {
		filter.Status = domain.ApplicationStatus(in.Status)
		if !filter.Status.Valid() {
			return nil, domain.Invalid("status must be one of: applied screening interview_scheduled rejected hired")
		}
	}
	page := in.PageRequest.Normalize()
	filter.Page, filter.Limit = page.Page, page.Limit

	apps, total, err := s.apps.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return ports.NewPage(apps, total, page), nil
}

func (s *ApplicationService) find(ctx context.Context, applicationID string) (*domain.Application, error) {
	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return app, nil
}

// findInJob hides applications that exist but belong to a different job.
func (s *ApplicationService) findInJob(ctx context.Context, jobID, applicationID string) (*domain.Application, error) {
	app, err := s.find(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.JobID != jobID {
		return nil, domain.ErrApplicationNotFound
	}
	return app, nil
}

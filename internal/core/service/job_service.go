package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentgate/jobboard/internal/core/access"
	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

type JobService struct {
	jobs   ports.JobRepository
	authz  *access.Authorizer
	audit  ports.Auditor
	logger zerolog.Logger
	now    func() time.Time
}

func NewJobService(jobs ports.JobRepository, authz *access.Authorizer, audit ports.Auditor, logger zerolog.Logger) *JobService {
	return &JobService{jobs: jobs, authz: authz, audit: audit, logger: logger, now: time.Now}
}

// ListOpen returns the public board: open jobs only.
func (s *JobService) ListOpen(ctx context.Context, in ports.ListJobsInput) (*ports.Page[*domain.Job], error) {
	page := in.PageRequest.Normalize()
	jobs, total, err := s.jobs.List(ctx, ports.ListJobsFilter{
		Status:   domain.JobOpen,
		Search:   strings.TrimSpace(in.Search),
		Location: strings.TrimSpace(in.Location),
		Tag:      strings.TrimSpace(in.Tag),
		Page:     page.Page,
		Limit:    page.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list open jobs: %w", err)
	}
	return ports.NewPage(jobs, total, page), nil
}

func (s *JobService) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// ListOwn lists the caller's postings in every status.
func (s *JobService) ListOwn(ctx context.Context, caller *domain.Identity, in ports.ListJobsInput) (*ports.Page[*domain.Job], error) {
	if _, err := s.authz.Authorize(ctx, caller, requireRole(domain.RoleRecruiter)); err != nil {
		return nil, err
	}

	status, err := optionalJobStatus(in.Status)
	if err != nil {
		return nil, err
	}

	page := in.PageRequest.Normalize()
	jobs, total, err := s.jobs.List(ctx, ports.ListJobsFilter{
		RecruiterID: caller.UserID,
		Status:      status,
		Search:      strings.TrimSpace(in.Search),
		Tag:         strings.TrimSpace(in.Tag),
		Page:        page.Page,
		Limit:       page.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list own jobs: %w", err)
	}
	return ports.NewPage(jobs, total, page), nil
}

func (s *JobService) Create(ctx context.Context, caller *domain.Identity, in ports.CreateJobInput) (*domain.Job, error) {
	if _, err := s.authz.Authorize(ctx, caller, requireRole(domain.RoleRecruiter)); err != nil {
		return nil, err
	}

	status := domain.JobOpen
	if in.Status != "" {
		status = domain.JobStatus(in.Status)
		if !status.Valid() {
			return nil, domain.Invalid("status must be one of: open closed archived")
		}
	}
	if err := validateJobText(in.Title, in.Description, in.Tags); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	job := &domain.Job{
		RecruiterID:    caller.UserID,
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		Requirements:   in.Requirements,
		SalaryRange:    in.SalaryRange,
		Location:       in.Location,
		Tags:           in.Tags,
		Status:         status,
		PipelineConfig: map[string]any{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.jobs.Create(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.logger.Info().Str("job_id", created.ID).Str("recruiter_id", caller.UserID).Msg("job created")
	return created, nil
}

func (s *JobService) GetOwned(ctx context.Context, caller *domain.Identity, jobID string) (*domain.Job, error) {
	if _, err := s.authz.Authorize(ctx, caller, ownedJob(s.jobs, jobID)); err != nil {
		return nil, err
	}
	return s.Get(ctx, jobID)
}

func (s *JobService) Update(ctx context.Context, caller *domain.Identity, jobID string, upd ports.JobUpdate) (*domain.Job, error) {
	if _, err := s.authz.Authorize(ctx, caller, ownedJob(s.jobs, jobID)); err != nil {
		return nil, err
	}

	if upd.Title != nil && !minChars(*upd.Title, "3") {
		return nil, domain.Invalid("Title must be at least 3 characters")
	}
	if upd.Description != nil && !minChars(*upd.Description, "10") {
		return nil, domain.Invalid("Description must be at least 10 characters")
	}
	if upd.Tags != nil && len(upd.Tags) == 0 {
		return nil, domain.Invalid("At least one tag is required")
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, domain.Invalid("status must be one of: open closed archived")
	}

	job, err := s.jobs.Update(ctx, jobID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update job: %w", err)
	}

	s.logger.Info().Str("job_id", jobID).Msg("job updated")
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, caller *domain.Identity, jobID string) error {
	if _, err := s.authz.Authorize(ctx, caller, ownedJob(s.jobs, jobID)); err != nil {
		return err
	}

	if err := s.jobs.Delete(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("delete job: %w", err)
	}

	s.audit.Record(domain.AuditEntry{
		ActorID:    caller.UserID,
		Action:     domain.AuditJobDeleted,
		Resource:   "job",
		ResourceID: jobID,
		OccurredAt: s.now().UTC(),
	})
	s.logger.Info().Str("job_id", jobID).Str("recruiter_id", caller.UserID).Msg("job deleted")
	return nil
}

func optionalJobStatus(s string) (domain.JobStatus, error) {
	if s == "" {
		return "", nil
	}
	status := domain.JobStatus(s)
	if !status.Valid() {
		return "", domain.Invalid("status must be one of: open closed archived")
	}
	return status, nil
}

package ports

import (
	"context"

	"github.com/talentgate/jobboard/internal/core/domain"
)

// ListJobsInput carries the job-list query parameters.
type ListJobsInput struct {
	Status   string
	Search   string
	Location string
	Tag      string
	PageRequest
}

// CreateJobInput carries a new posting.
type CreateJobInput struct {
	Title        string
	Description  string
	Requirements string
	SalaryRange  string
	Location     string
	Tags         []string
	Status       string
}

// JobService covers the public job board and a recruiter's own postings.
type JobService interface {
	ListOpen(ctx context.Context, input ListJobsInput) (*Page[*domain.Job], error)
	Get(ctx context.Context, jobID string) (*domain.Job, error)

	ListOwn(ctx context.Context, caller *domain.Identity, input ListJobsInput) (*Page[*domain.Job], error)
	Create(ctx context.Context, caller *domain.Identity, input CreateJobInput) (*domain.Job, error)
	GetOwned(ctx context.Context, caller *domain.Identity, jobID string) (*domain.Job, error)
	Update(ctx context.Context, caller *domain.Identity, jobID string, update JobUpdate) (*domain.Job, error)
	Delete(ctx context.Context, caller *domain.Identity, jobID string) error
}

package ports

import (
	"context"

	"github.com/talentgate/jobboard/internal/core/domain"
)

// ListJobsFilter carries all query parameters for listing jobs.
type ListJobsFilter struct {
	RecruiterID string           // empty = every recruiter
	Status      domain.JobStatus // empty = any status
	Search      string           // optional: partial match on title or description
	Location    string           // optional: partial match on location
	Tag         string           // optional: exact tag
	Page        int              // 1-based
	Limit       int
}

// JobUpdate holds a partial job update. Nil leaves a field unchanged.
type JobUpdate struct {
	Title        *string
	Description  *string
	Requirements *string
	SalaryRange  *string
	Location     *string
	Tags         []string
	Status       *domain.JobStatus
}

// JobRepository persists job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// FindOwner fetches only recruiter_id for id.
	FindOwner(ctx context.Context, id string) (string, error)
	List(ctx context.Context, filter ListJobsFilter) ([]*domain.Job, int64, error)
	Update(ctx context.Context, id string, update JobUpdate) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
	// MergePipelineConfig shallow-merges patch into the job's pipeline_config.
	MergePipelineConfig(ctx context.Context, id string, patch map[string]any) error
}

// ListApplicationsFilter scopes an application listing. At least one of
// JobID, CandidateID or RecruiterID is always set by the service layer.
type ListApplicationsFilter struct {
	JobID       string
	CandidateID string
	RecruiterID string // applications on any job owned by this recruiter
	Status      domain.ApplicationStatus
	Page        int
	Limit       int
}

// ApplicationRepository persists applications.
type ApplicationRepository interface {
	// Create returns domain.ErrAlreadyApplied when the candidate already applied.
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	// FindCandidate fetches only candidate_id for id.
	FindCandidate(ctx context.Context, id string) (string, error)
	List(ctx context.Context, filter ListApplicationsFilter) ([]*domain.Application, int64, error)
	UpdateReview(ctx context.Context, id string, status *domain.ApplicationStatus, score *int) (*domain.Application, error)
	// MoveToScreening sets status=screening and score=0 on the listed
	// applications that belong to jobID and returns how many changed.
	MoveToScreening(ctx context.Context, jobID string, applicationIDs []string) (int64, error)
}

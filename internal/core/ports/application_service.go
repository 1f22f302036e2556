package ports

import (
	"context"

	"github.com/talentgate/jobboard/internal/core/domain"
)

// ListApplicationsInput carries the application-list query parameters.
type ListApplicationsInput struct {
	Status string
	PageRequest
}

// ReviewInput is a recruiter's status and score decision. Nil leaves a field unchanged.
type ReviewInput struct {
	Status *string
	Score  *int
}

// PipelineConfig is the screening setup attached to a pipeline run. Nil
// fields leave the stored value unchanged.
type PipelineConfig struct {
	AutoRejectScore *int     `validate:"omitnil,gte=0,lte=100"`
	Stages          []string `validate:"omitempty,dive,required"`
}

// StartPipelineInput moves the selected candidates of a job into screening.
type StartPipelineInput struct {
	ApplicationIDs []string
	Config         *PipelineConfig
}

// ApplicationService covers applying, a candidate's own applications, and
// a recruiter's review of applications on their jobs.
type ApplicationService interface {
	Apply(ctx context.Context, caller *domain.Identity, jobID, coverLetter string) (*domain.Application, error)
	ListMine(ctx context.Context, caller *domain.Identity, input ListApplicationsInput) (*Page[*domain.Application], error)
	GetMine(ctx context.Context, caller *domain.Identity, applicationID string) (*domain.Application, error)

	ListForJob(ctx context.Context, caller *domain.Identity, jobID string, input ListApplicationsInput) (*Page[*domain.Application], error)
	GetForJob(ctx context.Context, caller *domain.Identity, jobID, applicationID string) (*domain.Application, error)
	Review(ctx context.Context, caller *domain.Identity, jobID, applicationID string, input ReviewInput) (*domain.Application, error)
	StartPipeline(ctx context.Context, caller *domain.Identity, jobID string, input StartPipelineInput) (int64, error)
	ListForRecruiter(ctx context.Context, caller *domain.Identity, input ListApplicationsInput) (*Page[*domain.Application], error)
}

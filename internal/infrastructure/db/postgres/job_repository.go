package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

const jobColumns = `id::text, recruiter_id::text, title, description, requirements, salary_range,
	location, tags, status, pipeline_config, created_at, updated_at`

// JobRepository implements ports.JobRepository on the jobs table.
type JobRepository struct {
	db DB
}

func NewJobRepository(db DB) *JobRepository {
	return &JobRepository{db: db}
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var (
		j      domain.Job
		status string
	)
	err := row.Scan(&j.ID, &j.RecruiterID, &j.Title, &j.Description, &j.Requirements, &j.SalaryRange,
		&j.Location, &j.Tags, &status, &j.PipelineConfig, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	j.Status = domain.JobStatus(status)
	if j.Tags == nil {
		j.Tags = []string{}
	}
	if j.PipelineConfig == nil {
		j.PipelineConfig = map[string]any{}
	}
	return &j, nil
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	status := job.Status
	if status == "" {
		status = domain.JobOpen
	}
	tags := job.Tags
	if tags == nil {
		tags = []string{}
	}
	config := job.PipelineConfig
	if config == nil {
		config = map[string]any{}
	}

	created, err := scanJob(r.db.QueryRow(ctx, `
		INSERT INTO jobs (recruiter_id, title, description, requirements, salary_range, location, tags, status, pipeline_config)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+jobColumns,
		job.RecruiterID, job.Title, job.Description, job.Requirements, job.SalaryRange,
		job.Location, tags, string(status), config))
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return created, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if isMissing(err) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return j, nil
}

func (r *JobRepository) FindOwner(ctx context.Context, id string) (string, error) {
	var owner string
	if err := r.db.QueryRow(ctx, `SELECT recruiter_id::text FROM jobs WHERE id = $1`, id).Scan(&owner); err != nil {
		if isMissing(err) {
			return "", domain.ErrJobNotFound
		}
		return "", fmt.Errorf("find job owner: %w", err)
	}
	return owner, nil
}

func (r *JobRepository) List(ctx context.Context, filter ports.ListJobsFilter) ([]*domain.Job, int64, error) {
	var c conditions
	if filter.RecruiterID != "" {
		c.add("recruiter_id = $%d", filter.RecruiterID)
	}
	if filter.Status != "" {
		c.add("status = $%d", string(filter.Status))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		c.add("(title ILIKE $%[1]d OR description ILIKE $%[1]d)", containsPattern(s))
	}
	if l := strings.TrimSpace(filter.Location); l != "" {
		c.add("location ILIKE $%d", containsPattern(l))
	}
	if t := strings.TrimSpace(filter.Tag); t != "" {
		c.add("$%d = ANY(tags)", t)
	}

	total, err := count(ctx, r.db, `SELECT count(*) FROM jobs`+c.where(), c.args)
	if err != nil {
		if isMissing(err) {
			return []*domain.Job{}, 0, nil
		}
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	window, args := c.window(filter.Page, filter.Limit)
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs`+c.where()+
		` ORDER BY created_at DESC, id`+window, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0, filter.Limit)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("list jobs: scan: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, total, nil
}

func (r *JobRepository) Update(ctx context.Context, id string, u ports.JobUpdate) (*domain.Job, error) {
	var status *string
	if u.Status != nil {
		s := string(*u.Status)
		status = &s
	}

	j, err := scanJob(r.db.QueryRow(ctx, `
		UPDATE jobs SET
			title        = COALESCE($2, title),
			description  = COALESCE($3, description),
			requirements = COALESCE($4, requirements),
			salary_range = COALESCE($5, salary_range),
			location     = COALESCE($6, location),
			tags         = COALESCE($7, tags),
			status       = COALESCE($8, status),
			updated_at   = now()
		WHERE id = $1
		RETURNING `+jobColumns,
		id, u.Title, u.Description, u.Requirements, u.SalaryRange, u.Location, u.Tags, status))
	if err != nil {
		if isMissing(err) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("update job: %w", err)
	}
	return j, nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		if isMissing(err) {
			return domain.ErrJobNotFound
		}
		return fmt.Errorf("delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) MergePipelineConfig(ctx context.Context, id string, patch map[string]any) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE jobs SET pipeline_config = pipeline_config || $2::jsonb, updated_at = now()
		WHERE id = $1`, id, patch)
	if err != nil {
		if isMissing(err) {
			return domain.ErrJobNotFound
		}
		return fmt.Errorf("merge pipeline config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

const applicationColumns = `a.id::text, a.job_id::text, a.candidate_id::text, a.status, a.score,
	a.cover_letter, j.title, a.created_at, a.updated_at`

const applicationFrom = ` FROM applications a JOIN jobs j ON j.id = a.job_id`

// ApplicationRepository implements ports.ApplicationRepository. Reads join
// jobs so every application carries its job title.
type ApplicationRepository struct {
	db DB
}

func NewApplicationRepository(db DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var (
		a      domain.Application
		status string
		score  *int32
	)
	err := row.Scan(&a.ID, &a.JobID, &a.CandidateID, &status, &score,
		&a.CoverLetter, &a.JobTitle, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Status = domain.ApplicationStatus(status)
	if score != nil {
		v := int(*score)
		a.Score = &v
	}
	return &a, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO applications (job_id, candidate_id, status, cover_letter)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text`,
		app.JobID, app.CandidateID, string(domain.ApplicationApplied), app.CoverLetter).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyApplied
		}
		if isMissing(err) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("create application: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+applicationFrom+` WHERE a.id = $1`, id))
	if err != nil {
		if isMissing(err) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return a, nil
}

func (r *ApplicationRepository) FindCandidate(ctx context.Context, id string) (string, error) {
	var candidate string
	err := r.db.QueryRow(ctx, `SELECT candidate_id::text FROM applications WHERE id = $1`, id).Scan(&candidate)
	if err != nil {
		if isMissing(err) {
			return "", domain.ErrApplicationNotFound
		}
		return "", fmt.Errorf("find application candidate: %w", err)
	}
	return candidate, nil
}

func (r *ApplicationRepository) List(ctx context.Context, filter ports.ListApplicationsFilter) ([]*domain.Application, int64, error) {
	var c conditions
	if filter.JobID != "" {
		c.add("a.job_id = $%d", filter.JobID)
	}
	if filter.CandidateID != "" {
		c.add("a.candidate_id = $%d", filter.CandidateID)
	}
	if filter.RecruiterID != "" {
		c.add("j.recruiter_id = $%d", filter.RecruiterID)
	}
	if filter.Status != "" {
		c.add("a.status = $%d", string(filter.Status))
	}

	total, err := count(ctx, r.db, `SELECT count(*)`+applicationFrom+c.where(), c.args)
	if err != nil {
		if isMissing(err) {
			return []*domain.Application{}, 0, nil
		}
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	window, args := c.window(filter.Page, filter.Limit)
	rows, err := r.db.Query(ctx, `SELECT `+applicationColumns+applicationFrom+c.where()+
		` ORDER BY a.created_at DESC, a.id`+window, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := make([]*domain.Application, 0, filter.Limit)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("list applications: scan: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	return apps, total, nil
}

func (r *ApplicationRepository) UpdateReview(ctx context.Context, id string, status *domain.ApplicationStatus, score *int) (*domain.Application, error) {
	var s *string
	if status != nil {
		v := string(*status)
		s = &v
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE applications SET
			status     = COALESCE($2, status),
			score      = COALESCE($3, score),
			updated_at = now()
		WHERE id = $1`, id, s, score)
	if err != nil {
		if isMissing(err) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("review application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrApplicationNotFound
	}
	return r.FindByID(ctx, id)
}

// MoveToScreening ignores ids that are not on jobID, so a caller can never
// touch applications on a job it does not own.
func (r *ApplicationRepository) MoveToScreening(ctx context.Context, jobID string, applicationIDs []string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE applications SET status = $3, score = 0, updated_at = now()
		WHERE job_id = $1 AND id::text = ANY($2::text[])`,
		jobID, applicationIDs, string(domain.ApplicationScreening))
	if err != nil {
		if isMissing(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("move to screening: %w", err)
	}
	return tag.RowsAffected(), nil
}

package postgres

import (
	"context"
	"fmt"
)

// schema is applied statement by statement at startup. Every statement is
// idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		email         text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		role          text NOT NULL CHECK (role IN ('candidate', 'recruiter', 'admin', 'super_admin')),
		full_name     text NOT NULL DEFAULT '',
		first_name    text NOT NULL DEFAULT '',
		last_name     text NOT NULL DEFAULT '',
		company       text NOT NULL DEFAULT '',
		phone         text NOT NULL DEFAULT '',
		avatar_url    text NOT NULL DEFAULT '',
		created_at    timestamptz NOT NULL DEFAULT now(),
		updated_at    timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS candidate_profiles (
		user_id          uuid PRIMARY KEY REFERENCES users (id) ON DELETE CASCADE,
		resume_url       text NOT NULL DEFAULT '',
		skills           text[] NOT NULL DEFAULT '{}',
		experience_years integer NOT NULL DEFAULT 0 CHECK (experience_years >= 0),
		education        text NOT NULL DEFAULT '',
		bio              text NOT NULL DEFAULT '',
		linkedin_url     text NOT NULL DEFAULT '',
		portfolio_url    text NOT NULL DEFAULT '',
		updated_at       timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS recruiter_profiles (
		user_id         uuid PRIMARY KEY REFERENCES users (id) ON DELETE CASCADE,
		company_name    text NOT NULL,
		company_website text NOT NULL DEFAULT '',
		company_size    text NOT NULL DEFAULT '',
		industry        text NOT NULL DEFAULT '',
		bio             text NOT NULL DEFAULT '',
		updated_at      timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id              uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		recruiter_id    uuid NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		title           text NOT NULL,
		description     text NOT NULL,
		requirements    text NOT NULL DEFAULT '',
		salary_range    text NOT NULL DEFAULT '',
		location        text NOT NULL DEFAULT '',
		tags            text[] NOT NULL DEFAULT '{}',
		status          text NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed', 'archived')),
		pipeline_config jsonb NOT NULL DEFAULT '{}'::jsonb,
		created_at      timestamptz NOT NULL DEFAULT now(),
		updated_at      timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS jobs_recruiter_idx ON jobs (recruiter_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS jobs_status_idx ON jobs (status, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id           uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		job_id       uuid NOT NULL REFERENCES jobs (id) ON DELETE CASCADE,
		candidate_id uuid NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		status       text NOT NULL DEFAULT 'applied'
		             CHECK (status IN ('applied', 'screening', 'interview_scheduled', 'rejected', 'hired')),
		score        integer CHECK (score BETWEEN 0 AND 100),
		cover_letter text NOT NULL DEFAULT '',
		created_at   timestamptz NOT NULL DEFAULT now(),
		updated_at   timestamptz NOT NULL DEFAULT now(),
		UNIQUE (job_id, candidate_id)
	)`,
	`CREATE INDEX IF NOT EXISTS applications_candidate_idx ON applications (candidate_id, created_at DESC)`,
}

// Migrate applies the schema.
func Migrate(ctx context.Context, db DB) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	return nil
}

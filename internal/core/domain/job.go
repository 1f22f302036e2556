package domain

import "time"

// JobStatus is the publication state of a job posting.
type JobStatus string

const (
	JobOpen     JobStatus = "open"
	JobClosed   JobStatus = "closed"
	JobArchived JobStatus = "archived"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobOpen, JobClosed, JobArchived:
		return true
	}
	return false
}

// Job is a posting owned by exactly one recruiter.
type Job struct {
	ID             string         `json:"id"`
	RecruiterID    string         `json:"recruiter_id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Requirements   string         `json:"requirements,omitempty"`
	SalaryRange    string         `json:"salary_range,omitempty"`
	Location       string         `json:"location,omitempty"`
	Tags           []string       `json:"tags"`
	Status         JobStatus      `json:"status"`
	PipelineConfig map[string]any `json:"pipeline_config"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ApplicationStatus tracks a candidate through a job's hiring pipeline.
type ApplicationStatus string

const (
	ApplicationApplied            ApplicationStatus = "applied"
	ApplicationScreening          ApplicationStatus = "screening"
	ApplicationInterviewScheduled ApplicationStatus = "interview_scheduled"
	ApplicationRejected           ApplicationStatus = "rejected"
	ApplicationHired              ApplicationStatus = "hired"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationApplied, ApplicationScreening, ApplicationInterviewScheduled,
		ApplicationRejected, ApplicationHired:
		return true
	}
	return false
}

// Application links a candidate to a job. Score is nil until reviewed.
type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"job_id"`
	CandidateID string            `json:"candidate_id"`
	Status      ApplicationStatus `json:"status"`
	Score       *int              `json:"score"`
	CoverLetter string            `json:"cover_letter,omitempty"`
	JobTitle    string            `json:"job_title,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

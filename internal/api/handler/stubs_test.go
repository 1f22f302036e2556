package handler

import (
	"context"

	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

// Each stub method returns the configured result and records what the
// handler passed in. Only the fields a test sets are used.

type stubJobService struct {
	page    *ports.Page[*domain.Job]
	job     *domain.Job
	err     error
	listIn  ports.ListJobsInput
	create  ports.CreateJobInput
	update  ports.JobUpdate
	jobID   string
	caller  *domain.Identity
	deleted bool
}

func (s *stubJobService) ListOpen(_ context.Context, in ports.ListJobsInput) (*ports.Page[*domain.Job], error) {
	s.listIn = in
	return s.page, s.err
}

func (s *stubJobService) Get(_ context.Context, jobID string) (*domain.Job, error) {
	s.jobID = jobID
	return s.job, s.err
}

func (s *stubJobService) ListOwn(_ context.Context, caller *domain.Identity, in ports.ListJobsInput) (*ports.Page[*domain.Job], error) {
	s.caller, s.listIn = caller, in
	return s.page, s.err
}

func (s *stubJobService) Create(_ context.Context, caller *domain.Identity, in ports.CreateJobInput) (*domain.Job, error) {
	s.caller, s.create = caller, in
	return s.job, s.err
}

func (s *stubJobService) GetOwned(_ context.Context, caller *domain.Identity, jobID string) (*domain.Job, error) {
	s.caller, s.jobID = caller, jobID
	return s.job, s.err
}

func (s *stubJobService) Update(_ context.Context, caller *domain.Identity, jobID string, u ports.JobUpdate) (*domain.Job, error) {
	s.caller, s.jobID, s.update = caller, jobID, u
	return s.job, s.err
}

func (s *stubJobService) Delete(_ context.Context, caller *domain.Identity, jobID string) error {
	s.caller, s.jobID, s.deleted = caller, jobID, s.err == nil
	return s.err
}

type stubApplicationService struct {
	page     *ports.Page[*domain.Application]
	app      *domain.Application
	moved    int64
	err      error
	caller   *domain.Identity
	jobID    string
	appID    string
	cover    string
	listIn   ports.ListApplicationsInput
	review   ports.ReviewInput
	pipeline ports.StartPipelineInput
}

func (s *stubApplicationService) Apply(_ context.Context, caller *domain.Identity, jobID, cover string) (*domain.Application, error) {
	s.caller, s.jobID, s.cover = caller, jobID, cover
	return s.app, s.err
}

func (s *stubApplicationService) ListMine(_ context.Context, caller *domain.Identity, in ports.ListApplicationsInput) (*ports.Page[*domain.Application], error) {
	s.caller, s.listIn = caller, in
	return s.page, s.err
}

func (s *stubApplicationService) GetMine(_ context.Context, caller *domain.Identity, appID string) (*domain.Application, error) {
	s.caller, s.appID = caller, appID
	return s.app, s.err
}

func (s *stubApplicationService) ListForJob(_ context.Context, caller *domain.Identity, jobID string, in ports.ListApplicationsInput) (*ports.Page[*domain.Application], error) {
	s.caller, s.jobID, s.listIn = caller, jobID, in
	return s.page, s.err
}

func (s *stubApplicationService) GetForJob(_ context.Context, caller *domain.Identity, jobID, appID string) (*domain.Application, error) {
	s.caller, s.jobID, s.appID = caller, jobID, appID
	return s.app, s.err
}

func (s *stubApplicationService) Review(_ context.Context, caller *domain.Identity, jobID, appID string, in ports.ReviewInput) (*domain.Application, error) {
	s.caller, s.jobID, s.appID, s.review = caller, jobID, appID, in
	return s.app, s.err
}

func (s *stubApplicationService) StartPipeline(_ context.Context, caller *domain.Identity, jobID string, in ports.StartPipelineInput) (int64, error) {
	s.caller, s.jobID, s.pipeline = caller, jobID, in
	return s.moved, s.err
}

func (s *stubApplicationService) ListForRecruiter(_ context.Context, caller *domain.Identity, in ports.ListApplicationsInput) (*ports.Page[*domain.Application], error) {
	s.caller, s.listIn = caller, in
	return s.page, s.err
}

type stubProfileService struct {
	profile *ports.Profile
	err     error
	update  ports.UpdateProfileInput
}

func (s *stubProfileService) Get(_ context.Context, _ *domain.Identity) (*ports.Profile, error) {
	return s.profile, s.err
}

func (s *stubProfileService) Update(_ context.Context, _ *domain.Identity, in ports.UpdateProfileInput) (*ports.Profile, error) {
	s.update = in
	return s.profile, s.err
}

type stubAdminService struct {
	page   *ports.Page[*domain.User]
	user   *domain.User
	err    error
	listIn ports.ListUsersInput
	userID string
	role   string
}

func (s *stubAdminService) ListUsers(_ context.Context, _ *domain.Identity, in ports.ListUsersInput) (*ports.Page[*domain.User], error) {
	s.listIn = in
	return s.page, s.err
}

func (s *stubAdminService) GetUser(_ context.Context, _ *domain.Identity, userID string) (*domain.User, error) {
	s.userID = userID
	return s.user, s.err
}

func (s *stubAdminService) DeleteUser(_ context.Context, _ *domain.Identity, userID string) error {
	s.userID = userID
	return s.err
}

func (s *stubAdminService) ChangeRole(_ context.Context, _ *domain.Identity, userID, role string) (*domain.User, error) {
	s.userID, s.role = userID, role
	return s.user, s.err
}

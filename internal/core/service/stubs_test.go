package service

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentgate/jobboard/internal/core/access"
	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User
	nextID  int
	findErr error // if set, FindRole returns this error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindRole(_ context.Context, id string) (domain.Role, error) {
	if r.findErr != nil {
		return domain.RoleUnknown, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return domain.RoleUnknown, domain.ErrUserNotFound
	}
	return u.Role, nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, id := range slices.Sorted(maps.Keys(r.users)) {
		u := r.users[id]
		if f.Role != domain.RoleUnknown && u.Role != f.Role {
			continue
		}
		if f.Search != "" && !strings.Contains(u.Email, f.Search) {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	return paginate(out, f.Page, f.Limit)
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UpdateDetails(_ context.Context, id string, d ports.UserDetails) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	setString(&u.FirstName, d.FirstName)
	setString(&u.LastName, d.LastName)
	setString(&u.Phone, d.Phone)
	setString(&u.Company, d.Company)
	setString(&u.AvatarURL, d.AvatarURL)
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubJobRepo struct {
	jobs   map[string]*domain.Job
	nextID int
}

func newStubJobRepo(jobs ...*domain.Job) *stubJobRepo {
	r := &stubJobRepo{jobs: make(map[string]*domain.Job)}
	for _, j := range jobs {
		clone := *j
		r.jobs[j.ID] = &clone
	}
	return r
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.nextID++
	clone := *job
	clone.ID = fmt.Sprintf("job-%d", r.nextID)
	r.jobs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) FindOwner(_ context.Context, id string) (string, error) {
	j, ok := r.jobs[id]
	if !ok {
		return "", domain.ErrJobNotFound
	}
	return j.RecruiterID, nil
}

func (r *stubJobRepo) List(_ context.Context, f ports.ListJobsFilter) ([]*domain.Job, int64, error) {
	var out []*domain.Job
	for _, id := range slices.Sorted(maps.Keys(r.jobs)) {
		j := r.jobs[id]
		if f.RecruiterID != "" && j.RecruiterID != f.RecruiterID {
			continue
		}
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(f.Search)) {
			continue
		}
		if f.Tag != "" && !slices.Contains(j.Tags, f.Tag) {
			continue
		}
		clone := *j
		out = append(out, &clone)
	}
	return paginate(out, f.Page, f.Limit)
}

func (r *stubJobRepo) Update(_ context.Context, id string, u ports.JobUpdate) (*domain.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	setString(&j.Title, u.Title)
	setString(&j.Description, u.Description)
	setString(&j.Location, u.Location)
	if u.Tags != nil {
		j.Tags = u.Tags
	}
	if u.Status != nil {
		j.Status = *u.Status
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *stubJobRepo) MergePipelineConfig(_ context.Context, id string, patch map[string]any) error {
	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	if j.PipelineConfig == nil {
		j.PipelineConfig = map[string]any{}
	}
	maps.Copy(j.PipelineConfig, patch)
	return nil
}

type stubApplicationRepo struct {
	apps   map[string]*domain.Application
	jobs   *stubJobRepo
	nextID int
}

func newStubApplicationRepo(jobs *stubJobRepo, apps ...*domain.Application) *stubApplicationRepo {
	r := &stubApplicationRepo{apps: make(map[string]*domain.Application), jobs: jobs}
	for _, a := range apps {
		clone := *a
		r.apps[a.ID] = &clone
	}
	return r
}

func (r *stubApplicationRepo) Create(_ context.Context, app *domain.Application) (*domain.Application, error) {
	for _, a := range r.apps {
		if a.JobID == app.JobID && a.CandidateID == app.CandidateID {
			return nil, domain.ErrAlreadyApplied
		}
	}
	r.nextID++
	clone := *app
	clone.ID = fmt.Sprintf("app-%d", r.nextID)
	r.apps[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubApplicationRepo) FindByID(_ context.Context, id string) (*domain.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubApplicationRepo) FindCandidate(_ context.Context, id string) (string, error) {
	a, ok := r.apps[id]
	if !ok {
		return "", domain.ErrApplicationNotFound
	}
	return a.CandidateID, nil
}

func (r *stubApplicationRepo) List(_ context.Context, f ports.ListApplicationsFilter) ([]*domain.Application, int64, error) {
	var out []*domain.Application
	for _, id := range slices.Sorted(maps.Keys(r.apps)) {
		a := r.apps[id]
		if f.JobID != "" && a.JobID != f.JobID {
			continue
		}
		if f.CandidateID != "" && a.CandidateID != f.CandidateID {
			continue
		}
		if f.RecruiterID != "" {
			j, ok := r.jobs.jobs[a.JobID]
			if !ok || j.RecruiterID != f.RecruiterID {
				continue
			}
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	return paginate(out, f.Page, f.Limit)
}

func (r *stubApplicationRepo) UpdateReview(_ context.Context, id string, status *domain.ApplicationStatus, score *int) (*domain.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	if status != nil {
		a.Status = *status
	}
	if score != nil {
		v := *score
		a.Score = &v
	}
	clone := *a
	return &clone, nil
}

func (r *stubApplicationRepo) MoveToScreening(_ context.Context, jobID string, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		a, ok := r.apps[id]
		if !ok || a.JobID != jobID {
			continue
		}
		zero := 0
		a.Status = domain.ApplicationScreening
		a.Score = &zero
		n++
	}
	return n, nil
}

type stubProfileRepo struct {
	candidates map[string]*domain.CandidateProfile
	recruiters map[string]*domain.RecruiterProfile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{
		candidates: make(map[string]*domain.CandidateProfile),
		recruiters: make(map[string]*domain.RecruiterProfile),
	}
}

func (r *stubProfileRepo) FindCandidate(_ context.Context, userID string) (*domain.CandidateProfile, error) {
	p, ok := r.candidates[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) UpsertCandidate(_ context.Context, p *domain.CandidateProfile) (*domain.CandidateProfile, error) {
	clone := *p
	r.candidates[p.UserID] = &clone
	return p, nil
}

func (r *stubProfileRepo) FindRecruiter(_ context.Context, userID string) (*domain.RecruiterProfile, error) {
	p, ok := r.recruiters[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) UpsertRecruiter(_ context.Context, p *domain.RecruiterProfile) (*domain.RecruiterProfile, error) {
	clone := *p
	r.recruiters[p.UserID] = &clone
	return p, nil
}

type stubSessionStore struct {
	sessions map[string]*domain.Session
	revoked  []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, sess *domain.Session) error {
	clone := *sess
	s.sessions[sess.ID] = &clone
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func (s *stubSessionStore) DeleteUser(_ context.Context, userID string) error {
	s.revoked = append(s.revoked, userID)
	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

// stubTokens encodes claims as "userID|sessionID" so tests can read them back.
type stubTokens struct{}

func (stubTokens) Sign(c ports.TokenClaims) (string, error) {
	return c.UserID + "|" + c.SessionID, nil
}

func (stubTokens) Parse(token string) (ports.TokenClaims, error) {
	user, sid, ok := strings.Cut(token, "|")
	if !ok {
		return ports.TokenClaims{}, fmt.Errorf("malformed token")
	}
	return ports.TokenClaims{UserID: user, SessionID: sid}, nil
}

type recordingAuditor struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (a *recordingAuditor) Record(e domain.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

func (a *recordingAuditor) actions() []domain.AuditAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action)
	}
	return out
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func paginate[T any](items []T, page, limit int) ([]T, int64, error) {
	total := int64(len(items))
	if limit <= 0 {
		limit = len(items)
	}
	skip := (page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(items) {
		return []T{}, total, nil
	}
	end := min(skip+limit, len(items))
	return items[skip:end], total, nil
}

func as(userID string) *domain.Identity {
	return &domain.Identity{UserID: userID, SessionID: "sess-" + userID}
}

// fixture holds one populated in-memory world shared by the service tests.
type fixture struct {
	users    *stubUserRepo
	jobs     *stubJobRepo
	apps     *stubApplicationRepo
	profiles *stubProfileRepo
	sessions *stubSessionStore
	audit    *recordingAuditor
	authz    *access.Authorizer
}

func newFixture() *fixture {
	users := newStubUserRepo(
		&domain.User{ID: "cand-1", Email: "cand1@example.com", Role: domain.RoleCandidate},
		&domain.User{ID: "cand-2", Email: "cand2@example.com", Role: domain.RoleCandidate},
		&domain.User{ID: "rec-1", Email: "rec1@example.com", Role: domain.RoleRecruiter},
		&domain.User{ID: "rec-2", Email: "rec2@example.com", Role: domain.RoleRecruiter},
		&domain.User{ID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin},
	)
	jobs := newStubJobRepo(
		&domain.Job{ID: "job-a", RecruiterID: "rec-1", Title: "Backend Engineer", Status: domain.JobOpen, Tags: []string{"go"}},
		&domain.Job{ID: "job-b", RecruiterID: "rec-1", Title: "Data Analyst", Status: domain.JobClosed, Tags: []string{"sql"}},
		&domain.Job{ID: "job-c", RecruiterID: "rec-2", Title: "Designer", Status: domain.JobOpen, Tags: []string{"figma"}},
	)
	apps := newStubApplicationRepo(jobs,
		&domain.Application{ID: "app-a1", JobID: "job-a", CandidateID: "cand-1", Status: domain.ApplicationApplied},
		&domain.Application{ID: "app-a2", JobID: "job-a", CandidateID: "cand-2", Status: domain.ApplicationApplied},
		&domain.Application{ID: "app-c1", JobID: "job-c", CandidateID: "cand-1", Status: domain.ApplicationApplied},
	)
	apps.nextID = 100
	jobs.nextID = 100

	return &fixture{
		users:    users,
		jobs:     jobs,
		apps:     apps,
		profiles: newStubProfileRepo(),
		sessions: newStubSessionStore(),
		audit:    &recordingAuditor{},
		authz:    access.NewAuthorizer(users, discardLogger),
	}
}

func (f *fixture) jobService() *JobService {
	s := NewJobService(f.jobs, f.authz, f.audit, discardLogger)
	s.now = func() time.Time { return fixedNow }
	return s
}

func (f *fixture) applicationService() *ApplicationService {
	s := NewApplicationService(f.apps, f.jobs, f.profiles, f.authz, f.audit, discardLogger)
	s.now = func() time.Time { return fixedNow }
	return s
}

func (f *fixture) profileService() *ProfileService {
	s := NewProfileService(f.users, f.profiles, f.authz, discardLogger)
	s.now = func() time.Time { return fixedNow }
	return s
}

func (f *fixture) adminService() *AdminService {
	s := NewAdminService(f.users, f.sessions, f.authz, f.audit, discardLogger)
	s.now = func() time.Time { return fixedNow }
	return s
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/talentgate/jobboard/internal/api/middleware"
	"github.com/talentgate/jobboard/internal/core/domain"
)

func recruiterContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, names []string, values []string) echo.Context {
	c := e.NewContext(req, rec)
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	c.Set(middleware.IdentityKey, &domain.Identity{UserID: "rec-1", SessionID: "s1"})
	return c
}

func TestRecruiterHandler_CreateJob(t *testing.T) {
	e := newEcho()
	jobs := &stubJobService{job: &domain.Job{ID: "j1", Title: "Backend engineer"}}
	handler := NewRecruiterHandler(jobs, &stubApplicationService{})

	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/api/recruiter/jobs",
		`{"title":"Backend engineer","description":"Build and run services","tags":["go","postgres"]}`)
	c := recruiterContext(e, req, rec, nil, nil)

	if err := handler.CreateJob(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if jobs.caller.UserID != "rec-1" || jobs.create.Title != "Backend engineer" || len(jobs.create.Tags) != 2 {
		t.Fatalf("unexpected create call: %+v %+v", jobs.caller, jobs.create)
	}
}

func TestRecruiterHandler_CreateJob_ForbiddenBeforeValidation(t *testing.T) {
	e := newEcho()
	jobs := &stubJobService{err: domain.ErrForbidden}
	handler := NewRecruiterHandler(jobs, &stubApplicationService{})

	// An empty posting from a non-recruiter is a 403, not a 400.
	c := recruiterContext(e, jsonRequest(http.MethodPost, "/", `{}`), httptest.NewRecorder(), nil, nil)
	if err := handler.CreateJob(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRecruiterHandler_UpdateJob_PartialFields(t *testing.T) {
	e := newEcho()
	jobs := &stubJobService{job: &domain.Job{ID: "j1"}}
	handler := NewRecruiterHandler(jobs, &stubApplicationService{})

	req := jsonRequest(http.MethodPut, "/", `{"status":"closed"}`)
	c := recruiterContext(e, req, httptest.NewRecorder(), []string{"jobId"}, []string{"j1"})

	if err := handler.UpdateJob(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if jobs.jobID != "j1" {
		t.Fatalf("expected job j1, got %q", jobs.jobID)
	}
	if jobs.update.Status == nil || *jobs.update.Status != domain.JobClosed {
		t.Fatalf("expected status closed, got %+v", jobs.update.Status)
	}
	if jobs.update.Title != nil || jobs.update.Tags != nil {
		t.Fatalf("unset fields must stay nil: %+v", jobs.update)
	}
}

func TestRecruiterHandler_NonOwnerSeesNotFound(t *testing.T) {
	e := newEcho()
	handler := NewRecruiterHandler(&stubJobService{err: domain.ErrJobNotFound}, &stubApplicationService{})

	for name, call := range map[string]func(echo.Context) error{
		"get":    handler.GetJob,
		"delete": handler.DeleteJob,
	} {
		t.Run(name, func(t *testing.T) {
			c := recruiterContext(e, httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder(),
				[]string{"jobId"}, []string{"someone-elses"})
			if err := call(c); !errors.Is(err, domain.ErrJobNotFound) {
				t.Fatalf("expected ErrJobNotFound, got %v", err)
			}
		})
	}
}

func TestRecruiterHandler_DeleteJob(t *testing.T) {
	e := newEcho()
	jobs := &stubJobService{}
	handler := NewRecruiterHandler(jobs, &stubApplicationService{})

	rec := httptest.NewRecorder()
	c := recruiterContext(e, httptest.NewRequest(http.MethodDelete, "/", nil), rec, []string{"jobId"}, []string{"j1"})

	if err := handler.DeleteJob(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || !jobs.deleted {
		t.Fatalf("expected 204 and delete call, got %d deleted=%v", rec.Code, jobs.deleted)
	}
}

func TestRecruiterHandler_ReviewApplication(t *testing.T) {
	e := newEcho()
	apps := &stubApplicationService{app: &domain.Application{ID: "a1"}}
	handler := NewRecruiterHandler(&stubJobService{}, apps)

	req := jsonRequest(http.MethodPut, "/", `{"status":"interview_scheduled","score":85}`)
	c := recruiterContext(e, req, httptest.NewRecorder(), []string{"jobId", "applicationId"}, []string{"j1", "a1"})

	if err := handler.ReviewApplication(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if apps.jobID != "j1" || apps.appID != "a1" {
		t.Fatalf("unexpected ids: %s %s", apps.jobID, apps.appID)
	}
	if apps.review.Status == nil || *apps.review.Status != "interview_scheduled" || apps.review.Score == nil || *apps.review.Score != 85 {
		t.Fatalf("unexpected review input: %+v", apps.review)
	}
}

func TestRecruiterHandler_StartPipeline(t *testing.T) {
	e := newEcho()
	apps := &stubApplicationService{moved: 2}
	handler := NewRecruiterHandler(&stubJobService{}, apps)

	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/",
		`{"candidates":["7d0f5a53-3b39-4d6e-9c40-0f3c1b6f1a11","c1f7e3a4-9b1e-4c55-8a0d-2a6e4b8d9f22"],"pipeline_config":{"auto_reject_score":60,"stages":["screen","interview"]}}`)
	c := recruiterContext(e, req, rec, []string{"jobId"}, []string{"j1"})

	if err := handler.StartPipeline(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	cfg := apps.pipeline.Config
	if len(apps.pipeline.ApplicationIDs) != 2 || cfg == nil || cfg.AutoRejectScore == nil || *cfg.AutoRejectScore != 60 || len(cfg.Stages) != 2 {
		t.Fatalf("unexpected pipeline input: %+v", apps.pipeline)
	}

	var resp struct {
		Data startPipelineResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Data.Updated != 2 {
		t.Fatalf("expected 2 updated, got %d", resp.Data.Updated)
	}
}

func TestRecruiterHandler_StartPipeline_WithoutConfig(t *testing.T) {
	e := newEcho()
	apps := &stubApplicationService{moved: 1}
	handler := NewRecruiterHandler(&stubJobService{}, apps)

	req := jsonRequest(http.MethodPost, "/", `{"candidates":["7d0f5a53-3b39-4d6e-9c40-0f3c1b6f1a11"]}`)
	c := recruiterContext(e, req, httptest.NewRecorder(), []string{"jobId"}, []string{"j1"})

	if err := handler.StartPipeline(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if apps.pipeline.Config != nil {
		t.Fatalf("expected no config, got %+v", apps.pipeline.Config)
	}
}

func TestRecruiterHandler_ListApplications_StatusFilter(t *testing.T) {
	e := newEcho()
	apps := &stubApplicationService{err: domain.ErrForbidden}
	handler := NewRecruiterHandler(&stubJobService{}, apps)

	c := recruiterContext(e, httptest.NewRequest(http.MethodGet, "/?status=hired", nil), httptest.NewRecorder(), nil, nil)
	if err := handler.ListApplications(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if apps.listIn.Status != "hired" {
		t.Fatalf("expected status filter to be forwarded, got %q", apps.listIn.Status)
	}
}

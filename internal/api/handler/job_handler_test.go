package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/talentgate/jobboard/internal/api/middleware"
	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

func TestJobHandler_List_PaginatedEnvelope(t *testing.T) {
	e := newEcho()
	jobs := &stubJobService{
		page: ports.NewPage([]*domain.Job{{ID: "j1", Title: "Go developer"}}, 21, ports.PageRequest{Page: 2, Limit: 10}),
	}
	handler := NewJobHandler(jobs, &stubApplicationService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/jobs?search=go&tag=backend&page=2", nil), rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if jobs.listIn.Search != "go" || jobs.listIn.Tag != "backend" {
		t.Fatalf("filters not forwarded: %+v", jobs.listIn)
	}
	if jobs.listIn.Page != 2 || jobs.listIn.Limit != ports.DefaultPageLimit {
		t.Fatalf("expected page 2 with default limit, got %+v", jobs.listIn.PageRequest)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["count"] != float64(21) || resp["page"] != float64(2) || resp["limit"] != float64(10) || resp["totalPages"] != float64(3) {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if data, ok := resp["data"].([]any); !ok || len(data) != 1 {
		t.Fatalf("expected one job in data, got %+v", resp["data"])
	}
}

func TestJobHandler_List_CapsLimit(t *testing.T) {
	e := newEcho()
	jobs := &stubJobService{page: ports.NewPage[*domain.Job](nil, 0, ports.PageRequest{Page: 1, Limit: 100})}
	handler := NewJobHandler(jobs, &stubApplicationService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/jobs?limit=500", nil), httptest.NewRecorder())
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if jobs.listIn.Limit != ports.MaxPageLimit {
		t.Fatalf("expected limit capped at %d, got %d", ports.MaxPageLimit, jobs.listIn.Limit)
	}
}

func TestJobHandler_List_RejectsNonNumericPage(t *testing.T) {
	e := newEcho()
	handler := NewJobHandler(&stubJobService{}, &stubApplicationService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/jobs?page=two", nil), httptest.NewRecorder())
	if code := httpCode(t, handler.List(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestJobHandler_Get_NotFound(t *testing.T) {
	e := newEcho()
	handler := NewJobHandler(&stubJobService{err: domain.ErrJobNotFound}, &stubApplicationService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("jobId")
	c.SetParamValues("missing")

	if err := handler.Get(c); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestJobHandler_Apply(t *testing.T) {
	e := newEcho()
	apps := &stubApplicationService{app: &domain.Application{ID: "a1", JobID: "j1", Status: domain.ApplicationApplied}}
	handler := NewJobHandler(&stubJobService{}, apps)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/", `{"cover_letter":"Hello"}`), rec)
	c.SetParamNames("jobId")
	c.SetParamValues("j1")
	c.Set(middleware.IdentityKey, &domain.Identity{UserID: "cand-1"})

	if err := handler.Apply(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if apps.caller == nil || apps.caller.UserID != "cand-1" || apps.jobID != "j1" || apps.cover != "Hello" {
		t.Fatalf("unexpected call: caller=%+v job=%s cover=%q", apps.caller, apps.jobID, apps.cover)
	}
}

func TestJobHandler_Apply_Duplicate(t *testing.T) {
	e := newEcho()
	handler := NewJobHandler(&stubJobService{}, &stubApplicationService{err: domain.ErrAlreadyApplied})

	c := e.NewContext(jsonRequest(http.MethodPost, "/", `{}`), httptest.NewRecorder())
	c.SetParamNames("jobId")
	c.SetParamValues("j1")

	if err := handler.Apply(c); !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

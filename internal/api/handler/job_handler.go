package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentgate/jobboard/internal/api/metrics"
	"github.com/talentgate/jobboard/internal/core/ports"
)

// JobHandler serves the public job board and candidate applications.
type JobHandler struct {
	jobs ports.JobService
	apps ports.ApplicationService
}

func NewJobHandler(jobs ports.JobService, apps ports.ApplicationService) *JobHandler {
	return &JobHandler{jobs: jobs, apps: apps}
}

// List handles GET /api/jobs.
//
// @Summary      List open jobs
// @Tags         jobs
// @Produce      json
// @Param        search    query     string  false  "Match on title or description"
// @Param        location  query     string  false  "Match on location"
// @Param        tag       query     string  false  "Exact tag"
// @Param        page      query     int     false  "Page (default 1)"
// @Param        limit     query     int     false  "Page size (default 10, max 100)"
// @Success      200       {object}  paginatedResponse
// @Failure      400       {object}  errorResponse
// @Router       /api/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	page, err := pageRequest(c)
	if err != nil {
		return err
	}

	result, err := h.jobs.ListOpen(c.Request().Context(), ports.ListJobsInput{
		Search:      c.QueryParam("search"),
		Location:    c.QueryParam("location"),
		Tag:         c.QueryParam("tag"),
		PageRequest: page,
	})
	if err != nil {
		return err
	}
	return list(c, result)
}

// Get handles GET /api/jobs/:jobId.
//
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        jobId  path      string  true  "Job id"
// @Success      200    {object}  dataResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/jobs/{jobId} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.jobs.Get(c.Request().Context(), c.Param("jobId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: job})
}

// Apply handles POST /api/jobs/:jobId/apply.
//
// @Summary      Apply to a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        jobId  path      string        true   "Job id"
// @Param        body   body      applyRequest  false  "Cover letter"
// @Success      201    {object}  dataResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Failure      409    {object}  errorResponse
// @Router       /api/jobs/{jobId}/apply [post]
func (h *JobHandler) Apply(c echo.Context) error {
	var req applyRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	app, err := h.apps.Apply(c.Request().Context(), caller(c), c.Param("jobId"), req.CoverLetter)
	if err != nil {
		return err
	}

	metrics.ApplicationsSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, dataResponse{Data: app, Message: "Application submitted"})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentgate/jobboard/internal/api/metrics"
	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

// RecruiterHandler serves a recruiter's own postings and the applications
// on them. Ownership is enforced by the services; a job owned by someone
// else answers exactly like a job that does not exist.
type RecruiterHandler struct {
	jobs ports.JobService
	apps ports.ApplicationService
}

func NewRecruiterHandler(jobs ports.JobService, apps ports.ApplicationService) *RecruiterHandler {
	return &RecruiterHandler{jobs: jobs, apps: apps}
}

// ListJobs handles GET /api/recruiter/jobs.
//
// @Summary      List my jobs
// @Tags         recruiter
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "open, closed or archived"
// @Param        search  query     string  false  "Match on title or description"
// @Param        tag     query     string  false  "Exact tag"
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Success      200     {object}  paginatedResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/recruiter/jobs [get]
func (h *RecruiterHandler) ListJobs(c echo.Context) error {
	page, err := pageRequest(c)
	if err != nil {
		return err
	}

	result, err := h.jobs.ListOwn(c.Request().Context(), caller(c), ports.ListJobsInput{
		Status:      c.QueryParam("status"),
		Search:      c.QueryParam("search"),
		Tag:         c.QueryParam("tag"),
		PageRequest: page,
	})
	if err != nil {
		return err
	}
	return list(c, result)
}

// CreateJob handles POST /api/recruiter/jobs.
//
// @Summary      Create a job
// @Tags         recruiter
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job posting"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/recruiter/jobs [post]
func (h *RecruiterHandler) CreateJob(c echo.Context) error {
	var req createJobRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	job, err := h.jobs.Create(c.Request().Context(), caller(c), ports.CreateJobInput{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		SalaryRange:  req.SalaryRange,
		Location:     req.Location,
		Tags:         req.Tags,
		Status:       req.Status,
	})
	if err != nil {
		return err
	}

	metrics.JobsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, dataResponse{Data: job, Message: "Job created"})
}

// GetJob handles GET /api/recruiter/jobs/:jobId.
//
// @Summary      Get one of my jobs
// @Tags         recruiter
// @Produce      json
// @Security     BearerAuth
// @Param        jobId  path      string  true  "Job id"
// @Success      200    {object}  dataResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/recruiter/jobs/{jobId} [get]
func (h *RecruiterHandler) GetJob(c echo.Context) error {
	job, err := h.jobs.GetOwned(c.Request().Context(), caller(c), c.Param("jobId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: job})
}

// UpdateJob handles PUT /api/recruiter/jobs/:jobId.
//
// @Summary      Update one of my jobs
// @Tags         recruiter
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        jobId  path      string            true  "Job id"
// @Param        body   body      updateJobRequest  true  "Fields to change"
// @Success      200    {object}  dataResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/recruiter/jobs/{jobId} [put]
func (h *RecruiterHandler) UpdateJob(c echo.Context) error {
	var req updateJobRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	update := ports.JobUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		SalaryRange:  req.SalaryRange,
		Location:     req.Location,
		Tags:         req.Tags,
	}
	if req.Status != nil {
		status := domain.JobStatus(*req.Status)
		update.Status = &status
	}

	job, err := h.jobs.Update(c.Request().Context(), caller(c), c.Param("jobId"), update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: job, Message: "Job updated"})
}

// DeleteJob handles DELETE /api/recruiter/jobs/:jobId.
//
// @Summary      Delete one of my jobs
// @Tags         recruiter
// @Security     BearerAuth
// @Param        jobId  path  string  true  "Job id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/recruiter/jobs/{jobId} [delete]
func (h *RecruiterHandler) DeleteJob(c echo.Context) error {
	if err := h.jobs.Delete(c.Request().Context(), caller(c), c.Param("jobId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListJobApplications handles GET /api/recruiter/jobs/:jobId/applications.
//
// @Summary      List applications on one of my jobs
// @Tags         recruiter
// @Produce      json
// @Security     BearerAuth
// @Param        jobId   path      string  true   "Job id"
// @Param        status  query     string  false  "Application status"
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Success      200     {object}  paginatedResponse
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/recruiter/jobs/{jobId}/applications [get]
func (h *RecruiterHandler) ListJobApplications(c echo.Context) error {
	page, err := pageRequest(c)
	if err != nil {
		return err
	}

	result, err := h.apps.ListForJob(c.Request().Context(), caller(c), c.Param("jobId"), ports.ListApplicationsInput{
		Status:      c.QueryParam("status"),
		PageRequest: page,
	})
	if err != nil {
		return err
	}
	return list(c, result)
}

// GetJobApplication handles GET /api/recruiter/jobs/:jobId/applications/:applicationId.
//
// @Summary      Get an application on one of my jobs
// @Tags         recruiter
// @Produce      json
// @Security     BearerAuth
// @Param        jobId          path      string  true  "Job id"
// @Param        applicationId  path      string  true  "Application id"
// @Success      200            {object}  dataResponse
// @Failure      401            {object}  errorResponse
// @Failure      404            {object}  errorResponse
// @Router       /api/recruiter/jobs/{jobId}/applications/{applicationId} [get]
func (h *RecruiterHandler) GetJobApplication(c echo.Context) error {
	app, err := h.apps.GetForJob(c.Request().Context(), caller(c), c.Param("jobId"), c.Param("applicationId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: app})
}

// ReviewApplication handles PUT /api/recruiter/jobs/:jobId/applications/:applicationId.
//
// @Summary      Set status and score on an application
// @Tags         recruiter
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        jobId          path      string         true  "Job id"
// @Param        applicationId  path      string         true  "Application id"
// @Param        body           body      reviewRequest  true  "Status and/or score"
// @Success      200            {object}  dataResponse
// @Failure      400            {object}  errorResponse
// @Failure      401            {object}  errorResponse
// @Failure      404            {object}  errorResponse
// @Router       /api/recruiter/jobs/{jobId}/applications/{applicationId} [put]
func (h *RecruiterHandler) ReviewApplication(c echo.Context) error {
	var req reviewRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	app, err := h.apps.Review(c.Request().Context(), caller(c), c.Param("jobId"), c.Param("applicationId"),
		ports.ReviewInput{Status: req.Status, Score: req.Score})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: app, Message: "Application updated"})
}

// StartPipeline handles POST /api/recruiter/jobs/:jobId/start-pipeline.
//
// @Summary      Move selected candidates into screening
// @Tags         recruiter
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        jobId  path      string                true  "Job id"
// @Param        body   body      startPipelineRequest  true  "Selected applications and pipeline config"
// @Success      200    {object}  startPipelineResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/recruiter/jobs/{jobId}/start-pipeline [post]
func (h *RecruiterHandler) StartPipeline(c echo.Context) error {
	var req startPipelineRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	in := ports.StartPipelineInput{ApplicationIDs: req.Candidates}
	if cfg := req.PipelineConfig; cfg != nil {
		in.Config = &ports.PipelineConfig{AutoRejectScore: cfg.AutoRejectScore, Stages: cfg.Stages}
	}

	updated, err := h.apps.StartPipeline(c.Request().Context(), caller(c), c.Param("jobId"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{
		Data:    startPipelineResponse{Updated: updated},
		Message: "Pipeline started",
	})
}

// ListApplications handles GET /api/recruiter/applications.
//
// @Summary      List applications across all my jobs
// @Tags         recruiter
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Application status"
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Success      200     {object}  paginatedResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/recruiter/applications [get]
func (h *RecruiterHandler) ListApplications(c echo.Context) error {
	page, err := pageRequest(c)
	if err != nil {
		return err
	}

	result, err := h.apps.ListForRecruiter(c.Request().Context(), caller(c), ports.ListApplicationsInput{
		Status:      c.QueryParam("status"),
		PageRequest: page,
	})
	if err != nil {
		return err
	}
	return list(c, result)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentgate/jobboard/internal/core/ports"
)

// CandidateHandler serves the caller's own applications and profile.
type CandidateHandler struct {
	apps     ports.ApplicationService
	profiles ports.ProfileService
}

func NewCandidateHandler(apps ports.ApplicationService, profiles ports.ProfileService) *CandidateHandler {
	return &CandidateHandler{apps: apps, profiles: profiles}
}

// ListApplications handles GET /api/my/applications.
//
// @Summary      List my applications
// @Tags         my
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Application status"
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Success      200     {object}  paginatedResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/my/applications [get]
func (h *CandidateHandler) ListApplications(c echo.Context) error {
	page, err := pageRequest(c)
	if err != nil {
		return err
	}

	result, err := h.apps.ListMine(c.Request().Context(), caller(c), ports.ListApplicationsInput{
		Status:      c.QueryParam("status"),
		PageRequest: page,
	})
	if err != nil {
		return err
	}
	return list(c, result)
}

// GetApplication handles GET /api/my/applications/:applicationId.
//
// @Summary      Get one of my applications
// @Tags         my
// @Produce      json
// @Security     BearerAuth
// @Param        applicationId  path      string  true  "Application id"
// @Success      200            {object}  dataResponse
// @Failure      401            {object}  errorResponse
// @Failure      404            {object}  errorResponse
// @Router       /api/my/applications/{applicationId} [get]
func (h *CandidateHandler) GetApplication(c echo.Context) error {
	app, err := h.apps.GetMine(c.Request().Context(), caller(c), c.Param("applicationId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: app})
}

// GetProfile handles GET /api/my/profile.
//
// @Summary      Get my profile
// @Tags         my
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/my/profile [get]
func (h *CandidateHandler) GetProfile(c echo.Context) error {
	profile, err := h.profiles.Get(c.Request().Context(), caller(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: toProfileResponse(profile)})
}

// UpdateProfile handles PUT /api/my/profile.
//
// @Summary      Update my profile
// @Tags         my
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/my/profile [put]
func (h *CandidateHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	profile, err := h.profiles.Update(c.Request().Context(), caller(c), toUpdateProfileInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: toProfileResponse(profile), Message: "Profile updated"})
}

func toUpdateProfileInput(req updateProfileRequest) ports.UpdateProfileInput {
	in := ports.UpdateProfileInput{
		User: ports.UserDetails{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
			Company:   req.Company,
			AvatarURL: req.AvatarURL,
		},
	}
	if p := req.Candidate; p != nil {
		in.Candidate = &ports.CandidateProfileInput{
			ResumeURL:       p.ResumeURL,
			Skills:          p.Skills,
			ExperienceYears: p.ExperienceYears,
			Education:       p.Education,
			Bio:             p.Bio,
			LinkedInURL:     p.LinkedInURL,
			PortfolioURL:    p.PortfolioURL,
		}
	}
	if p := req.Recruiter; p != nil {
		in.Recruiter = &ports.RecruiterProfileInput{
			CompanyName:    p.CompanyName,
			CompanyWebsite: p.CompanyWebsite,
			CompanySize:    p.CompanySize,
			Industry:       p.Industry,
			Bio:            p.Bio,
		}
	}
	return in
}

func toProfileResponse(p *ports.Profile) profileResponse {
	return profileResponse{User: p.User, Candidate: p.Candidate, Recruiter: p.Recruiter}
}

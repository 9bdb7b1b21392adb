package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"dataconsult/internal/auth"
	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/service"
)

// UploadResponse carries the public URL of a stored file.
type UploadResponse struct {
	URL string `json:"url"`
}

// ApplicationHandler serves job applications.
type ApplicationHandler struct {
	svc     service.ApplicationService
	uploads service.UploadService
}

// NewApplicationHandler creates an application handler.
func NewApplicationHandler(svc service.ApplicationService, uploads service.UploadService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, uploads: uploads}
}

// Apply godoc
// @Summary Apply for a job
// @Tags applications
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param application body service.ApplicationInput true "Application"
// @Success 201 {object} model.Application
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /applications [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	p, err := auth.RequireAuth(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	var in service.ApplicationInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	app, err := h.svc.Create(c.Request().Context(), p, in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, app)
}

// Check godoc
// @Summary Whether the caller already applied for a job
// @Tags applications
// @Produce json
// @Security SessionCookie
// @Param jobId query int true "Job ID"
// @Description A missing or malformed jobId answers applied=false.
// @Success 200 {object} service.ApplicationCheck
// @Failure 401 {object} errors.ErrorResponse
// @Router /applications/check [get]
func (h *ApplicationHandler) Check(c echo.Context) error {
	p, err := auth.RequireAuth(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	jobID, err := strconv.ParseUint(c.QueryParam("jobId"), 10, 64)
	if err != nil || jobID == 0 {
		return c.JSON(http.StatusOK, service.ApplicationCheck{Applied: false})
	}
	return c.JSON(http.StatusOK, h.svc.Check(c.Request().Context(), p.UserID, uint(jobID)))
}

// ListMine godoc
// @Summary The caller's own applications
// @Tags applications
// @Produce json
// @Security SessionCookie
// @Success 200 {array} model.Application
// @Failure 401 {object} errors.ErrorResponse
// @Router /applications/mine [get]
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	p, err := auth.RequireAuth(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	apps, err := h.svc.ListMine(c.Request().Context(), p.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, apps)
}

// UploadResume godoc
// @Summary Upload a resume
// @Description PDF only, at most 4MB. The returned URL goes into resumeUrl.
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Security SessionCookie
// @Param file formData file true "Resume PDF"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /applications/resume [post]
func (h *ApplicationHandler) UploadResume(c echo.Context) error {
	p, err := auth.RequireAuth(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return uploadFile(c, h.uploads, service.UploadResume, p.UserID)
}

// ListApplications godoc
// @Summary List applications for review
// @Tags admin
// @Produce json
// @Security SessionCookie
// @Param jobId query int false "Job ID"
// @Param status query string false "Application status"
// @Param dateFrom query string false "YYYY-MM-DD, inclusive"
// @Param dateTo query string false "YYYY-MM-DD, inclusive"
// @Success 200 {array} model.Application
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/applications [get]
func (h *ApplicationHandler) ListApplications(c echo.Context) error {
	if _, err := auth.RequireHROrAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	var q service.ApplicationQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query").SetInternal(err)
	}
	apps, err := h.svc.List(c.Request().Context(), q)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, apps)
}

// UpdateStatus godoc
// @Summary Change an application's review status
// @Description SHORTLISTED, REJECTED and SELECTED require a statusDescription.
// @Tags admin
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path int true "Application ID"
// @Param update body service.StatusUpdate true "New status"
// @Success 200 {object} model.Application
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/applications/{id}/status [patch]
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	if _, err := auth.RequireHROrAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var update service.StatusUpdate
	if err := bindAndValidate(c, &update); err != nil {
		return err
	}
	app, err := h.svc.UpdateStatus(c.Request().Context(), id, update)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, app)
}

// DeleteApplication godoc
// @Summary Delete an application
// @Tags admin
// @Produce json
// @Security SessionCookie
// @Param id path int true "Application ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/applications/{id} [delete]
func (h *ApplicationHandler) DeleteApplication(c echo.Context) error {
	if _, err := auth.RequireHROrAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Application deleted"})
}

// uploadFile reads the multipart "file" field and stores it under kind.
func uploadFile(c echo.Context, uploads service.UploadService, kind service.UploadKind, userID uint) error {
	header, err := c.FormFile("file")
	if err != nil {
		return httpError(apperrors.Validation("file is required"))
	}
	file, err := header.Open()
	if err != nil {
		return httpError(apperrors.Internal(err))
	}
	defer file.Close()

	url, err := uploads.Upload(c.Request().Context(), kind, userID, file)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, UploadResponse{URL: url})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dataconsult/internal/auth"
	"dataconsult/internal/service"
)

// JobHandler serves job postings.
type JobHandler struct {
	svc service.JobService
}

// NewJobHandler creates a job handler.
func NewJobHandler(svc service.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

// ListJobs godoc
// @Summary List active jobs
// @Tags jobs
// @Produce json
// @Param type query string false "FULL_TIME, PART_TIME, CONTRACT or INTERNSHIP"
// @Param location query string false "Location substring"
// @Param search query string false "Title or description substring"
// @Param minSalary query number false "Minimum salary"
// @Param maxSalary query number false "Maximum salary"
// @Success 200 {array} model.Job
// @Failure 400 {object} errors.ErrorResponse
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c echo.Context) error {
	var q service.JobQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query").SetInternal(err)
	}
	jobs, err := h.svc.ListPublic(c.Request().Context(), q)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, jobs)
}

// GetJob godoc
// @Summary Get an active job by slug
// @Tags jobs
// @Produce json
// @Param slug path string true "Job slug"
// @Success 200 {object} model.Job
// @Failure 404 {object} errors.ErrorResponse
// @Router /jobs/{slug} [get]
func (h *JobHandler) GetJob(c echo.Context) error {
	job, err := h.svc.GetPublicBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, job)
}

// AdminListJobs godoc
// @Summary List all jobs including inactive ones
// @Tags admin
// @Produce json
// @Security SessionCookie
// @Success 200 {array} model.Job
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/jobs [get]
func (h *JobHandler) AdminListJobs(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	var q service.JobQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query").SetInternal(err)
	}
	jobs, err := h.svc.ListAll(c.Request().Context(), q)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, jobs)
}

// AdminGetJob godoc
// @Summary Get a job by id
// @Tags admin
// @Produce json
// @Security SessionCookie
// @Param id path int true "Job ID"
// @Success 200 {object} model.Job
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/jobs/{id} [get]
func (h *JobHandler) AdminGetJob(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	job, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, job)
}

// CreateJob godoc
// @Summary Create a job
// @Tags admin
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param job body service.JobInput true "Job"
// @Success 201 {object} model.Job
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/jobs [post]
func (h *JobHandler) CreateJob(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	var in service.JobInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	job, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, job)
}

// UpdateJob godoc
// @Summary Update a job
// @Description The slug is kept when the title changes.
// @Tags admin
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path int true "Job ID"
// @Param job body service.JobPatch true "Fields to change"
// @Success 200 {object} model.Job
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/jobs/{id} [patch]
func (h *JobHandler) UpdateJob(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var patch service.JobPatch
	if err := bindAndValidate(c, &patch); err != nil {
		return err
	}
	job, err := h.svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, job)
}

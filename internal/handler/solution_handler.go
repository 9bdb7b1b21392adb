package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dataconsult/internal/auth"
	"dataconsult/internal/service"
)

// SolutionHandler serves the solutions catalogue.
type SolutionHandler struct {
	svc service.SolutionService
}

// NewSolutionHandler creates a solution handler.
func NewSolutionHandler(svc service.SolutionService) *SolutionHandler {
	return &SolutionHandler{svc: svc}
}

// ListSolutions godoc
// @Summary List active solutions in display order
// @Tags solutions
// @Produce json
// @Success 200 {array} model.Solution
// @Router /solutions [get]
func (h *SolutionHandler) ListSolutions(c echo.Context) error {
	solutions, err := h.svc.ListActive(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, solutions)
}

// GetSolution godoc
// @Summary Get an active solution by slug
// @Tags solutions
// @Produce json
// @Param slug path string true "Solution slug"
// @Success 200 {object} model.Solution
// @Failure 404 {object} errors.ErrorResponse
// @Router /solutions/{slug} [get]
func (h *SolutionHandler) GetSolution(c echo.Context) error {
	solution, err := h.svc.GetActiveBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, solution)
}

// AdminListSolutions godoc
// @Summary List all solutions
// @Tags admin
// @Produce json
// @Security SessionCookie
// @Success 200 {array} model.Solution
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/solutions [get]
func (h *SolutionHandler) AdminListSolutions(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	solutions, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, solutions)
}

// CreateSolution godoc
// @Summary Create a solution
// @Tags admin
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param solution body service.SolutionInput true "Solution"
// @Success 201 {object} model.Solution
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/solutions [post]
func (h *SolutionHandler) CreateSolution(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	var in service.SolutionInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	solution, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, solution)
}

// UpdateSolution godoc
// @Summary Update a solution
// @Tags admin
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path int true "Solution ID"
// @Param solution body service.SolutionPatch true "Fields to change"
// @Success 200 {object} model.Solution
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/solutions/{id} [patch]
func (h *SolutionHandler) UpdateSolution(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var patch service.SolutionPatch
	if err := bindAndValidate(c, &patch); err != nil {
		return err
	}
	solution, err := h.svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, solution)
}

// DeleteSolution godoc
// @Summary Delete a solution
// @Tags admin
// @Produce json
// @Security SessionCookie
// @Param id path int true "Solution ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/solutions/{id} [delete]
func (h *SolutionHandler) DeleteSolution(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Solution deleted"})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dataconsult/internal/auth"
	"dataconsult/internal/service"
)

// UserHandler bundles account management and profile handlers.
type UserHandler struct {
	svc     service.UserService
	uploads service.UploadService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, uploads service.UploadService) *UserHandler {
	return &UserHandler{svc: svc, uploads: uploads}
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security SessionCookie
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser godoc
// @Summary Create user
// @Description Admins create HR and ADMIN accounts here; applicants sign up themselves.
// @Tags admin
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param user body service.CreateUserInput true "User payload"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	var in service.CreateUserInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	user, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// GetProfile godoc
// @Summary The caller's profile
// @Tags profile
// @Produce json
// @Security SessionCookie
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	p, err := auth.RequireAuth(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	user, err := h.svc.GetProfile(c.Request().Context(), p.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the caller's name or image
// @Description Send image as null to remove it. Refresh the session to see the change in it.
// @Tags profile
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param profile body service.ProfilePatch true "Fields to change"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	p, err := auth.RequireAuth(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	var patch service.ProfilePatch
	if err := bindAndValidate(c, &patch); err != nil {
		return err
	}
	user, err := h.svc.UpdateProfile(c.Request().Context(), p.UserID, patch)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Change the caller's password
// @Tags profile
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param password body service.PasswordChange true "Current and new password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile/password [post]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	p, err := auth.RequireAuth(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	var in service.PasswordChange
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	if err := h.svc.ChangePassword(c.Request().Context(), p.UserID, in); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password updated"})
}

// UploadAvatar godoc
// @Summary Upload a profile image
// @Description JPEG, PNG, WebP or GIF, at most 2MB. Save the returned URL with PATCH /profile.
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security SessionCookie
// @Param file formData file true "Image"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile/avatar [post]
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	p, err := auth.RequireAuth(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return uploadFile(c, h.uploads, service.UploadAvatar, p.UserID)
}

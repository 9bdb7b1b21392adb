package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"dataconsult/internal/auth"
	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/service"
)

// MarkedResponse reports how many notifications changed.
type MarkedResponse struct {
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}

// NotificationHandler serves the admin notification feed.
type NotificationHandler struct {
	svc service.NotificationService
}

// NewNotificationHandler creates a notification handler.
func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// ListNotifications godoc
// @Summary Newest notifications with the unread count
// @Tags admin
// @Produce json
// @Security SessionCookie
// @Param unreadOnly query bool false "Only unread"
// @Param limit query int false "At most 100, default 20"
// @Success 200 {object} service.NotificationList
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/notifications [get]
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}

	var unreadOnly bool
	if raw := c.QueryParam("unreadOnly"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return httpError(apperrors.Validation("unreadOnly must be true or false"))
		}
		unreadOnly = v
	}
	var limit int
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return httpError(apperrors.Validation("limit must be a number"))
		}
		limit = v
	}

	list, err := h.svc.List(c.Request().Context(), unreadOnly, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

// MarkAllRead godoc
// @Summary Mark every notification as read
// @Tags admin
// @Produce json
// @Security SessionCookie
// @Success 200 {object} MarkedResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/notifications/read [post]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	n, err := h.svc.MarkAllRead(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MarkedResponse{Message: "Notifications marked as read", Updated: n})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dataconsult/internal/auth"
	"dataconsult/internal/model"
)

// PageResponse is what a dashboard or admin shell needs to render.
type PageResponse struct {
	Path string     `json:"path"`
	User PageUser   `json:"user"`
	Area string     `json:"area"`
	Role model.Role `json:"role"`
}

// PageUser is the principal as shown in a page shell.
type PageUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Dashboard serves /dashboard pages. The edge gate has already redirected
// anonymous visitors, so the gate here only guards direct mounting.
func Dashboard(c echo.Context) error {
	p, err := auth.RequireAuth(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, page(c, "dashboard", p))
}

// Admin serves /admin pages.
func Admin(c echo.Context) error {
	p, err := auth.RequireAdmin(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, page(c, "admin", p))
}

func page(c echo.Context, area string, p auth.Principal) PageResponse {
	return PageResponse{
		Path: c.Request().URL.Path,
		Area: area,
		Role: p.Role,
		User: PageUser{ID: p.UserID, Name: p.Name, Email: p.Email},
	}
}

package router

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"dataconsult/internal/auth"
	"dataconsult/internal/model"
)

const (
	loginPath     = "/auth/login"
	dashboardPath = "/dashboard"
	adminPath     = "/admin"
)

// EdgeGate redirects page requests before they reach a handler: /admin needs
// an ADMIN session and /dashboard needs any session. API routes are not
// covered here; their handlers answer with 401/403 instead.
func EdgeGate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			switch {
			case underPrefix(path, adminPath):
				p, ok := auth.PrincipalFrom(c.Request().Context())
				if !ok {
					return c.Redirect(http.StatusTemporaryRedirect, loginRedirect(c))
				}
				if p.Role != model.RoleAdmin {
					return c.Redirect(http.StatusTemporaryRedirect, dashboardPath)
				}
			case underPrefix(path, dashboardPath):
				if _, ok := auth.PrincipalFrom(c.Request().Context()); !ok {
					return c.Redirect(http.StatusTemporaryRedirect, loginRedirect(c))
				}
			}
			return next(c)
		}
	}
}

func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func loginRedirect(c echo.Context) string {
	return loginPath + "?callbackUrl=" + url.QueryEscape(c.Request().URL.RequestURI())
}

package router

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"dataconsult/internal/auth"
)

const sessionContextKey = "session"

// SessionMiddleware resolves the caller from the session cookie or a bearer
// token. A missing or invalid token never fails the request here: the
// request just carries no principal and the handler gate decides.
func SessionMiddleware(sessions *auth.SessionService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  sessionContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + auth.SessionCookieName,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := sessions.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			if !claims.IsSession() {
				return nil, errors.New("not a session token")
			}
			return claims, nil
		},
		SuccessHandler: func(c echo.Context) {
			claims, ok := c.Get(sessionContextKey).(*auth.Claims)
			if !ok {
				return
			}
			ctx := auth.WithPrincipal(c.Request().Context(), claims.Principal())
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

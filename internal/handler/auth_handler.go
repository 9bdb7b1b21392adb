package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"dataconsult/internal/auth"
	"dataconsult/internal/config"
	"dataconsult/internal/model"
	"dataconsult/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	sessions    *auth.SessionService
	cookies     config.SessionConfig
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *auth.SessionService, cookies config.SessionConfig) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, cookies: cookies}
}

// SignupRequest represents an applicant registration request.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest optionally carries the refresh token when the cookie is not sent.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// SessionUser is the public view of the signed-in user.
type SessionUser struct {
	ID    uint       `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	Image *string    `json:"image,omitempty"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	User         SessionUser `json:"user"`
	SessionToken string      `json:"sessionToken"`
	ExpiresAt    time.Time   `json:"expiresAt"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

func sessionUser(u *model.User) SessionUser {
	return SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Image: u.Image}
}

// Signup godoc
// @Summary Register a new applicant account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Sign in and receive session cookies
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return h.writeSession(c, session)
}

// Refresh godoc
// @Summary Re-issue the session from the refresh token
// @Description Reloads the user so role, name and image changes take effect without signing in again.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest false "Refresh token when no cookie is sent"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	token := h.refreshToken(c)
	session, err := h.authService.Refresh(c.Request().Context(), token)
	if err != nil {
		h.clearCookies(c)
		return httpError(err)
	}
	return h.writeSession(c, session)
}

// Logout godoc
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := h.refreshToken(c); token != "" {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			LoggerFrom(c.Request().Context(), nil).DebugContext(c.Request().Context(), "logout with unusable refresh token", "error", err)
		}
	}
	h.clearCookies(c)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out"})
}

// Session godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Security SessionCookie
// @Success 200 {object} SessionUser
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	p, err := auth.RequireAuth(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	user := SessionUser{ID: p.UserID, Name: p.Name, Email: p.Email, Role: p.Role}
	if p.Image != "" {
		user.Image = &p.Image
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) refreshToken(c echo.Context) string {
	if cookie, err := c.Cookie(auth.RefreshCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	var req RefreshRequest
	if err := c.Bind(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

func (h *AuthHandler) writeSession(c echo.Context, session *service.Session) error {
	now := time.Now()
	c.SetCookie(h.cookie(auth.SessionCookieName, session.SessionToken, now.Add(h.sessions.TTL())))
	c.SetCookie(h.cookie(auth.RefreshCookieName, session.RefreshToken, now.Add(h.sessions.RefreshTTL())))
	return c.JSON(http.StatusOK, AuthResponse{
		User:         sessionUser(session.User),
		SessionToken: session.SessionToken,
		ExpiresAt:    now.Add(h.sessions.TTL()).UTC(),
	})
}

func (h *AuthHandler) clearCookies(c echo.Context) {
	for _, name := range []string{auth.SessionCookieName, auth.RefreshCookieName} {
		cookie := h.cookie(name, "", time.Unix(0, 0))
		cookie.MaxAge = -1
		c.SetCookie(cookie)
	}
}

func (h *AuthHandler) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookies.CookieDomain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookies.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"dataconsult/internal/model"
)

const (
	tokenTypeSession = "session"
	tokenTypeRefresh = "refresh"

	// SessionCookieName carries the session JWT.
	SessionCookieName = "session"
	// RefreshCookieName carries the refresh JWT.
	RefreshCookieName = "refresh_token"
)

// Claims represents JWT claims carried by the session cookie.
type Claims struct {
	UserID    uint       `json:"user_id"`
	Role      model.Role `json:"role"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Image     string     `json:"image,omitempty"`
	TokenType string     `json:"token_type"`
	jwt.RegisteredClaims
}

// Principal converts session claims into a request principal.
func (c *Claims) Principal() Principal {
	return Principal{UserID: c.UserID, Role: c.Role, Email: c.Email, Name: c.Name, Image: c.Image}
}

// IsSession reports whether the claims belong to a session (not refresh) token.
func (c *Claims) IsSession() bool {
	return c.TokenType == tokenTypeSession
}

// SessionService handles JWT token generation and validation.
type SessionService struct {
	secret     []byte
	ttl        time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewSessionService creates a new session service with the given secret.
func NewSessionService(secret string, ttl, refreshTTL time.Duration) *SessionService {
	return &SessionService{
		secret:     []byte(secret),
		ttl:        ttl,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// TTL is the session token lifetime.
func (s *SessionService) TTL() time.Duration { return s.ttl }

// RefreshTTL is the refresh token lifetime.
func (s *SessionService) RefreshTTL() time.Duration { return s.refreshTTL }

// IssueSession signs a session token reflecting the user's current role and profile.
func (s *SessionService) IssueSession(user *model.User) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:    user.ID,
		Role:      user.Role,
		Email:     user.Email,
		Name:      user.Name,
		TokenType: tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if user.Image != nil {
		claims.Image = *user.Image
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// IssueRefresh signs a refresh token. The token ID is returned separately for storage in Redis.
func (s *SessionService) IssueRefresh(userID uint) (tokenID string, token string, err error) {
	now := s.now()
	tokenID = uuid.NewString()
	claims := &Claims{
		UserID:    userID,
		TokenType: tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return tokenID, token, err
}

// ValidateToken validates a JWT token and returns the claims.
func (s *SessionService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ValidateRefresh validates a refresh token and returns its claims.
func (s *SessionService) ValidateRefresh(tokenString string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeRefresh || claims.ID == "" {
		return nil, errors.New("not a refresh token")
	}
	return claims, nil
}

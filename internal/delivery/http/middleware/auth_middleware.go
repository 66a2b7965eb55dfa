package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"doctor-portal/config"
	"doctor-portal/pkg/jwt"
	"doctor-portal/pkg/response"

	"github.com/google/uuid"
)

type contextKey string

const (
	DoctorIDKey contextKey = "doctor_id"
	SessionKey  contextKey = "session"
)

// AuthMiddleware guards routes that need a signed-in doctor. The session
// token is read from the session cookie, or from a Bearer header.
type AuthMiddleware struct {
	jwtService *jwt.JWTService
	session    config.SessionConfig
}

func NewAuthMiddleware(jwtService *jwt.JWTService, session config.SessionConfig) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		session:    session,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := m.sessionClaims(r)
		if claims == nil {
			m.reject(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), DoctorIDKey, claims.DoctorID)
		ctx = context.WithValue(ctx, SessionKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionClaims returns nil when the request is anonymous. A malformed or
// expired token counts as no token at all.
func (m *AuthMiddleware) sessionClaims(r *http.Request) *jwt.Claims {
	token := ""
	if cookie, err := r.Cookie(m.session.CookieName); err == nil {
		token = cookie.Value
	}
	if token == "" {
		parts := strings.Split(r.Header.Get("Authorization"), " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			token = parts[1]
		}
	}
	if token == "" {
		return nil
	}

	claims, err := m.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}
	return claims
}

// reject sends browsers to the login page and API clients a 401.
func (m *AuthMiddleware) reject(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		target := m.session.LoginPath + "?callbackUrl=" + url.QueryEscape(r.URL.RequestURI())
		http.Redirect(w, r, target, http.StatusFound)
		return
	}
	response.Unauthorized(w, "Authentication required")
}

// SetSessionCookie stores a session token in an HTTP-only cookie.
func SetSessionCookie(w http.ResponseWriter, session config.SessionConfig, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, session config.SessionConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetDoctorIDFromContext extracts the signed-in doctor's id from context
func GetDoctorIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	doctorID, ok := ctx.Value(DoctorIDKey).(uuid.UUID)
	return doctorID, ok
}

// GetSessionFromContext extracts the session claims from context
func GetSessionFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(SessionKey).(*jwt.Claims)
	return claims, ok
}

package middleware

import (
	"context"
	"errors"
	"net/http"

	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/pkg/jwt"
	"hospital-management/pkg/response"

	"github.com/sirupsen/logrus"
)

// SessionCookieName is the cookie that carries the signed session token
const SessionCookieName = "hospital_session"

type contextKey string

const sessionKey contextKey = "session"

type AuthMiddleware struct {
	log         *logrus.Logger
	jwtService  *jwt.JWTService
	sessionRepo repository.SessionRepository
}

func NewAuthMiddleware(log *logrus.Logger, jwtService *jwt.JWTService, sessionRepo repository.SessionRepository) *AuthMiddleware {
	return &AuthMiddleware{
		log:         log,
		jwtService:  jwtService,
		sessionRepo: sessionRepo,
	}
}

var errNoSession = errors.New("no live session")

// RequireSession redirects to the login page unless the request carries a live session
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.sessionFromRequest(r)
		if err != nil {
			if errors.Is(err, errNoSession) {
				response.Redirect(w, r, "/")
				return
			}
			m.log.Warnf("Failed to validate session: %+v", err)
			response.InternalServerError(w, "Failed to validate session")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// LoadSession attaches the session when the request carries a live one and
// otherwise passes the request through untouched.
func (m *AuthMiddleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.sessionFromRequest(r)
		if err != nil {
			if !errors.Is(err, errNoSession) {
				m.log.Warnf("Failed to validate session: %+v", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

func (m *AuthMiddleware) sessionFromRequest(r *http.Request) (*entity.Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, errNoSession
	}

	claims, err := m.jwtService.ValidateToken(cookie.Value)
	if err != nil {
		return nil, errNoSession
	}

	// Check if session exists in Redis (not logged out)
	exists, err := m.sessionRepo.Exists(r.Context(), claims.UserID, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errNoSession
	}

	return claims.Session(), nil
}

// WithSession returns a copy of ctx carrying session
func WithSession(ctx context.Context, session *entity.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSessionFromContext extracts the authenticated session from context
func GetSessionFromContext(ctx context.Context) (*entity.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*entity.Session)
	return session, ok && session != nil
}

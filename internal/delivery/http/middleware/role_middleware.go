package middleware

import (
	"net/http"

	"hospital-management/internal/domain/entity"
	"hospital-management/pkg/response"
)

// RequireCapability redirects to the login page unless the session role holds capability.
// Must run after RequireSession.
func RequireCapability(capability entity.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSessionFromContext(r.Context())
			if !ok || !session.Role.Can(capability) {
				response.Redirect(w, r, "/")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

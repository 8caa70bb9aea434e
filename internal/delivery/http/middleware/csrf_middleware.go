package middleware

import (
	"crypto/rand"
	"net/http"

	"hospital-management/config"
	"hospital-management/pkg/response"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// CSRFFieldName is the hidden form field carrying the token
const CSRFFieldName = "csrf_token"

// NewCSRFMiddleware protects every state-changing request with a CSRF token.
// An empty key is replaced by a random one, so tokens do not survive a restart.
func NewCSRFMiddleware(log *logrus.Logger, cfg config.CSRFConfig) (mux.MiddlewareFunc, error) {
	key := []byte(cfg.Key)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		log.Warn("CSRF_KEY not set, using a random key")
	}

	protect := csrf.Protect(key,
		csrf.Secure(cfg.Secure),
		csrf.Path("/"),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.FieldName(CSRFFieldName),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.WithFields(logrus.Fields{
				"path":   r.URL.Path,
				"reason": csrf.FailureReason(r),
			}).Warn("CSRF validation failed")
			response.Text(w, http.StatusForbidden, "Forbidden - invalid CSRF token")
		})),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		if cfg.Secure {
			return protected
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// without TLS the origin checks must not assume https
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}, nil
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-management/internal/domain/entity"

	"github.com/google/uuid"
)

func TestRequireCapability(t *testing.T) {
	tests := []struct {
		name       string
		session    *entity.Session
		capability entity.Capability
		wantNext   bool
	}{
		{"no session", nil, entity.CapViewPatients, false},
		{"admin creates doctor", &entity.Session{Role: entity.RoleAdmin}, entity.CapCreateDoctor, true},
		{"doctor creates doctor", &entity.Session{Role: entity.RoleDoctor}, entity.CapCreateDoctor, false},
		{"user books", &entity.Session{Role: entity.RoleUser}, entity.CapBookAppointment, true},
		{"doctor books", &entity.Session{Role: entity.RoleDoctor}, entity.CapBookAppointment, false},
		{"unknown role", &entity.Session{Role: "nurse"}, entity.CapViewPatients, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tt.session != nil {
				tt.session.UserID = uuid.New()
				req = req.WithContext(WithSession(req.Context(), tt.session))
			}
			rec := httptest.NewRecorder()

			RequireCapability(tt.capability)(next).ServeHTTP(rec, req)

			if called != tt.wantNext {
				t.Fatalf("expected next called=%v, got %v", tt.wantNext, called)
			}
			if !tt.wantNext {
				if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
					t.Errorf("expected 303 to /, got %d %s", rec.Code, rec.Header().Get("Location"))
				}
			}
		})
	}
}

func TestGetSessionFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := GetSessionFromContext(req.Context()); ok {
		t.Error("expected no session on a bare request")
	}
}

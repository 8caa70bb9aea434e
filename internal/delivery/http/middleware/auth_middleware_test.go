package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-management/config"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/repository/memory"
	"hospital-management/pkg/jwt"

	"github.com/sirupsen/logrus"
)

func TestAuthMiddleware_RequireSession(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	store := memory.NewStore()
	jwtService := jwt.NewJWTService(config.SessionConfig{Secret: "test-secret", Expiry: time.Hour})
	m := NewAuthMiddleware(log, jwtService, store.Sessions())

	user := &entity.User{Username: "dana", Role: entity.RoleDoctor}
	store.Users().Create(context.Background(), user)
	token, tokenID, err := jwtService.GenerateSessionToken(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got *entity.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := m.RequireSession(next)

	serve := func(cookie *http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}
	sessionCookie := &http.Cookie{Name: SessionCookieName, Value: token}

	// signed but never stored
	if rec := serve(sessionCookie); rec.Code != http.StatusSeeOther {
		t.Errorf("expected 303 for a session missing from the store, got %d", rec.Code)
	}

	store.Sessions().Save(context.Background(), &entity.Session{UserID: user.ID, TokenID: tokenID}, time.Hour)

	rec := serve(sessionCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got == nil || got.Username != "dana" || got.Role != entity.RoleDoctor || got.TokenID != tokenID {
		t.Errorf("unexpected session in context: %+v", got)
	}

	if rec := serve(nil); rec.Code != http.StatusSeeOther {
		t.Errorf("expected 303 without cookie, got %d", rec.Code)
	}
	if rec := serve(&http.Cookie{Name: SessionCookieName, Value: token + "x"}); rec.Code != http.StatusSeeOther {
		t.Errorf("expected 303 for a tampered token, got %d", rec.Code)
	}
}

func TestAuthMiddleware_LoadSession(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	store := memory.NewStore()
	jwtService := jwt.NewJWTService(config.SessionConfig{Secret: "test-secret", Expiry: time.Hour})
	m := NewAuthMiddleware(log, jwtService, store.Sessions())

	user := &entity.User{Username: "erin", Role: entity.RoleUser}
	store.Users().Create(context.Background(), user)
	token, tokenID, err := jwtService.GenerateSessionToken(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store.Sessions().Save(context.Background(), &entity.Session{UserID: user.ID, TokenID: tokenID}, time.Hour)

	tests := []struct {
		name        string
		cookie      *http.Cookie
		wantSession bool
	}{
		{"live session", &http.Cookie{Name: SessionCookieName, Value: token}, true},
		{"no cookie", nil, false},
		{"tampered token", &http.Cookie{Name: SessionCookieName, Value: token + "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *entity.Session
			handler := m.LoadSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = GetSessionFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/access", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if tt.wantSession && (got == nil || got.Username != "erin") {
				t.Errorf("expected erin's session in context, got %+v", got)
			}
			if !tt.wantSession && got != nil {
				t.Errorf("expected no session, got %+v", got)
			}
		})
	}
}

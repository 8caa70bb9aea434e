package handler

import (
	"errors"
	"net/http"
	"strings"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/delivery/http/view"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/jwt"
	"hospital-management/pkg/response"
	"hospital-management/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
	jwtService  *jwt.JWTService
	view        *view.Renderer
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator, jwtService *jwt.JWTService, view *view.Renderer) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		jwtService:  jwtService,
		view:        view,
	}
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, view.PageLogin, nil, nil)
}

// AccessPortal renders the landing page for plain user accounts.
// The page is public; a signed-in visitor also gets the nav and log out form.
func (h *AuthHandler) AccessPortal(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	h.view.Render(w, r, view.PageAccess, session, nil)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, view.PageRegister, nil, nil)
}

// Register creates an account and sends the browser back to the login page
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "Invalid form")
		return
	}

	req := dto.RegisterRequest{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.BadRequest(w, h.validator.FormatValidationMessage(err))
		return
	}

	if _, err := h.authUsecase.Register(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUsernameExists):
			response.Text(w, http.StatusConflict, "Username already exists")
		case errors.Is(err, usecase.ErrInvalidRole):
			response.BadRequest(w, "Invalid role")
		case errors.Is(err, usecase.ErrPasswordTooLong):
			response.BadRequest(w, "Password must be at most 72 bytes")
		default:
			response.InternalServerError(w, "Failed to register user")
		}
		return
	}

	response.Redirect(w, r, "/")
}

// Login authenticates the form credentials and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "Invalid form")
		return
	}

	req := dto.LoginRequest{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.Text(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	login, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			response.Text(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    login.Token,
		Path:     "/",
		MaxAge:   int(login.ExpiresIn),
		HttpOnly: true,
		Secure:   h.jwtService.Secure(),
		SameSite: http.SameSiteLaxMode,
	})
	response.Redirect(w, r, "/dashboard")
}

// Logout ends the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Redirect(w, r, "/")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), session); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.jwtService.Secure(),
		SameSite: http.SameSiteLaxMode,
	})
	response.Redirect(w, r, "/")
}

// Dashboard routes the session to the home page of its role
func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Redirect(w, r, "/")
		return
	}

	switch session.Role {
	case entity.RoleAdmin:
		h.view.Render(w, r, view.PageAdminHome, session, nil)
	case entity.RoleDoctor:
		response.Redirect(w, r, "/appointments")
	case entity.RoleUser:
		response.Redirect(w, r, "/access")
	default:
		response.Text(w, http.StatusOK, "Unknown role")
	}
}

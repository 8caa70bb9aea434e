package handler

import (
	"net/http"
	"strings"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/delivery/http/view"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"
	"hospital-management/pkg/validator"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
	view          *view.Renderer
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator, view *view.Renderer) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
		view:          view,
	}
}

func (h *DoctorHandler) AddDoctorPage(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	h.view.Render(w, r, view.PageAddDoctor, session, nil)
}

func (h *DoctorHandler) AddDoctor(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "Invalid form")
		return
	}

	req := dto.CreateDoctorRequest{
		Name: strings.TrimSpace(r.PostFormValue("name")),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.BadRequest(w, h.validator.FormatValidationMessage(err))
		return
	}

	if _, err := h.doctorUsecase.CreateDoctor(r.Context(), session, &req); err != nil {
		response.InternalServerError(w, "Failed to create doctor")
		return
	}

	response.Redirect(w, r, "/dashboard")
}

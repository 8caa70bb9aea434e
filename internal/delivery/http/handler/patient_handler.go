package handler

import (
	"net/http"
	"strconv"
	"strings"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/delivery/http/view"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"
	"hospital-management/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
	view           *view.Renderer
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator, view *view.Renderer) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
		view:           view,
	}
}

// AddPatient creates a patient from the admin home form
func (h *PatientHandler) AddPatient(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "Invalid form")
		return
	}

	age, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("age")))
	if err != nil {
		response.BadRequest(w, "Age must be a whole number")
		return
	}

	req := dto.CreatePatientRequest{
		Name:      strings.TrimSpace(r.PostFormValue("name")),
		Age:       age,
		Condition: r.PostFormValue("condition"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.BadRequest(w, h.validator.FormatValidationMessage(err))
		return
	}

	if _, err := h.patientUsecase.CreatePatient(r.Context(), session, &req); err != nil {
		response.InternalServerError(w, "Failed to create patient")
		return
	}

	response.Redirect(w, r, "/patients")
}

// ListPatients renders all patients, or the ones matching ?query=
func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	patients, err := h.patientUsecase.ListPatients(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	h.view.Render(w, r, view.PagePatients, session, patients)
}

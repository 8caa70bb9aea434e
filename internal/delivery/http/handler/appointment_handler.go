package handler

import (
	"errors"
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

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
	view               *view.Renderer
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator, view *view.Renderer) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
		view:               view,
	}
}

// BookAppointmentPage renders the booking form with every patient and doctor to choose from
func (h *AppointmentHandler) BookAppointmentPage(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	options, err := h.appointmentUsecase.GetBookingOptions(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load booking form")
		return
	}

	h.view.Render(w, r, view.PageBookAppointment, session, options)
}

func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "Invalid form")
		return
	}

	patientID, err := parseID(r.PostFormValue("patient"))
	if err != nil {
		response.BadRequest(w, "Invalid patient")
		return
	}
	doctorID, err := parseID(r.PostFormValue("doctor"))
	if err != nil {
		response.BadRequest(w, "Invalid doctor")
		return
	}

	req := dto.CreateAppointmentRequest{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      strings.TrimSpace(r.PostFormValue("date")),
		Time:      strings.TrimSpace(r.PostFormValue("time")),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.BadRequest(w, h.validator.FormatValidationMessage(err))
		return
	}

	if _, err := h.appointmentUsecase.BookAppointment(r.Context(), session, &req); err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.BadRequest(w, "Patient not found")
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.BadRequest(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Redirect(w, r, "/appointments")
}

// ListAppointments renders the appointments visible to the session
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	appointments, err := h.appointmentUsecase.ListAppointments(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	h.view.Render(w, r, view.PageAppointments, session, appointments)
}

func parseID(value string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(value), 10, 64)
}

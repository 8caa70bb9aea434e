package view

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	r, err := NewRenderer(log)
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	return r
}

func TestRenderer_AllPages(t *testing.T) {
	renderer := newTestRenderer(t)
	admin := &entity.Session{Username: "admin", Role: entity.RoleAdmin}

	tests := []struct {
		page    string
		session *entity.Session
		data    interface{}
		want    string
	}{
		{PageLogin, nil, nil, `action="/login"`},
		{PageAccess, nil, nil, "/book_appointment"},
		{PageRegister, nil, nil, `name="role"`},
		{PageAdminHome, admin, nil, `action="/add_patient"`},
		{PagePatients, admin, &dto.PatientListResponse{Patients: []dto.PatientResponse{{ID: 1, Name: "Ann", Age: 3, Condition: "cold"}}, Total: 1}, "Ann"},
		{PageAddDoctor, admin, nil, `action="/add_doctor"`},
		{PageBookAppointment, admin, &dto.BookingOptionsResponse{Doctors: []dto.DoctorResponse{{ID: 4, Name: "Grey"}}}, `<option value="4">Grey</option>`},
		{PageAppointments, admin, &dto.AppointmentListResponse{}, "No appointments"},
	}

	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			rec := httptest.NewRecorder()
			renderer.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.page, tt.session, tt.data)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("expected body to contain %q", tt.want)
			}
		})
	}
}

func TestRenderer_EscapesUserInput(t *testing.T) {
	renderer := newTestRenderer(t)
	data := &dto.PatientListResponse{
		Patients: []dto.PatientResponse{{ID: 1, Name: "<script>alert(1)</script>"}},
		Query:    `"><b>`,
	}

	rec := httptest.NewRecorder()
	renderer.Render(rec, httptest.NewRequest(http.MethodGet, "/patients", nil), PagePatients, &entity.Session{Role: entity.RoleUser}, data)

	body := rec.Body.String()
	if strings.Contains(body, "<script>alert(1)</script>") || strings.Contains(body, `"><b>`) {
		t.Error("user input must be escaped")
	}
}

func TestRenderer_NavFollowsCapabilities(t *testing.T) {
	renderer := newTestRenderer(t)

	rec := httptest.NewRecorder()
	renderer.Render(rec, httptest.NewRequest(http.MethodGet, "/appointments", nil), PageAppointments,
		&entity.Session{Username: "doc", Role: entity.RoleDoctor}, &dto.AppointmentListResponse{})

	body := rec.Body.String()
	if strings.Contains(body, `href="/add_doctor"`) || strings.Contains(body, `href="/book_appointment"`) {
		t.Error("doctor nav must not link to admin or booking pages")
	}
	if !strings.Contains(body, `href="/patients"`) {
		t.Error("doctor nav should link to patients")
	}
}

func TestRenderer_UnknownPage(t *testing.T) {
	renderer := newTestRenderer(t)
	rec := httptest.NewRecorder()
	renderer.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), "missing.html", nil, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

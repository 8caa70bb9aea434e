package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"hospital-management/config"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/repository/memory"
	"hospital-management/internal/service"
	"hospital-management/pkg/jwt"
	"hospital-management/pkg/metrics"

	"github.com/sirupsen/logrus"
)

type testEnv struct {
	store      *memory.Store
	metrics    *metrics.Collector
	jwtService *jwt.JWTService

	auth         AuthUsecase
	patients     PatientUsecase
	doctors      DoctorUsecase
	appointments AppointmentUsecase
	auditLogs    AuditLogUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	store := memory.NewStore()
	collector := metrics.NewCollector("test")
	jwtService := jwt.NewJWTService(config.SessionConfig{Secret: "test-secret", Expiry: time.Hour})
	audit := service.NewAuditService(log, store.AuditLogs(), collector)

	return &testEnv{
		store:        store,
		metrics:      collector,
		jwtService:   jwtService,
		auth:         NewAuthUsecase(log, store.Users(), store.Doctors(), store.Sessions(), jwtService, audit, collector),
		patients:     NewPatientUsecase(log, store.Patients(), audit, collector),
		doctors:      NewDoctorUsecase(log, store.Users(), store.Doctors(), audit, collector),
		appointments: NewAppointmentUsecase(log, store.Patients(), store.Doctors(), store.Appointments(), audit, collector),
		auditLogs:    NewAuditLogUsecase(log, store.AuditLogs()),
	}
}

// mustRegister registers an account and returns its session as if it had logged in
func (e *testEnv) mustRegister(t *testing.T, username, password string, role entity.Role) *entity.Session {
	t.Helper()
	user, err := e.auth.Register(context.Background(), &dto.RegisterRequest{
		Username: username,
		Password: password,
		Role:     role.String(),
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return &entity.Session{UserID: user.ID, Username: user.Username, Role: role, TokenID: "test-token"}
}

func (e *testEnv) mustCreatePatient(t *testing.T, actor *entity.Session, name string, age int, condition string) *dto.PatientResponse {
	t.Helper()
	patient, err := e.patients.CreatePatient(context.Background(), actor, &dto.CreatePatientRequest{
		Name:      name,
		Age:       age,
		Condition: condition,
	})
	if err != nil {
		t.Fatalf("create patient %s: %v", name, err)
	}
	return patient
}

func (e *testEnv) mustCreateDoctor(t *testing.T, actor *entity.Session, name string) *dto.DoctorResponse {
	t.Helper()
	doctor, err := e.doctors.CreateDoctor(context.Background(), actor, &dto.CreateDoctorRequest{Name: name})
	if err != nil {
		t.Fatalf("create doctor %s: %v", name, err)
	}
	return doctor
}

func (e *testEnv) mustBook(t *testing.T, actor *entity.Session, patientID, doctorID int64, date, tm string) *dto.AppointmentResponse {
	t.Helper()
	appt, err := e.appointments.BookAppointment(context.Background(), actor, &dto.CreateAppointmentRequest{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Time:      tm,
	})
	if err != nil {
		t.Fatalf("book appointment: %v", err)
	}
	return appt
}

func auditActions(t *testing.T, e *testEnv) []string {
	t.Helper()
	logs, err := e.auditLogs.GetAllAuditLogs(context.Background())
	if err != nil {
		t.Fatalf("get audit logs: %v", err)
	}
	actions := make([]string, len(logs.Logs))
	for i, l := range logs.Logs {
		actions[i] = l.Action
	}
	return actions
}

func containsAction(actions []string, action string) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

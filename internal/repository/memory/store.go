// Package memory holds thread-safe in-memory implementations of the domain
// repositories. Constraint violations are reported as *pgconn.PgError values
// carrying the same codes and constraint names as the Postgres schema.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Store is a single in-memory database shared by the repositories it hands out.
type Store struct {
	mu sync.RWMutex

	users        map[uuid.UUID]*entity.User
	patients     []*entity.Patient
	doctors      []*entity.Doctor
	appointments []*entity.Appointment
	auditLogs    []*entity.AuditLog
	sessions     map[string]sessionEntry

	lastPatientID     int64
	lastDoctorID      int64
	lastAppointmentID int64
	lastAuditLogID    int64

	now func() time.Time
}

type sessionEntry struct {
	session   entity.Session
	expiresAt time.Time
}

// NewStore creates a new empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]*entity.User),
		sessions: make(map[string]sessionEntry),
		now:      time.Now,
	}
}

// SetClock replaces the clock used for timestamps and session expiry.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Users() repository.UserRepository               { return &userRepository{s} }
func (s *Store) Patients() repository.PatientRepository         { return &patientRepository{s} }
func (s *Store) Doctors() repository.DoctorRepository           { return &doctorRepository{s} }
func (s *Store) Appointments() repository.AppointmentRepository { return &appointmentRepository{s} }
func (s *Store) AuditLogs() repository.AuditLogRepository       { return &auditLogRepository{s} }
func (s *Store) Sessions() repository.SessionRepository         { return &sessionRepository{s} }

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Code:           "23505",
		Message:        fmt.Sprintf("duplicate key value violates unique constraint %q", constraint),
		ConstraintName: constraint,
	}
}

func foreignKeyViolation(constraint string) error {
	return &pgconn.PgError{
		Code:           "23503",
		Message:        fmt.Sprintf("insert violates foreign key constraint %q", constraint),
		ConstraintName: constraint,
	}
}

// Users

type userRepository struct{ s *Store }

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return uniqueViolation("users_username_key")
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := r.s.now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	stored.Doctor = nil
	r.s.users[user.ID] = &stored
	return nil
}

func (r *userRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Username == username {
			found := *user
			return &found, nil
		}
	}
	return nil, nil
}

// Patients

type patientRepository struct{ s *Store }

func (r *patientRepository) Create(_ context.Context, patient *entity.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.lastPatientID++
	patient.ID = r.s.lastPatientID
	patient.CreatedAt = r.s.now()

	stored := *patient
	stored.Appointments = nil
	r.s.patients = append(r.s.patients, &stored)
	return nil
}

func (r *patientRepository) FindByID(_ context.Context, id int64) (*entity.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if p := r.s.patient(id); p != nil {
		found := *p
		return &found, nil
	}
	return nil, nil
}

func (r *patientRepository) FindAll(_ context.Context) ([]entity.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	patients := make([]entity.Patient, 0, len(r.s.patients))
	for _, p := range r.s.patients {
		patients = append(patients, *p)
	}
	return patients, nil
}

// Search matches by plain substring, the same case-sensitive semantics as LIKE
func (r *patientRepository) Search(_ context.Context, query string) ([]entity.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	patients := []entity.Patient{}
	for _, p := range r.s.patients {
		if strings.Contains(p.Name, query) || strings.Contains(p.Condition, query) {
			patients = append(patients, *p)
		}
	}
	return patients, nil
}

func (s *Store) patient(id int64) *entity.Patient {
	for _, p := range s.patients {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Doctors

type doctorRepository struct{ s *Store }

func (r *doctorRepository) Create(_ context.Context, doctor *entity.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if doctor.UserID != nil {
		if _, ok := r.s.users[*doctor.UserID]; !ok {
			return foreignKeyViolation("doctors_user_id_fkey")
		}
		if r.s.doctorByUser(*doctor.UserID) != nil {
			return uniqueViolation("doctors_user_id_key")
		}
	}

	r.s.lastDoctorID++
	doctor.ID = r.s.lastDoctorID
	doctor.CreatedAt = r.s.now()

	stored := *doctor
	stored.User = nil
	stored.Appointments = nil
	r.s.doctors = append(r.s.doctors, &stored)
	return nil
}

func (r *doctorRepository) FindByID(_ context.Context, id int64) (*entity.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if d := r.s.doctor(id); d != nil {
		found := *d
		return &found, nil
	}
	return nil, nil
}

func (r *doctorRepository) FindAll(_ context.Context) ([]entity.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	doctors := make([]entity.Doctor, 0, len(r.s.doctors))
	for _, d := range r.s.doctors {
		doctors = append(doctors, *d)
	}
	return doctors, nil
}

func (r *doctorRepository) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if d := r.s.doctorByUser(userID); d != nil {
		found := *d
		return &found, nil
	}
	return nil, nil
}

func (r *doctorRepository) FindUnlinkedByName(_ context.Context, name string) (*entity.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, d := range r.s.doctors {
		if d.Name == name && d.UserID == nil {
			found := *d
			return &found, nil
		}
	}
	return nil, nil
}

func (r *doctorRepository) LinkUser(_ context.Context, doctorID int64, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d := r.s.doctor(doctorID)
	if d == nil || d.UserID != nil {
		return gorm.ErrRecordNotFound
	}
	if _, ok := r.s.users[userID]; !ok {
		return foreignKeyViolation("doctors_user_id_fkey")
	}
	if r.s.doctorByUser(userID) != nil {
		return uniqueViolation("doctors_user_id_key")
	}

	linked := userID
	d.UserID = &linked
	return nil
}

func (s *Store) doctor(id int64) *entity.Doctor {
	for _, d := range s.doctors {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (s *Store) doctorByUser(userID uuid.UUID) *entity.Doctor {
	for _, d := range s.doctors {
		if d.UserID != nil && *d.UserID == userID {
			return d
		}
	}
	return nil
}

// Appointments

type appointmentRepository struct{ s *Store }

func (r *appointmentRepository) Create(_ context.Context, appointment *entity.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.patient(appointment.PatientID) == nil {
		return foreignKeyViolation("appointments_patient_id_fkey")
	}
	if r.s.doctor(appointment.DoctorID) == nil {
		return foreignKeyViolation("appointments_doctor_id_fkey")
	}

	r.s.lastAppointmentID++
	appointment.ID = r.s.lastAppointmentID
	appointment.CreatedAt = r.s.now()

	stored := *appointment
	stored.Patient = entity.Patient{}
	stored.Doctor = entity.Doctor{}
	r.s.appointments = append(r.s.appointments, &stored)
	return nil
}

func (r *appointmentRepository) FindAll(_ context.Context) ([]entity.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.appointmentsWhere(func(*entity.Appointment) bool { return true }), nil
}

func (r *appointmentRepository) FindByDoctorID(_ context.Context, doctorID int64) ([]entity.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.appointmentsWhere(func(a *entity.Appointment) bool { return a.DoctorID == doctorID }), nil
}

// appointmentsWhere returns matching appointments with Patient and Doctor loaded
func (s *Store) appointmentsWhere(match func(*entity.Appointment) bool) []entity.Appointment {
	appointments := []entity.Appointment{}
	for _, a := range s.appointments {
		if !match(a) {
			continue
		}
		found := *a
		if p := s.patient(a.PatientID); p != nil {
			found.Patient = *p
		}
		if d := s.doctor(a.DoctorID); d != nil {
			found.Doctor = *d
		}
		appointments = append(appointments, found)
	}
	return appointments
}

// Audit logs

type auditLogRepository struct{ s *Store }

func (r *auditLogRepository) Create(_ context.Context, log *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if log.UserID != nil {
		if _, ok := r.s.users[*log.UserID]; !ok {
			return foreignKeyViolation("audit_logs_user_id_fkey")
		}
	}

	r.s.lastAuditLogID++
	log.ID = r.s.lastAuditLogID
	log.CreatedAt = r.s.now()

	stored := *log
	stored.User = nil
	r.s.auditLogs = append(r.s.auditLogs, &stored)
	return nil
}

// FindAll returns entries newest first with User loaded
func (r *auditLogRepository) FindAll(_ context.Context) ([]entity.AuditLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	logs := make([]entity.AuditLog, 0, len(r.s.auditLogs))
	for _, l := range r.s.auditLogs {
		found := *l
		if l.UserID != nil {
			if u, ok := r.s.users[*l.UserID]; ok {
				user := *u
				found.User = &user
			}
		}
		logs = append(logs, found)
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].ID > logs[j].ID })
	return logs, nil
}

// Sessions

type sessionRepository struct{ s *Store }

func sessionKey(userID uuid.UUID, tokenID string) string {
	return userID.String() + ":" + tokenID
}

func (r *sessionRepository) Save(_ context.Context, session *entity.Session, ttl time.Duration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.sessions[sessionKey(session.UserID, session.TokenID)] = sessionEntry{
		session:   *session,
		expiresAt: r.s.now().Add(ttl),
	}
	return nil
}

func (r *sessionRepository) Exists(_ context.Context, userID uuid.UUID, tokenID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entry, ok := r.s.sessions[sessionKey(userID, tokenID)]
	if !ok {
		return false, nil
	}
	return r.s.now().Before(entry.expiresAt), nil
}

func (r *sessionRepository) Delete(_ context.Context, userID uuid.UUID, tokenID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.sessions, sessionKey(userID, tokenID))
	return nil
}

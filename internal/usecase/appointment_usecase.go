package usecase

import (
	"context"
	"strconv"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"
	"hospital-management/pkg/metrics"

	"github.com/sirupsen/logrus"
)

type AppointmentUsecase interface {
	GetBookingOptions(ctx context.Context) (*dto.BookingOptionsResponse, error)
	BookAppointment(ctx context.Context, actor *entity.Session, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, viewer *entity.Session) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
	metrics         *metrics.Collector
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	collector *metrics.Collector,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		metrics:         collector,
	}
}

func (u *appointmentUsecase) GetBookingOptions(ctx context.Context) (*dto.BookingOptionsResponse, error) {
	patients, err := u.patientRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return &dto.BookingOptionsResponse{
		Patients: converter.PatientsToResponses(patients),
		Doctors:  converter.DoctorsToResponses(doctors),
	}, nil
}

// BookAppointment stores the appointment as submitted. Overlapping bookings
// for the same doctor and slot are accepted.
func (u *appointmentUsecase) BookAppointment(ctx context.Context, actor *entity.Session, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorRepo.FindByID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointment := &entity.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      req.Date,
		Time:      req.Time,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		switch {
		case isForeignKeyError(err, "patient"):
			return nil, ErrPatientNotFound
		case isForeignKeyError(err, "doctor"):
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	appointment.Patient = *patient
	appointment.Doctor = *doctor
	resp := converter.AppointmentToResponse(appointment)

	u.auditService.LogCreate(ctx, &actor.UserID, entity.AuditActionAppointmentCreate, "appointment", strconv.FormatInt(appointment.ID, 10), resp)
	u.metrics.AppointmentsBookedTotal.Inc()

	u.log.Infof("Appointment booked: id=%d, patient=%d, doctor=%d, date=%s, time=%s",
		appointment.ID, patient.ID, doctor.ID, appointment.Date, appointment.Time)
	return resp, nil
}

// ListAppointments shows admins every appointment. Any other role sees the
// appointments of the doctor linked to its account, or nothing when no doctor is linked.
func (u *appointmentUsecase) ListAppointments(ctx context.Context, viewer *entity.Session) (*dto.AppointmentListResponse, error) {
	var appointments []entity.Appointment

	if viewer.Role == entity.RoleAdmin {
		all, err := u.appointmentRepo.FindAll(ctx)
		if err != nil {
			u.log.Warnf("Failed to find all appointments: %+v", err)
			return nil, err
		}
		appointments = all
	} else {
		doctor, err := u.doctorRepo.FindByUserID(ctx, viewer.UserID)
		if err != nil {
			u.log.Warnf("Failed to find doctor for user %s: %+v", viewer.UserID, err)
			return nil, err
		}
		if doctor != nil {
			appointments, err = u.appointmentRepo.FindByDoctorID(ctx, doctor.ID)
			if err != nil {
				u.log.Warnf("Failed to find appointments for doctor %d: %+v", doctor.ID, err)
				return nil, err
			}
		}
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

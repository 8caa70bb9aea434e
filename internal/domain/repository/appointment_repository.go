package repository

import (
	"context"

	"hospital-management/internal/domain/entity"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindAll(ctx context.Context) ([]entity.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID int64) ([]entity.Appointment, error)
}

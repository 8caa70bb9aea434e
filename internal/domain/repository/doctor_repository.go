package repository

import (
	"context"

	"hospital-management/internal/domain/entity"

	"github.com/google/uuid"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, id int64) (*entity.Doctor, error)
	FindAll(ctx context.Context) ([]entity.Doctor, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Doctor, error)
	// FindUnlinkedByName returns the oldest doctor named name that has no user yet
	FindUnlinkedByName(ctx context.Context, name string) (*entity.Doctor, error)
	LinkUser(ctx context.Context, doctorID int64, userID uuid.UUID) error
}

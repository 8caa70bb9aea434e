package repository

import (
	"context"

	"hospital-management/internal/domain/entity"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id int64) (*entity.Patient, error)
	FindAll(ctx context.Context) ([]entity.Patient, error)
	// Search matches patients whose name or condition contains query
	Search(ctx context.Context, query string) ([]entity.Patient, error)
}

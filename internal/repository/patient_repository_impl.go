package repository

import (
	"context"
	"errors"
	"strings"

	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, id int64) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(ctx context.Context) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := r.db.WithContext(ctx).Order("id ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// Search uses LIKE, so matching is case-sensitive on Postgres
func (r *patientRepository) Search(ctx context.Context, query string) ([]entity.Patient, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"

	var patients []entity.Patient
	err := r.db.WithContext(ctx).
		Where("name LIKE ? OR condition LIKE ?", pattern, pattern).
		Order("id ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

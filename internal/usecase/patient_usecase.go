package usecase

import (
	"context"
	"errors"
	"strconv"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"
	"hospital-management/pkg/metrics"

	"github.com/sirupsen/logrus"
)

var ErrPatientNotFound = errors.New("patient not found")

type PatientUsecase interface {
	CreatePatient(ctx context.Context, actor *entity.Session, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	ListPatients(ctx context.Context, query string) (*dto.PatientListResponse, error)
}

type patientUsecase struct {
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
	metrics      *metrics.Collector
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
	collector *metrics.Collector,
) PatientUsecase {
	return &patientUsecase{
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
		metrics:      collector,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, actor *entity.Session, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	patient := &entity.Patient{
		Name:      req.Name,
		Age:       req.Age,
		Condition: req.Condition,
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	resp := converter.PatientToResponse(patient)
	u.auditService.LogCreate(ctx, &actor.UserID, entity.AuditActionPatientCreate, "patient", strconv.FormatInt(patient.ID, 10), resp)
	u.metrics.PatientsCreatedTotal.Inc()

	return resp, nil
}

// ListPatients returns every patient, or only those whose name or condition
// contains query when query is non-empty
func (u *patientUsecase) ListPatients(ctx context.Context, query string) (*dto.PatientListResponse, error) {
	var (
		patients []entity.Patient
		err      error
	)
	if query != "" {
		patients, err = u.patientRepo.Search(ctx, query)
	} else {
		patients, err = u.patientRepo.FindAll(ctx)
	}
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Query:    query,
		Total:    len(patients),
	}, nil
}

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

var ErrDoctorNotFound = errors.New("doctor not found")

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, actor *entity.Session, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
}

type doctorUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
	metrics      *metrics.Collector
}

func NewDoctorUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
	collector *metrics.Collector,
) DoctorUsecase {
	return &doctorUsecase{
		log:          log,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		metrics:      collector,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, actor *entity.Session, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor := &entity.Doctor{Name: req.Name}

	account, err := u.linkableAccount(ctx, req.Name)
	if err != nil {
		u.log.Warnf("Failed to look up account for doctor %s: %+v", req.Name, err)
		return nil, err
	}
	if account != nil {
		doctor.UserID = &account.ID
	}

	if err := u.doctorRepo.Create(ctx, doctor); err != nil {
		// the account was linked concurrently; keep the doctor unlinked
		if doctor.UserID != nil && isDuplicateKeyError(err, "user_id") {
			doctor.UserID = nil
			err = u.doctorRepo.Create(ctx, doctor)
		}
		if err != nil {
			u.log.Warnf("Failed to create doctor: %+v", err)
			return nil, err
		}
	}

	resp := converter.DoctorToResponse(doctor)
	u.auditService.LogCreate(ctx, &actor.UserID, entity.AuditActionDoctorCreate, "doctor", strconv.FormatInt(doctor.ID, 10), resp)
	u.metrics.DoctorsCreatedTotal.Inc()

	return resp, nil
}

// linkableAccount returns the doctor-role user named name that has no doctor yet
func (u *doctorUsecase) linkableAccount(ctx context.Context, name string) (*entity.User, error) {
	user, err := u.userRepo.FindByUsername(ctx, name)
	if err != nil || user == nil || user.Role != entity.RoleDoctor {
		return nil, err
	}

	linked, err := u.doctorRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if linked != nil {
		return nil, nil
	}
	return user, nil
}

func (u *doctorUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

package usecase

import (
	"context"
	"errors"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"
	"hospital-management/pkg/jwt"
	"hospital-management/pkg/metrics"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrPasswordTooLong    = errors.New("password too long")
)

// Seeded on first start when no account named admin exists
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, session *entity.Session) error
	EnsureDefaultAdmin(ctx context.Context) (bool, error)
}

type authUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorRepository
	sessionRepo  repository.SessionRepository
	jwtService   *jwt.JWTService
	auditService service.AuditService
	metrics      *metrics.Collector
}

func NewAuthUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	sessionRepo repository.SessionRepository,
	jwtService *jwt.JWTService,
	auditService service.AuditService,
	collector *metrics.Collector,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		sessionRepo:  sessionRepo,
		jwtService:   jwtService,
		auditService: auditService,
		metrics:      collector,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	role := entity.Role(req.Role)
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	existing, err := u.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username: req.Username,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), converter.UserToResponse(user))
	u.metrics.RegistrationsTotal.WithLabelValues(role.String()).Inc()

	if role == entity.RoleDoctor {
		u.linkDoctorRecord(ctx, user)
	}

	return converter.UserToResponse(user), nil
}

// linkDoctorRecord attaches a doctor created before its account existed.
// Registration still succeeds if linking fails.
func (u *authUsecase) linkDoctorRecord(ctx context.Context, user *entity.User) {
	doctor, err := u.doctorRepo.FindUnlinkedByName(ctx, user.Username)
	if err != nil {
		u.log.Warnf("Failed to find doctor for %s: %+v", user.Username, err)
		return
	}
	if doctor == nil {
		return
	}

	if err := u.doctorRepo.LinkUser(ctx, doctor.ID, user.ID); err != nil {
		u.log.Warnf("Failed to link doctor %d to user %s: %+v", doctor.ID, user.ID, err)
		return
	}

	u.auditService.LogEvent(ctx, &user.ID, entity.AuditActionDoctorLink, entity.JSON{
		"doctor_id": doctor.ID,
		"user_id":   user.ID.String(),
	})
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := u.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		u.metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		u.auditService.LogEvent(ctx, nil, entity.AuditActionUserLoginFailed, entity.JSON{"username": req.Username})
		return nil, ErrInvalidCredentials
	}

	token, tokenID, err := u.jwtService.GenerateSessionToken(user)
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		return nil, err
	}

	session := &entity.Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		TokenID:  tokenID,
	}
	if err := u.sessionRepo.Save(ctx, session, u.jwtService.GetExpiry()); err != nil {
		u.log.Warnf("Failed to store session: %+v", err)
		return nil, err
	}

	u.metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	u.auditService.LogEvent(ctx, &user.ID, entity.AuditActionUserLogin, entity.JSON{"token_id": tokenID})

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(u.jwtService.GetExpiry().Seconds()),
		Username:  user.Username,
		Role:      user.Role.String(),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, session *entity.Session) error {
	if err := u.sessionRepo.Delete(ctx, session.UserID, session.TokenID); err != nil {
		u.log.Warnf("Failed to delete session: %+v", err)
		return err
	}

	u.auditService.LogEvent(ctx, &session.UserID, entity.AuditActionUserLogout, entity.JSON{"token_id": session.TokenID})
	return nil
}

// EnsureDefaultAdmin creates the default admin account unless a user named admin exists.
// It reports whether an account was created.
func (u *authUsecase) EnsureDefaultAdmin(ctx context.Context) (bool, error) {
	existing, err := u.userRepo.FindByUsername(ctx, DefaultAdminUsername)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	admin := &entity.User{
		Username: DefaultAdminUsername,
		Password: string(hashedPassword),
		Role:     entity.RoleAdmin,
	}
	if err := u.userRepo.Create(ctx, admin); err != nil {
		// another instance seeded it first
		if isDuplicateKeyError(err, "username") {
			return false, nil
		}
		return false, err
	}

	u.auditService.LogCreate(ctx, &admin.ID, entity.AuditActionUserRegister, "user", admin.ID.String(), converter.UserToResponse(admin))
	u.log.Info("Default admin user created")
	return true, nil
}

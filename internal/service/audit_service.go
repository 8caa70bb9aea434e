package service

import (
	"context"

	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditService writes audit entries. A failed write is logged and counted but
// never fails the action being audited.
type AuditService interface {
	LogCreate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{})
	LogEvent(ctx context.Context, userID *uuid.UUID, action string, details entity.JSON)
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
	metrics   *metrics.Collector
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository, collector *metrics.Collector) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
		metrics:   collector,
	}
}

// LogCreate records a newly created record
func (s *auditService) LogCreate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) {
	s.write(ctx, userID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"new_value": newValue,
	})
}

// LogEvent records an action that does not create a record, such as a login
func (s *auditService) LogEvent(ctx context.Context, userID *uuid.UUID, action string, details entity.JSON) {
	s.write(ctx, userID, action, details)
}

func (s *auditService) write(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log %s: %+v", action, err)
		s.metrics.AuditEntriesFailedTotal.Inc()
		return
	}

	s.metrics.AuditEntriesTotal.Inc()
}

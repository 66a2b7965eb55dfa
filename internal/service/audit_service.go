package service

import (
	"context"

	"doctor-portal/internal/domain/entity"
	"doctor-portal/internal/domain/repository"
	"doctor-portal/pkg/monitoring"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditService records who did what. Writes are best-effort: a failure is
// logged and returned, and callers never fail a request because of it.
type AuditService interface {
	LogCreate(ctx context.Context, doctorID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, doctorID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogEvent(ctx context.Context, doctorID *uuid.UUID, action string, metadata map[string]interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
	metrics   *monitoring.MetricsCollector
}

// NewAuditService builds the audit writer. metrics may be nil.
func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository, metrics *monitoring.MetricsCollector) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
		metrics:   metrics,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, doctorID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(ctx, doctorID, action, map[string]interface{}{
		"entity":    entityName,
		"entity_id": entityID,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, doctorID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(ctx, doctorID, action, map[string]interface{}{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

func (s *auditService) LogEvent(ctx context.Context, doctorID *uuid.UUID, action string, metadata map[string]interface{}) error {
	return s.write(ctx, doctorID, action, metadata)
}

func (s *auditService) write(ctx context.Context, doctorID *uuid.UUID, action string, metadata map[string]interface{}) error {
	auditLog := &entity.AuditLog{
		DoctorID: doctorID,
		Action:   action,
		Metadata: metadata,
	}

	err := s.auditRepo.Create(ctx, auditLog)
	if s.metrics != nil {
		s.metrics.RecordAuditEvent(action, err == nil)
	}
	if err != nil {
		s.log.Warnf("Failed to create audit log for %s: %+v", action, err)
		return err
	}

	return nil
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  *uuid.UUID        `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	Action    string            `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Common audit actions
const (
	AuditActionDoctorRegister     = "doctor.register"
	AuditActionDoctorLogin        = "doctor.login"
	AuditActionDoctorLogout       = "doctor.logout"
	AuditActionDoctorUpdate       = "doctor.update"
	AuditActionPatientCreate      = "patient.create"
	AuditActionPrescriptionCreate = "prescription.create"
)

package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Prescription is append-only: it is never updated after creation.
type Prescription struct {
	ID          uuid.UUID                       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID    uuid.UUID                       `gorm:"type:uuid;not null;index" json:"doctorId"`
	PatientID   uuid.UUID                       `gorm:"type:uuid;not null;index" json:"patientId"`
	Symptoms    pq.StringArray                  `gorm:"type:text[];not null" json:"symptoms"`
	Diagnosis   string                          `gorm:"type:text;not null" json:"diagnosis"`
	Medications datatypes.JSONSlice[Medication] `gorm:"type:jsonb;not null" json:"medications"`
	CreatedAt   time.Time                       `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt   time.Time                       `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
	Patient *Patient `gorm:"foreignKey:PatientID" json:"-"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type VitalSigns struct {
	BloodPressure string `json:"bloodPressure"`
	Temperature   string `json:"temperature"`
	Pulse         int    `json:"pulse"`
	Weight        string `json:"weight"`
}

type MedicalHistoryEntry struct {
	Year  int    `json:"year"`
	Notes string `json:"notes"`
}

type Diagnosis struct {
	Primary string `json:"primary"`
	Status  string `json:"status"`
}

// Medication is one prescribed or currently taken drug.
type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
}

// Patient belongs to exactly one doctor; every read is scoped by DoctorID.
type Patient struct {
	ID             uuid.UUID                                `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID       uuid.UUID                                `gorm:"type:uuid;not null;index" json:"doctor"`
	Name           string                                   `gorm:"type:varchar(255);not null" json:"name"`
	Age            int                                      `gorm:"not null" json:"age"`
	Gender         string                                   `gorm:"type:varchar(10);not null" json:"gender"`
	Phone          string                                   `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email          string                                   `gorm:"type:varchar(255)" json:"email,omitempty"`
	LastVisit      *time.Time                               `gorm:"type:timestamptz" json:"lastVisit,omitempty"`
	Diagnosis      datatypes.JSONType[Diagnosis]            `gorm:"type:jsonb" json:"diagnosis"`
	VitalSigns     datatypes.JSONType[VitalSigns]           `gorm:"type:jsonb" json:"vitalSigns"`
	MedicalHistory datatypes.JSONSlice[MedicalHistoryEntry] `gorm:"type:jsonb" json:"medicalHistory"`
	Medications    datatypes.JSONSlice[Medication]          `gorm:"type:jsonb" json:"medications"`
	Allergies      pq.StringArray                           `gorm:"type:text[]" json:"allergies"`
	CreatedAt      time.Time                                `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time                                `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	Doctor *Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}

func (Patient) TableName() string {
	return "patients"
}

// IsOwnedBy reports whether doctorID owns the patient.
func (p *Patient) IsOwnedBy(doctorID uuid.UUID) bool {
	return p.DoctorID == doctorID
}

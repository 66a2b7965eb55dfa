package dto

import (
	"time"

	"github.com/google/uuid"
)

type MedicationPayload struct {
	Name         string `json:"name" validate:"required,max=255"`
	Dosage       string `json:"dosage" validate:"required,max=255"`
	Instructions string `json:"instructions" validate:"required"`
}

type DiagnosisPayload struct {
	Primary string `json:"primary"`
	Status  string `json:"status"`
}

type VitalSignsPayload struct {
	BloodPressure string `json:"bloodPressure"`
	Temperature   string `json:"temperature"`
	Pulse         int    `json:"pulse" validate:"gte=0"`
	Weight        string `json:"weight"`
}

type MedicalHistoryPayload struct {
	Year  int    `json:"year" validate:"required,gte=1900,notfutureyear"`
	Notes string `json:"notes" validate:"required"`
}

type CreatePatientRequest struct {
	Name           string                  `json:"name" validate:"required,max=255"`
	Age            *int                    `json:"age" validate:"required,gte=0,lte=150"`
	Gender         string                  `json:"gender" validate:"required,oneof=Male Female Other"`
	Email          string                  `json:"email" validate:"omitempty,email"`
	Phone          string                  `json:"phone" validate:"omitempty,max=20"`
	LastVisit      *time.Time              `json:"lastVisit"`
	Diagnosis      *DiagnosisPayload       `json:"diagnosis"`
	VitalSigns     *VitalSignsPayload      `json:"vitalSigns"`
	MedicalHistory []MedicalHistoryPayload `json:"medicalHistory" validate:"omitempty,dive"`
	Medications    []MedicationPayload     `json:"medications" validate:"omitempty,dive"`
	Allergies      []string                `json:"allergies" validate:"omitempty,dive,required"`
	// Doctor, when sent, must be the signed-in doctor.
	Doctor string `json:"doctor" validate:"omitempty,uuid"`
}

type PatientResponse struct {
	ID             uuid.UUID               `json:"id"`
	Doctor         uuid.UUID               `json:"doctor"`
	Name           string                  `json:"name"`
	Age            int                     `json:"age"`
	Gender         string                  `json:"gender"`
	Email          string                  `json:"email,omitempty"`
	Phone          string                  `json:"phone,omitempty"`
	LastVisit      *time.Time              `json:"lastVisit,omitempty"`
	Diagnosis      DiagnosisPayload        `json:"diagnosis"`
	VitalSigns     VitalSignsPayload       `json:"vitalSigns"`
	MedicalHistory []MedicalHistoryPayload `json:"medicalHistory"`
	Medications    []MedicationPayload     `json:"medications"`
	Allergies      []string                `json:"allergies"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

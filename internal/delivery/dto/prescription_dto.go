package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePrescriptionRequest struct {
	PatientID string `json:"patientId" validate:"required,uuid"`
	// DoctorID, when sent, must be the signed-in doctor.
	DoctorID    string              `json:"doctorId" validate:"omitempty,uuid"`
	Symptoms    []string            `json:"symptoms" validate:"required,min=1,dive,required"`
	Diagnosis   string              `json:"diagnosis" validate:"required"`
	Medications []MedicationPayload `json:"medications" validate:"required,min=1,dive"`
}

type PrescriptionResponse struct {
	ID          uuid.UUID           `json:"id"`
	DoctorID    uuid.UUID           `json:"doctorId"`
	PatientID   uuid.UUID           `json:"patientId"`
	Symptoms    []string            `json:"symptoms"`
	Diagnosis   string              `json:"diagnosis"`
	Medications []MedicationPayload `json:"medications"`
	Doctor      *DoctorSummary      `json:"doctor,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}

type CreatePrescriptionResponse struct {
	Message      string                `json:"message"`
	Prescription *PrescriptionResponse `json:"prescription"`
}

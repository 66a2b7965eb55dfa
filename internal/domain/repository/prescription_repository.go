package repository

import (
	"context"

	"doctor-portal/internal/domain/entity"

	"github.com/google/uuid"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *entity.Prescription) error
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Prescription, error)
}

package repository

import (
	"context"

	"doctor-portal/internal/domain/entity"

	"github.com/google/uuid"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Patient, error)
}

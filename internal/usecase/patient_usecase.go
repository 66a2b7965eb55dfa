package usecase

import (
	"context"

	"doctor-portal/internal/converter"
	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/domain/entity"
	"doctor-portal/internal/domain/repository"
	"doctor-portal/internal/service"
	"doctor-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PatientUsecase serves patient records. Every operation is scoped to the
// signed-in doctor; patients of other doctors are reported as not found.
type PatientUsecase interface {
	ListPatients(ctx context.Context, doctorID uuid.UUID, requestedDoctorID string) ([]dto.PatientResponse, error)
	GetPatient(ctx context.Context, doctorID uuid.UUID, patientID string) (*dto.PatientResponse, error)
	CreatePatient(ctx context.Context, doctorID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	log          *logrus.Logger
	validator    *validator.CustomValidator
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	log *logrus.Logger,
	validator *validator.CustomValidator,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:          log,
		validator:    validator,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

// ListPatients returns the doctor's patients. A requestedDoctorID naming
// anyone else is refused.
func (u *patientUsecase) ListPatients(ctx context.Context, doctorID uuid.UUID, requestedDoctorID string) ([]dto.PatientResponse, error) {
	if !sameDoctor(doctorID, requestedDoctorID) {
		return nil, ErrForbidden
	}

	patients, err := u.patientRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, doctorID uuid.UUID, patientID string) (*dto.PatientResponse, error) {
	patient, err := findOwnedPatient(ctx, u.patientRepo, doctorID, patientID)
	if err != nil {
		if err != ErrPatientNotFound {
			u.log.Warnf("Failed to find patient: %+v", err)
		}
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) CreatePatient(ctx context.Context, doctorID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}
	if !sameDoctor(doctorID, req.Doctor) {
		return nil, ErrForbidden
	}

	patient := converter.PatientRequestToEntity(req, doctorID)
	if err := u.patientRepo.Create(ctx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogCreate(ctx, &doctorID, entity.AuditActionPatientCreate, "patient", patient.ID.String(), map[string]interface{}{
		"name": patient.Name,
	})

	return converter.PatientToResponse(patient), nil
}

// findOwnedPatient loads a patient owned by doctorID. A malformed id, a
// missing row and another doctor's patient all yield ErrPatientNotFound.
func findOwnedPatient(ctx context.Context, repo repository.PatientRepository, doctorID uuid.UUID, rawID string) (*entity.Patient, error) {
	patientID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrPatientNotFound
	}

	patient, err := repo.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil || !patient.IsOwnedBy(doctorID) {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

// sameDoctor reports whether an optional client-supplied doctor id is absent
// or names the signed-in doctor.
func sameDoctor(doctorID uuid.UUID, claimed string) bool {
	if claimed == "" {
		return true
	}
	parsed, err := uuid.Parse(claimed)
	return err == nil && parsed == doctorID
}

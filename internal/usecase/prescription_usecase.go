package usecase

import (
	"context"
	"strings"

	"doctor-portal/internal/converter"
	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/domain/entity"
	"doctor-portal/internal/domain/repository"
	"doctor-portal/internal/service"
	"doctor-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type PrescriptionUsecase interface {
	CreatePrescription(ctx context.Context, doctorID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	ListPrescriptions(ctx context.Context, doctorID uuid.UUID, patientID string) ([]dto.PrescriptionResponse, error)
}

type prescriptionUsecase struct {
	log              *logrus.Logger
	validator        *validator.CustomValidator
	patientRepo      repository.PatientRepository
	prescriptionRepo repository.PrescriptionRepository
	auditService     service.AuditService
}

func NewPrescriptionUsecase(
	log *logrus.Logger,
	validator *validator.CustomValidator,
	patientRepo repository.PatientRepository,
	prescriptionRepo repository.PrescriptionRepository,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		log:              log,
		validator:        validator,
		patientRepo:      patientRepo,
		prescriptionRepo: prescriptionRepo,
		auditService:     auditService,
	}
}

func (u *prescriptionUsecase) CreatePrescription(ctx context.Context, doctorID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	req.Diagnosis = strings.TrimSpace(req.Diagnosis)
	for i := range req.Symptoms {
		req.Symptoms[i] = strings.TrimSpace(req.Symptoms[i])
	}
	for i := range req.Medications {
		m := &req.Medications[i]
		m.Name, m.Dosage, m.Instructions = strings.TrimSpace(m.Name), strings.TrimSpace(m.Dosage), strings.TrimSpace(m.Instructions)
	}

	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}
	if !sameDoctor(doctorID, req.DoctorID) {
		return nil, ErrForbidden
	}

	patient, err := findOwnedPatient(ctx, u.patientRepo, doctorID, req.PatientID)
	if err != nil {
		if err != ErrPatientNotFound {
			u.log.Warnf("Failed to find patient: %+v", err)
		}
		return nil, err
	}

	prescription := &entity.Prescription{
		DoctorID:    doctorID,
		PatientID:   patient.ID,
		Symptoms:    pq.StringArray(req.Symptoms),
		Diagnosis:   req.Diagnosis,
		Medications: datatypes.NewJSONSlice(converter.MedicationsToEntities(req.Medications)),
	}

	if err := u.prescriptionRepo.Create(ctx, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogCreate(ctx, &doctorID, entity.AuditActionPrescriptionCreate, "prescription", prescription.ID.String(), map[string]interface{}{
		"patientId": patient.ID.String(),
		"diagnosis": prescription.Diagnosis,
	})

	return converter.PrescriptionToResponse(prescription), nil
}

// ListPrescriptions returns the patient's prescriptions newest first. An empty
// history is reported as ErrPrescriptionsNotFound.
func (u *prescriptionUsecase) ListPrescriptions(ctx context.Context, doctorID uuid.UUID, patientID string) ([]dto.PrescriptionResponse, error) {
	patient, err := findOwnedPatient(ctx, u.patientRepo, doctorID, patientID)
	if err != nil {
		if err != ErrPatientNotFound {
			u.log.Warnf("Failed to find patient: %+v", err)
		}
		return nil, err
	}

	prescriptions, err := u.prescriptionRepo.FindByPatientID(ctx, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list prescriptions: %+v", err)
		return nil, err
	}
	if len(prescriptions) == 0 {
		return nil, ErrPrescriptionsNotFound
	}

	return converter.PrescriptionsToResponses(prescriptions), nil
}

package converter

import (
	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PatientRequestToEntity builds a new Patient owned by doctorID.
func PatientRequestToEntity(req *dto.CreatePatientRequest, doctorID uuid.UUID) *entity.Patient {
	patient := &entity.Patient{
		DoctorID:       doctorID,
		Name:           req.Name,
		Gender:         req.Gender,
		Email:          req.Email,
		Phone:          req.Phone,
		LastVisit:      req.LastVisit,
		MedicalHistory: datatypes.NewJSONSlice(make([]entity.MedicalHistoryEntry, 0, len(req.MedicalHistory))),
		Medications:    datatypes.NewJSONSlice(MedicationsToEntities(req.Medications)),
		Allergies:      append([]string{}, req.Allergies...),
	}
	if req.Age != nil {
		patient.Age = *req.Age
	}
	if req.Diagnosis != nil {
		patient.Diagnosis = datatypes.NewJSONType(entity.Diagnosis{
			Primary: req.Diagnosis.Primary,
			Status:  req.Diagnosis.Status,
		})
	}
	if req.VitalSigns != nil {
		patient.VitalSigns = datatypes.NewJSONType(entity.VitalSigns{
			BloodPressure: req.VitalSigns.BloodPressure,
			Temperature:   req.VitalSigns.Temperature,
			Pulse:         req.VitalSigns.Pulse,
			Weight:        req.VitalSigns.Weight,
		})
	}
	for _, h := range req.MedicalHistory {
		patient.MedicalHistory = append(patient.MedicalHistory, entity.MedicalHistoryEntry{Year: h.Year, Notes: h.Notes})
	}
	return patient
}

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	diagnosis := patient.Diagnosis.Data()
	vitals := patient.VitalSigns.Data()

	history := make([]dto.MedicalHistoryPayload, 0, len(patient.MedicalHistory))
	for _, h := range patient.MedicalHistory {
		history = append(history, dto.MedicalHistoryPayload{Year: h.Year, Notes: h.Notes})
	}

	allergies := []string(patient.Allergies)
	if allergies == nil {
		allergies = []string{}
	}

	return &dto.PatientResponse{
		ID:        patient.ID,
		Doctor:    patient.DoctorID,
		Name:      patient.Name,
		Age:       patient.Age,
		Gender:    patient.Gender,
		Email:     patient.Email,
		Phone:     patient.Phone,
		LastVisit: patient.LastVisit,
		Diagnosis: dto.DiagnosisPayload{
			Primary: diagnosis.Primary,
			Status:  diagnosis.Status,
		},
		VitalSigns: dto.VitalSignsPayload{
			BloodPressure: vitals.BloodPressure,
			Temperature:   vitals.Temperature,
			Pulse:         vitals.Pulse,
			Weight:        vitals.Weight,
		},
		MedicalHistory: history,
		Medications:    MedicationsToPayloads(patient.Medications),
		Allergies:      allergies,
		CreatedAt:      patient.CreatedAt,
		UpdatedAt:      patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *PatientToResponse(&patients[i]))
	}
	return responses
}

package converter

import (
	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/domain/entity"
)

func MedicationsToEntities(payloads []dto.MedicationPayload) []entity.Medication {
	medications := make([]entity.Medication, 0, len(payloads))
	for _, m := range payloads {
		medications = append(medications, entity.Medication{
			Name:         m.Name,
			Dosage:       m.Dosage,
			Instructions: m.Instructions,
		})
	}
	return medications
}

func MedicationsToPayloads(medications []entity.Medication) []dto.MedicationPayload {
	payloads := make([]dto.MedicationPayload, 0, len(medications))
	for _, m := range medications {
		payloads = append(payloads, dto.MedicationPayload{
			Name:         m.Name,
			Dosage:       m.Dosage,
			Instructions: m.Instructions,
		})
	}
	return payloads
}

// PrescriptionToResponse converts a Prescription entity to PrescriptionResponse DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	return &dto.PrescriptionResponse{
		ID:          prescription.ID,
		DoctorID:    prescription.DoctorID,
		PatientID:   prescription.PatientID,
		Symptoms:    append([]string{}, prescription.Symptoms...),
		Diagnosis:   prescription.Diagnosis,
		Medications: MedicationsToPayloads(prescription.Medications),
		Doctor:      DoctorToSummary(prescription.Doctor),
		CreatedAt:   prescription.CreatedAt,
	}
}

func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, 0, len(prescriptions))
	for i := range prescriptions {
		responses = append(responses, *PrescriptionToResponse(&prescriptions[i]))
	}
	return responses
}

func SuggestionToPayload(suggestion *entity.Suggestion) dto.SuggestionPayload {
	return dto.SuggestionPayload{
		Symptoms:    suggestion.Symptoms,
		Diagnosis:   suggestion.Diagnosis,
		Medications: MedicationsToPayloads(suggestion.Medications),
	}
}

package dto

type SuggestionRequest struct {
	PatientData map[string]interface{} `json:"patientData" validate:"required"`
}

type SuggestionResponse struct {
	Suggestion SuggestionPayload `json:"suggestion"`
}

type SuggestionPayload struct {
	Symptoms    string              `json:"symptoms"`
	Diagnosis   string              `json:"diagnosis"`
	Medications []MedicationPayload `json:"medications"`
}

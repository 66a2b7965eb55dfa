package entity

// Suggestion is a draft prescription proposed for a patient.
type Suggestion struct {
	Symptoms    string       `json:"symptoms"`
	Diagnosis   string       `json:"diagnosis"`
	Medications []Medication `json:"medications"`
}

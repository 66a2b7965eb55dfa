package service

import (
	"context"

	"doctor-portal/internal/domain/entity"
)

// Suggester proposes a draft prescription from free-form patient data.
type Suggester interface {
	Suggest(ctx context.Context, patientData map[string]interface{}) (*entity.Suggestion, error)
}

type staticSuggester struct{}

// NewStaticSuggester returns a Suggester that always proposes the same
// draft. It stands in for a model-backed collaborator with the same contract.
func NewStaticSuggester() Suggester {
	return staticSuggester{}
}

func (staticSuggester) Suggest(ctx context.Context, patientData map[string]interface{}) (*entity.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &entity.Suggestion{
		Symptoms:  "High fever, nausea, headache",
		Diagnosis: "Likely Viral Fever",
		Medications: []entity.Medication{
			{Name: "Paracetamol", Dosage: "500mg", Instructions: "Twice a day after meals"},
			{Name: "ORS Solution", Dosage: "1 sachet in 500ml water", Instructions: "After each loose motion"},
		},
	}, nil
}

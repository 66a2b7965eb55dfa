package usecase

import (
	"context"

	"doctor-portal/internal/converter"
	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/service"
	"doctor-portal/pkg/validator"

	"github.com/sirupsen/logrus"
)

type SuggestionUsecase interface {
	Suggest(ctx context.Context, req *dto.SuggestionRequest) (*dto.SuggestionResponse, error)
}

type suggestionUsecase struct {
	log       *logrus.Logger
	validator *validator.CustomValidator
	suggester service.Suggester
}

func NewSuggestionUsecase(log *logrus.Logger, validator *validator.CustomValidator, suggester service.Suggester) SuggestionUsecase {
	return &suggestionUsecase{
		log:       log,
		validator: validator,
		suggester: suggester,
	}
}

func (u *suggestionUsecase) Suggest(ctx context.Context, req *dto.SuggestionRequest) (*dto.SuggestionResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}

	suggestion, err := u.suggester.Suggest(ctx, req.PatientData)
	if err != nil {
		u.log.Warnf("Failed to get prescription suggestion: %+v", err)
		return nil, err
	}

	return &dto.SuggestionResponse{Suggestion: converter.SuggestionToPayload(suggestion)}, nil
}

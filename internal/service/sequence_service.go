package service

import (
	"context"
	"fmt"

	"doctor-portal/internal/domain/entity"
	"doctor-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// SequenceService mints human-readable identifiers from named counters.
type SequenceService interface {
	NextDoctorID(ctx context.Context) (string, error)
	Initialize(ctx context.Context) error
}

type sequenceService struct {
	log         *logrus.Logger
	counterRepo repository.CounterRepository
}

func NewSequenceService(log *logrus.Logger, counterRepo repository.CounterRepository) SequenceService {
	return &sequenceService{
		log:         log,
		counterRepo: counterRepo,
	}
}

// NextDoctorID allocates the next doctor sequence value and formats it as
// DOC-0001. Values above 9999 keep growing in width.
func (s *sequenceService) NextDoctorID(ctx context.Context) (string, error) {
	value, err := s.counterRepo.NextValue(ctx, entity.DoctorCounterName)
	if err != nil {
		s.log.Warnf("Failed to allocate doctor sequence value: %+v", err)
		return "", fmt.Errorf("allocate doctor id: %w", err)
	}
	return entity.FormatDoctorID(value), nil
}

// Initialize makes sure every known counter exists. It is safe to call on
// every start-up.
func (s *sequenceService) Initialize(ctx context.Context) error {
	if err := s.counterRepo.Initialize(ctx, entity.DoctorCounterName); err != nil {
		s.log.Warnf("Failed to initialize counter %q: %+v", entity.DoctorCounterName, err)
		return err
	}
	s.log.WithField("counter", entity.DoctorCounterName).Info("Counter initialized")
	return nil
}

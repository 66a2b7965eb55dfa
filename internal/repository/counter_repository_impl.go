package repository

import (
	"context"

	domainRepo "doctor-portal/internal/domain/repository"

	"gorm.io/gorm"
)

const (
	nextValueQuery = `INSERT INTO counters (name, value) VALUES (?, 1)
ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
RETURNING value`

	initializeQuery = `INSERT INTO counters (name, value) VALUES (?, 0)
ON CONFLICT (name) DO NOTHING`
)

type counterRepository struct {
	db *gorm.DB
}

func NewCounterRepository(db *gorm.DB) domainRepo.CounterRepository {
	return &counterRepository{db: db}
}

// NextValue increments the named counter and returns the new value in one
// statement, creating the row on first use.
func (r *counterRepository) NextValue(ctx context.Context, name string) (int64, error) {
	var value int64
	if err := r.db.WithContext(ctx).Raw(nextValueQuery, name).Scan(&value).Error; err != nil {
		return 0, err
	}
	return value, nil
}

func (r *counterRepository) Initialize(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Exec(initializeQuery, name).Error
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionToken is a signed session credential and the instant it stops being valid.
type SessionToken struct {
	Value     string
	ExpiresAt time.Time
}

type LoginResponse struct {
	Message string          `json:"message"`
	Doctor  *DoctorResponse `json:"doctor"`
}

type SessionInfo struct {
	DoctorID   uuid.UUID `json:"id"`
	DoctorCode string    `json:"doctorId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ExpiresAt  time.Time `json:"expires"`
}

type SessionResponse struct {
	Message string       `json:"message"`
	Session *SessionInfo `json:"session"`
}

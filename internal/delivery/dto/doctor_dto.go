package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type RegisterDoctorRequest struct {
	FirstName       string   `json:"firstName" validate:"required,min=1,max=50"`
	LastName        string   `json:"lastName" validate:"required,min=1,max=50"`
	Email           string   `json:"email" validate:"required,min=8,email"`
	Phone           string   `json:"phone" validate:"required,len=10,number"`
	Password        string   `json:"password" validate:"required,min=6"`
	DateOfBirth     string   `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Gender          string   `json:"gender" validate:"required,oneof=Male Female Other"`
	LicenseNumber   string   `json:"licenseNumber" validate:"required,max=100"`
	Experience      *int     `json:"experience" validate:"required,gte=0,lte=50"`
	MedicalSchool   string   `json:"medicalSchool" validate:"required,max=255"`
	GraduationYear  int      `json:"graduationYear" validate:"required,gte=1900,notfutureyear"`
	Specializations []string `json:"specializations" validate:"required,min=1,dive,specialization"`

	ClinicName      string           `json:"clinicName" validate:"required,max=255"`
	PracticeAddress string           `json:"practiceAddress" validate:"required"`
	City            string           `json:"city" validate:"required,max=100"`
	State           string           `json:"state" validate:"required,max=100"`
	ZipCode         string           `json:"zipCode" validate:"required,max=20"`
	ConsultationFee *decimal.Decimal `json:"consultationFee" validate:"required"`

	MedicalLicenseDocument string `json:"medicalLicenseDocument" validate:"required"`
	Photo                  string `json:"photo" validate:"omitempty"`
	Bio                    string `json:"bio" validate:"omitempty,max=2000"`

	Terms *bool `json:"terms" validate:"required"`
}

// UpdateDoctorRequest changes the signed-in doctor's own profile. Email,
// license number and doctor code cannot be changed.
type UpdateDoctorRequest struct {
	FirstName       string           `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName        string           `json:"lastName" validate:"omitempty,min=1,max=50"`
	Phone           string           `json:"phone" validate:"omitempty,len=10,number"`
	Experience      *int             `json:"experience" validate:"omitempty,gte=0,lte=50"`
	MedicalSchool   string           `json:"medicalSchool" validate:"omitempty,max=255"`
	Specializations []string         `json:"specializations" validate:"omitempty,min=1,dive,specialization"`
	ClinicName      string           `json:"clinicName" validate:"omitempty,max=255"`
	PracticeAddress string           `json:"practiceAddress" validate:"omitempty"`
	City            string           `json:"city" validate:"omitempty,max=100"`
	State           string           `json:"state" validate:"omitempty,max=100"`
	ZipCode         string           `json:"zipCode" validate:"omitempty,max=20"`
	ConsultationFee *decimal.Decimal `json:"consultationFee" validate:"omitempty"`
	Photo           string           `json:"photo" validate:"omitempty"`
	Bio             string           `json:"bio" validate:"omitempty,max=2000"`
	Password        string           `json:"password" validate:"omitempty,min=6"`
	OldPassword     string           `json:"oldPassword" validate:"required_with=Password"`
}

// Response DTOs

type DoctorResponse struct {
	ID                     uuid.UUID       `json:"id"`
	DoctorID               string          `json:"doctorId"`
	FullName               string          `json:"fullName"`
	FirstName              string          `json:"firstName"`
	LastName               string          `json:"lastName"`
	Email                  string          `json:"email"`
	Phone                  string          `json:"phone"`
	DateOfBirth            string          `json:"dateOfBirth"`
	Gender                 string          `json:"gender"`
	LicenseNumber          string          `json:"licenseNumber"`
	Experience             int             `json:"experience"`
	MedicalSchool          string          `json:"medicalSchool"`
	GraduationYear         int             `json:"graduationYear"`
	Specializations        []string        `json:"specializations"`
	ClinicName             string          `json:"clinicName"`
	PracticeAddress        string          `json:"practiceAddress"`
	City                   string          `json:"city"`
	State                  string          `json:"state"`
	ZipCode                string          `json:"zipCode"`
	ConsultationFee        decimal.Decimal `json:"consultationFee"`
	MedicalLicenseDocument string          `json:"medicalLicenseDocument"`
	Photo                  string          `json:"photo,omitempty"`
	Bio                    string          `json:"bio,omitempty"`
	CreatedAt              time.Time       `json:"createdAt"`
	UpdatedAt              time.Time       `json:"updatedAt"`
}

// DoctorSummary is the prescribing doctor as shown next to a prescription.
type DoctorSummary struct {
	ID              uuid.UUID `json:"id"`
	DoctorID        string    `json:"doctorId"`
	FullName        string    `json:"fullName"`
	Specializations []string  `json:"specializations"`
}

type RegisterResponse struct {
	Message  string `json:"message"`
	DoctorID string `json:"doctorId"`
}

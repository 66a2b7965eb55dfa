package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Doctor is a registered doctor's profile together with its login credential.
type Doctor struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID string    `gorm:"column:doctor_id;type:varchar(20);uniqueIndex:uq_doctors_doctor_id;not null" json:"doctorId"`

	FullName    string    `gorm:"type:varchar(120);not null" json:"fullName"`
	FirstName   string    `gorm:"type:varchar(50);not null" json:"firstName"`
	LastName    string    `gorm:"type:varchar(50);not null" json:"lastName"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex:uq_doctors_email;not null" json:"email"`
	Phone       string    `gorm:"type:char(10);uniqueIndex:uq_doctors_phone;not null" json:"phone"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"dateOfBirth"`
	Gender      string    `gorm:"type:varchar(10);not null" json:"gender"`

	LicenseNumber   string         `gorm:"type:varchar(100);uniqueIndex:uq_doctors_license_number;not null" json:"licenseNumber"`
	Experience      int            `gorm:"not null;default:0" json:"experience"`
	MedicalSchool   string         `gorm:"type:varchar(255);not null" json:"medicalSchool"`
	GraduationYear  int            `gorm:"not null" json:"graduationYear"`
	Specializations pq.StringArray `gorm:"type:text[];not null" json:"specializations"`

	ClinicName      string          `gorm:"type:varchar(255);not null" json:"clinicName"`
	PracticeAddress string          `gorm:"type:text;not null" json:"practiceAddress"`
	City            string          `gorm:"type:varchar(100);not null" json:"city"`
	State           string          `gorm:"type:varchar(100);not null" json:"state"`
	ZipCode         string          `gorm:"type:varchar(20);not null" json:"zipCode"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"consultationFee"`

	MedicalLicenseDocument string `gorm:"type:text;not null" json:"medicalLicenseDocument"`
	Photo                  string `gorm:"type:text" json:"photo,omitempty"`
	Bio                    string `gorm:"type:text" json:"bio,omitempty"`

	Password  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DoctorCounterName is the sequence series used to mint doctor codes.
const DoctorCounterName = "doctorId"

// FormatDoctorID renders a sequence value as a human-readable doctor code.
func FormatDoctorID(seq int64) string {
	return fmt.Sprintf("DOC-%04d", seq)
}

// ComposeFullName joins the name parts, prefixed by title when one is set.
func ComposeFullName(title, firstName, lastName string) string {
	name := strings.TrimSpace(firstName + " " + lastName)
	if title = strings.TrimSpace(title); title != "" {
		return title + " " + name
	}
	return name
}

// DeriveFullName recomputes FullName from the name parts. It must run before
// every save; a client-supplied full name is never trusted.
func (d *Doctor) DeriveFullName(title string) {
	d.FullName = ComposeFullName(title, d.FirstName, d.LastName)
}

package usecase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmailExists           = errors.New("email already exists")
	ErrPhoneExists           = errors.New("phone number already exists")
	ErrLicenseExists         = errors.New("license number already exists")
	ErrAuthenticationFailed  = errors.New("invalid email or password")
	ErrTooManyAttempts       = errors.New("too many failed login attempts, try again later")
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrInvalidOldPassword    = errors.New("invalid old password")
	ErrPatientNotFound       = errors.New("patient not found")
	ErrPrescriptionsNotFound = errors.New("no prescriptions found for this patient")
	ErrForbidden             = errors.New("records of another doctor are not accessible")
)

// Unique constraints on the doctors table, as named by the schema migrations.
const (
	constraintDoctorEmail   = "uq_doctors_email"
	constraintDoctorPhone   = "uq_doctors_phone"
	constraintDoctorLicense = "uq_doctors_license_number"
)

// translateDoctorConflict maps a unique violation on insert or update to the
// matching *Exists error. It returns nil for any other error.
func translateDoctorConflict(err error) error {
	switch {
	case isDuplicateKeyError(err, constraintDoctorEmail):
		return ErrEmailExists
	case isDuplicateKeyError(err, constraintDoctorPhone):
		return ErrPhoneExists
	case isDuplicateKeyError(err, constraintDoctorLicense):
		return ErrLicenseExists
	}
	return nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

package usecase

import (
	"context"
	"strings"

	"doctor-portal/internal/converter"
	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/domain/entity"
	"doctor-portal/internal/domain/repository"
	"doctor-portal/internal/service"
	"doctor-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type DoctorProfileUsecase interface {
	GetProfile(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	UpdateSelfProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
}

type doctorProfileUsecase struct {
	log          *logrus.Logger
	validator    *validator.CustomValidator
	doctorRepo   repository.DoctorRepository
	passwords    service.PasswordService
	auditService service.AuditService
	nameTitle    string
}

func NewDoctorProfileUsecase(
	log *logrus.Logger,
	validator *validator.CustomValidator,
	doctorRepo repository.DoctorRepository,
	passwords service.PasswordService,
	auditService service.AuditService,
	nameTitle string,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		log:          log,
		validator:    validator,
		doctorRepo:   doctorRepo,
		passwords:    passwords,
		auditService: auditService,
		nameTitle:    nameTitle,
	}
}

func (u *doctorProfileUsecase) GetProfile(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

// UpdateSelfProfile applies the non-empty fields of req. The full name is
// always recomputed; the doctor code never changes.
func (u *doctorProfileUsecase) UpdateSelfProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.ConsultationFee != nil && req.ConsultationFee.IsNegative() {
		return nil, validator.InvalidFormat("consultationFee", "consultationFee must be greater than or equal to 0")
	}

	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	// Capture old value for audit
	oldValue := converter.DoctorToResponse(doctor)

	setIfPresent(&doctor.FirstName, req.FirstName)
	setIfPresent(&doctor.LastName, req.LastName)
	setIfPresent(&doctor.Phone, req.Phone)
	setIfPresent(&doctor.MedicalSchool, req.MedicalSchool)
	setIfPresent(&doctor.ClinicName, req.ClinicName)
	setIfPresent(&doctor.PracticeAddress, req.PracticeAddress)
	setIfPresent(&doctor.City, req.City)
	setIfPresent(&doctor.State, req.State)
	setIfPresent(&doctor.ZipCode, req.ZipCode)
	setIfPresent(&doctor.Photo, req.Photo)
	setIfPresent(&doctor.Bio, req.Bio)
	if req.Experience != nil {
		doctor.Experience = *req.Experience
	}
	if len(req.Specializations) > 0 {
		doctor.Specializations = pq.StringArray(dedupe(req.Specializations))
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = *req.ConsultationFee
	}

	if req.Password != "" {
		if !u.passwords.Verify(doctor.Password, req.OldPassword) {
			return nil, ErrInvalidOldPassword
		}
		hashedPassword, err := u.passwords.Hash(req.Password)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		doctor.Password = hashedPassword
	}

	doctor.DeriveFullName(u.nameTitle)

	if err := u.doctorRepo.Update(ctx, doctor); err != nil {
		if conflict := translateDoctorConflict(err); conflict != nil {
			return nil, conflict
		}
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	newValue := converter.DoctorToResponse(doctor)
	_ = u.auditService.LogUpdate(ctx, &doctorID, entity.AuditActionDoctorUpdate, "doctor", doctor.DoctorID, oldValue, newValue)

	return newValue, nil
}

func setIfPresent(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

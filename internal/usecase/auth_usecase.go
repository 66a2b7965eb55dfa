package usecase

import (
	"context"
	"strings"
	"time"

	"doctor-portal/internal/converter"
	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/domain/entity"
	"doctor-portal/internal/domain/repository"
	"doctor-portal/internal/service"
	"doctor-portal/pkg/jwt"
	"doctor-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.DoctorResponse, *dto.SessionToken, error)
	Logout(ctx context.Context, doctorID uuid.UUID) error
}

type authUsecase struct {
	log          *logrus.Logger
	validator    *validator.CustomValidator
	doctorRepo   repository.DoctorRepository
	sequence     service.SequenceService
	passwords    service.PasswordService
	throttle     service.LoginThrottle
	auditService service.AuditService
	jwtService   *jwt.JWTService
	nameTitle    string
	now          func() time.Time
}

func NewAuthUsecase(
	log *logrus.Logger,
	validator *validator.CustomValidator,
	doctorRepo repository.DoctorRepository,
	sequence service.SequenceService,
	passwords service.PasswordService,
	throttle service.LoginThrottle,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	nameTitle string,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		validator:    validator,
		doctorRepo:   doctorRepo,
		sequence:     sequence,
		passwords:    passwords,
		throttle:     throttle,
		auditService: auditService,
		jwtService:   jwtService,
		nameTitle:    nameTitle,
		now:          time.Now,
	}
}

// Register runs the registration pipeline: validate, check uniqueness, hash
// the password, derive the display name, allocate the doctor code, insert.
// Nothing is written until every check has passed.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.RegisterResponse, error) {
	normalizeRegistration(req)

	if err := u.validator.Validate(req); err != nil {
		return nil, err
	}
	if !*req.Terms {
		return nil, validator.InvalidFormat("terms", "terms must be accepted")
	}
	if req.ConsultationFee.IsNegative() {
		return nil, validator.InvalidFormat("consultationFee", "consultationFee must be greater than or equal to 0")
	}
	dob, _ := time.Parse("2006-01-02", req.DateOfBirth)
	if dob.After(u.now()) {
		return nil, validator.InvalidFormat("dateOfBirth", "dateOfBirth cannot be in the future")
	}

	if err := u.checkUniqueness(ctx, req.Email, req.Phone, req.LicenseNumber); err != nil {
		return nil, err
	}

	hashedPassword, err := u.passwords.Hash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	doctor := &entity.Doctor{
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		Email:                  req.Email,
		Phone:                  req.Phone,
		DateOfBirth:            dob,
		Gender:                 req.Gender,
		LicenseNumber:          req.LicenseNumber,
		Experience:             *req.Experience,
		MedicalSchool:          req.MedicalSchool,
		GraduationYear:         req.GraduationYear,
		Specializations:        pq.StringArray(dedupe(req.Specializations)),
		ClinicName:             req.ClinicName,
		PracticeAddress:        req.PracticeAddress,
		City:                   req.City,
		State:                  req.State,
		ZipCode:                req.ZipCode,
		ConsultationFee:        *req.ConsultationFee,
		MedicalLicenseDocument: req.MedicalLicenseDocument,
		Photo:                  req.Photo,
		Bio:                    req.Bio,
		Password:               hashedPassword,
	}
	doctor.DeriveFullName(u.nameTitle)

	doctorID, err := u.sequence.NextDoctorID(ctx)
	if err != nil {
		return nil, err
	}
	doctor.DoctorID = doctorID

	if err := u.doctorRepo.Create(ctx, doctor); err != nil {
		if conflict := translateDoctorConflict(err); conflict != nil {
			return nil, conflict
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	_ = u.auditService.LogCreate(ctx, &doctor.ID, entity.AuditActionDoctorRegister, "doctor", doctor.DoctorID, map[string]interface{}{
		"doctorId": doctor.DoctorID,
		"email":    doctor.Email,
	})

	return &dto.RegisterResponse{
		Message:  "Doctor registered successfully",
		DoctorID: doctor.DoctorID,
	}, nil
}

// checkUniqueness runs the three existence reads concurrently and reports
// conflicts in a fixed order: email, then phone, then license number.
func (u *authUsecase) checkUniqueness(ctx context.Context, email, phone, licenseNumber string) error {
	var emailTaken, phoneTaken, licenseTaken bool

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) (err error) {
		emailTaken, err = u.doctorRepo.ExistsByEmail(ctx, email)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		phoneTaken, err = u.doctorRepo.ExistsByPhone(ctx, phone)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		licenseTaken, err = u.doctorRepo.ExistsByLicenseNumber(ctx, licenseNumber)
		return err
	})
	if err := p.Wait(); err != nil {
		u.log.Warnf("Failed to check doctor uniqueness: %+v", err)
		return err
	}

	switch {
	case emailTaken:
		return ErrEmailExists
	case phoneTaken:
		return ErrPhoneExists
	case licenseTaken:
		return ErrLicenseExists
	}
	return nil
}

// Login verifies the credential pair and issues a session token. An unknown
// email and a wrong password fail the same way and take the same time.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.DoctorResponse, *dto.SessionToken, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := u.validator.Validate(req); err != nil {
		return nil, nil, err
	}

	allowed, err := u.throttle.Allowed(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to read login throttle: %+v", err)
	} else if !allowed {
		return nil, nil, ErrTooManyAttempts
	}

	doctor, err := u.doctorRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find doctor by email: %+v", err)
		return nil, nil, err
	}

	if doctor == nil {
		u.passwords.VerifyDummy(req.Password)
		u.recordFailure(ctx, req.Email)
		return nil, nil, ErrAuthenticationFailed
	}

	if !u.passwords.Verify(doctor.Password, req.Password) {
		u.recordFailure(ctx, req.Email)
		return nil, nil, ErrAuthenticationFailed
	}

	if err := u.throttle.Reset(ctx, req.Email); err != nil {
		u.log.Warnf("Failed to reset login throttle: %+v", err)
	}

	token, expiresAt, err := u.jwtService.GenerateSessionToken(jwt.Identity{
		DoctorID:   doctor.ID,
		DoctorCode: doctor.DoctorID,
		Name:       doctor.FullName,
		Email:      doctor.Email,
	})
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		return nil, nil, err
	}

	_ = u.auditService.LogEvent(ctx, &doctor.ID, entity.AuditActionDoctorLogin, map[string]interface{}{
		"doctorId": doctor.DoctorID,
	})

	return converter.DoctorToResponse(doctor), &dto.SessionToken{Value: token, ExpiresAt: expiresAt}, nil
}

func (u *authUsecase) recordFailure(ctx context.Context, email string) {
	if _, err := u.throttle.RecordFailure(ctx, email); err != nil {
		u.log.Warnf("Failed to record login failure: %+v", err)
	}
}

// Logout only records the event; the session itself lives in the client cookie.
func (u *authUsecase) Logout(ctx context.Context, doctorID uuid.UUID) error {
	_ = u.auditService.LogEvent(ctx, &doctorID, entity.AuditActionDoctorLogout, nil)
	return nil
}

func normalizeRegistration(req *dto.RegisterDoctorRequest) {
	for _, s := range []*string{
		&req.FirstName, &req.LastName, &req.Email, &req.Phone, &req.LicenseNumber,
		&req.MedicalSchool, &req.ClinicName, &req.PracticeAddress, &req.City,
		&req.State, &req.ZipCode, &req.MedicalLicenseDocument, &req.Photo, &req.Bio,
		&req.DateOfBirth, &req.Gender,
	} {
		*s = strings.TrimSpace(*s)
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"doctor-portal/config"
	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/domain/entity"
	"doctor-portal/internal/service"
	"doctor-portal/pkg/jwt"
	"doctor-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeDoctorRepository keeps doctors in memory and enforces the same unique
// constraints as the schema.
type fakeDoctorRepository struct {
	mu      sync.Mutex
	doctors map[uuid.UUID]*entity.Doctor
	// hideExisting makes Exists* report false, to exercise the insert backstop.
	hideExisting bool
	existsErr    error
}

func newFakeDoctorRepository() *fakeDoctorRepository {
	return &fakeDoctorRepository{doctors: make(map[uuid.UUID]*entity.Doctor)}
}

func (r *fakeDoctorRepository) conflict(d *entity.Doctor, skip uuid.UUID) string {
	for id, other := range r.doctors {
		if id == skip {
			continue
		}
		switch {
		case other.Email == d.Email:
			return constraintDoctorEmail
		case other.Phone == d.Phone:
			return constraintDoctorPhone
		case other.LicenseNumber == d.LicenseNumber:
			return constraintDoctorLicense
		case other.DoctorID == d.DoctorID:
			return "uq_doctors_doctor_id"
		}
	}
	return ""
}

func (r *fakeDoctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name := r.conflict(doctor, uuid.Nil); name != "" {
		return &pgconn.PgError{Code: "23505", ConstraintName: name}
	}
	doctor.ID = uuid.New()
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = doctor.CreatedAt
	stored := *doctor
	r.doctors[doctor.ID] = &stored
	return nil
}

func (r *fakeDoctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.doctors[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeDoctorRepository) FindByEmail(ctx context.Context, email string) (*entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.doctors {
		if d.Email == email {
			copied := *d
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeDoctorRepository) exists(match func(*entity.Doctor) bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.existsErr != nil {
		return false, r.existsErr
	}
	if r.hideExisting {
		return false, nil
	}
	for _, d := range r.doctors {
		if match(d) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDoctorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(func(d *entity.Doctor) bool { return d.Email == email })
}

func (r *fakeDoctorRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(func(d *entity.Doctor) bool { return d.Phone == phone })
}

func (r *fakeDoctorRepository) ExistsByLicenseNumber(ctx context.Context, licenseNumber string) (bool, error) {
	return r.exists(func(d *entity.Doctor) bool { return d.LicenseNumber == licenseNumber })
}

func (r *fakeDoctorRepository) Update(ctx context.Context, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.doctors[doctor.ID]
	if !ok {
		return errors.New("record not found")
	}
	if name := r.conflict(doctor, doctor.ID); name != "" {
		return &pgconn.PgError{Code: "23505", ConstraintName: name}
	}
	stored := *doctor
	stored.DoctorID = current.DoctorID
	stored.CreatedAt = current.CreatedAt
	stored.UpdatedAt = time.Now()
	r.doctors[doctor.ID] = &stored
	return nil
}

func (r *fakeDoctorRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.doctors)
}

// fakeCounterRepository is an atomic in-memory counter store.
type fakeCounterRepository struct {
	mu     sync.Mutex
	values map[string]int64
	err    error
}

func newFakeCounterRepository() *fakeCounterRepository {
	return &fakeCounterRepository{values: make(map[string]int64)}
}

func (r *fakeCounterRepository) NextValue(ctx context.Context, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return 0, r.err
	}
	r.values[name]++
	return r.values[name], nil
}

func (r *fakeCounterRepository) Initialize(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.values[name]; !ok {
		r.values[name] = 0
	}
	return nil
}

type fakeAuditLogRepository struct {
	mu   sync.Mutex
	logs []entity.AuditLog
	err  error
}

func (r *fakeAuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeAuditLogRepository) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.logs))
	for _, l := range r.logs {
		out = append(out, l.Action)
	}
	return out
}

type fakePatientRepository struct {
	mu       sync.Mutex
	patients map[uuid.UUID]*entity.Patient
}

func newFakePatientRepository() *fakePatientRepository {
	return &fakePatientRepository{patients: make(map[uuid.UUID]*entity.Patient)}
}

func (r *fakePatientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	patient.ID = uuid.New()
	patient.CreatedAt = time.Now()
	stored := *patient
	r.patients[patient.ID] = &stored
	return nil
}

func (r *fakePatientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.patients[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (r *fakePatientRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.Patient
	for _, p := range r.patients {
		if p.DoctorID == doctorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakePrescriptionRepository struct {
	mu            sync.Mutex
	prescriptions []entity.Prescription
	clock         time.Time
	doctors       *fakeDoctorRepository
}

func (r *fakePrescriptionRepository) Create(ctx context.Context, prescription *entity.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clock = r.clock.Add(time.Second)
	prescription.ID = uuid.New()
	prescription.CreatedAt = r.clock
	r.prescriptions = append(r.prescriptions, *prescription)
	return nil
}

func (r *fakePrescriptionRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.Prescription
	for _, p := range r.prescriptions {
		if p.PatientID == patientID {
			if r.doctors != nil {
				p.Doctor, _ = r.doctors.FindByID(ctx, p.DoctorID)
			}
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// fakeLoginThrottle counts failures in memory.
type fakeLoginThrottle struct {
	mu          sync.Mutex
	maxAttempts int64
	failures    map[string]int64
}

func newFakeLoginThrottle(maxAttempts int64) *fakeLoginThrottle {
	return &fakeLoginThrottle{maxAttempts: maxAttempts, failures: make(map[string]int64)}
}

func (t *fakeLoginThrottle) Allowed(ctx context.Context, email string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failures[email] < t.maxAttempts, nil
}

func (t *fakeLoginThrottle) RecordFailure(ctx context.Context, email string) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures[email]++
	return t.failures[email], nil
}

func (t *fakeLoginThrottle) Reset(ctx context.Context, email string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.failures, email)
	return nil
}

type authFixture struct {
	usecase  AuthUsecase
	doctors  *fakeDoctorRepository
	counters *fakeCounterRepository
	audit    *fakeAuditLogRepository
	throttle *fakeLoginThrottle
	jwt      *jwt.JWTService
}

func newAuthFixture(t testing.TB, nameTitle string) *authFixture {
	passwords, err := service.NewPasswordService(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("password service: %v", err)
	}

	f := &authFixture{
		doctors:  newFakeDoctorRepository(),
		counters: newFakeCounterRepository(),
		audit:    &fakeAuditLogRepository{},
		throttle: newFakeLoginThrottle(3),
		jwt: jwt.NewJWTService(config.JWTConfig{
			Secret: "test-secret",
			Expiry: 30 * 24 * time.Hour,
			Issuer: "doctor-portal-test",
		}),
	}
	log := quietLogger()
	f.usecase = NewAuthUsecase(
		log,
		validator.NewValidator(),
		f.doctors,
		service.NewSequenceService(log, f.counters),
		passwords,
		f.throttle,
		service.NewAuditService(log, f.audit, nil),
		f.jwt,
		nameTitle,
	)
	return f
}

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func validRegistration(email, phone, license string) *dto.RegisterDoctorRequest {
	fee := decimal.RequireFromString("150.00")
	return &dto.RegisterDoctorRequest{
		FirstName:              "Ada",
		LastName:               "Lovelace",
		Email:                  email,
		Phone:                  phone,
		Password:               "s3cret-pass",
		DateOfBirth:            "1980-12-10",
		Gender:                 entity.GenderFemale,
		LicenseNumber:          license,
		Experience:             intPtr(12),
		MedicalSchool:          "University of London",
		GraduationYear:         2005,
		Specializations:        []string{"Cardiology", "Neurology"},
		ClinicName:             "Analytical Clinic",
		PracticeAddress:        "12 St James's Square",
		City:                   "London",
		State:                  "Greater London",
		ZipCode:                "SW1Y4JH",
		ConsultationFee:        &fee,
		MedicalLicenseDocument: "uploads/licenses/ada.pdf",
		Terms:                  boolPtr(true),
	}
}

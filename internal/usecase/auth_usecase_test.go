package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/domain/entity"
	"doctor-portal/pkg/validator"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_SequenceAndConflicts(t *testing.T) {
	f := newAuthFixture(t, "")
	ctx := context.Background()

	res, err := f.usecase.Register(ctx, validRegistration("alice@example.com", "5551234567", "L1"))
	require.NoError(t, err)
	assert.Equal(t, "DOC-0001", res.DoctorID)
	assert.Equal(t, "Doctor registered successfully", res.Message)

	_, err = f.usecase.Register(ctx, validRegistration("alice@example.com", "5550000001", "L2"))
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = f.usecase.Register(ctx, validRegistration("bob@example.com", "5551234567", "L2"))
	assert.ErrorIs(t, err, ErrPhoneExists)

	_, err = f.usecase.Register(ctx, validRegistration("bob@example.com", "5550000001", "L1"))
	assert.ErrorIs(t, err, ErrLicenseExists)

	res, err = f.usecase.Register(ctx, validRegistration("carol@example.com", "5550000002", "L3"))
	require.NoError(t, err)
	assert.Equal(t, "DOC-0002", res.DoctorID)
	assert.Equal(t, 2, f.doctors.count())
}

func TestRegister_EmailConflictReportedFirst(t *testing.T) {
	f := newAuthFixture(t, "")
	ctx := context.Background()

	_, err := f.usecase.Register(ctx, validRegistration("a@example.com", "5551234567", "L1"))
	require.NoError(t, err)

	_, err = f.usecase.Register(ctx, validRegistration("a@example.com", "5551234567", "L1"))
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegister_ConcurrentRegistrationsGetDistinctIDs(t *testing.T) {
	f := newAuthFixture(t, "")
	const n = 50

	ids := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRegistration(fmt.Sprintf("doctor%02d@example.com", i), fmt.Sprintf("55500000%02d", i), fmt.Sprintf("LIC-%02d", i))
			res, err := f.usecase.Register(context.Background(), req)
			errs[i] = err
			if err == nil {
				ids[i] = res.DoctorID
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	sort.Strings(ids)
	for i, id := range ids {
		assert.Equal(t, fmt.Sprintf("DOC-%04d", i+1), id)
	}
	assert.Equal(t, n, f.doctors.count())
}

func TestRegister_StoresHashAndDerivedName(t *testing.T) {
	f := newAuthFixture(t, "Dr.")
	req := validRegistration("ada@example.com", "5551234567", "L1")

	_, err := f.usecase.Register(context.Background(), req)
	require.NoError(t, err)

	stored, err := f.doctors.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Dr. Ada Lovelace", stored.FullName)
	assert.NotEqual(t, "s3cret-pass", stored.Password)
	assert.Equal(t, []string{"Cardiology", "Neurology"}, []string(stored.Specializations))
	assert.Contains(t, f.audit.actions(), entity.AuditActionDoctorRegister)
}

func TestRegister_TrimsNames(t *testing.T) {
	f := newAuthFixture(t, "")
	req := validRegistration(" ada@example.com ", "5551234567", "L1")
	req.FirstName = "  Ada "

	_, err := f.usecase.Register(context.Background(), req)
	require.NoError(t, err)

	stored, _ := f.doctors.FindByEmail(context.Background(), "ada@example.com")
	require.NotNil(t, stored)
	assert.Equal(t, "Ada Lovelace", stored.FullName)
}

func TestRegister_ValidationErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *dto.RegisterDoctorRequest)
		kind   string
		field  string
	}{
		{"missing first name", func(r *dto.RegisterDoctorRequest) { r.FirstName = "" }, validator.KindMissingField, "firstName"},
		{"missing experience", func(r *dto.RegisterDoctorRequest) { r.Experience = nil }, validator.KindMissingField, "experience"},
		{"missing fee", func(r *dto.RegisterDoctorRequest) { r.ConsultationFee = nil }, validator.KindMissingField, "consultationFee"},
		{"terms missing", func(r *dto.RegisterDoctorRequest) { r.Terms = nil }, validator.KindMissingField, "terms"},
		{"terms not accepted", func(r *dto.RegisterDoctorRequest) { r.Terms = boolPtr(false) }, validator.KindInvalidFormat, "terms"},
		{"no specializations", func(r *dto.RegisterDoctorRequest) { r.Specializations = []string{} }, validator.KindMissingField, "specializations"},
		{"bad email", func(r *dto.RegisterDoctorRequest) { r.Email = "not-an-email" }, validator.KindInvalidFormat, "email"},
		{"short phone", func(r *dto.RegisterDoctorRequest) { r.Phone = "555123" }, validator.KindInvalidFormat, "phone"},
		{"phone with decimal point", func(r *dto.RegisterDoctorRequest) { r.Phone = "5551.23456" }, validator.KindInvalidFormat, "phone"},
		{"phone with minus sign", func(r *dto.RegisterDoctorRequest) { r.Phone = "-555123456" }, validator.KindInvalidFormat, "phone"},
		{"phone with plus sign", func(r *dto.RegisterDoctorRequest) { r.Phone = "+555123456" }, validator.KindInvalidFormat, "phone"},
		{"experience too high", func(r *dto.RegisterDoctorRequest) { r.Experience = intPtr(51) }, validator.KindInvalidFormat, "experience"},
		{"graduation too early", func(r *dto.RegisterDoctorRequest) { r.GraduationYear = 1899 }, validator.KindInvalidFormat, "graduationYear"},
		{"short password", func(r *dto.RegisterDoctorRequest) { r.Password = "12345" }, validator.KindInvalidFormat, "password"},
		{"bad gender", func(r *dto.RegisterDoctorRequest) { r.Gender = "Unknown" }, validator.KindInvalidFormat, "gender"},
		{"bad date", func(r *dto.RegisterDoctorRequest) { r.DateOfBirth = "10/12/1980" }, validator.KindInvalidFormat, "dateOfBirth"},
		{"future birth", func(r *dto.RegisterDoctorRequest) { r.DateOfBirth = "2999-01-01" }, validator.KindInvalidFormat, "dateOfBirth"},
		{"negative fee", func(r *dto.RegisterDoctorRequest) {
			fee := decimal.NewFromInt(-1)
			r.ConsultationFee = &fee
		}, validator.KindInvalidFormat, "consultationFee"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAuthFixture(t, "")
			req := validRegistration("ada@example.com", "5551234567", "L1")
			tc.mutate(req)

			_, err := f.usecase.Register(context.Background(), req)
			var verr *validator.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.kind, verr.Kind)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, 0, f.doctors.count())
		})
	}
}

func TestRegister_SequenceFailureAbortsBeforeInsert(t *testing.T) {
	f := newAuthFixture(t, "")
	f.counters.err = errors.New("store unavailable")

	_, err := f.usecase.Register(context.Background(), validRegistration("ada@example.com", "5551234567", "L1"))
	require.Error(t, err)
	assert.Equal(t, 0, f.doctors.count())
}

func TestRegister_UniquenessReadFailure(t *testing.T) {
	f := newAuthFixture(t, "")
	f.doctors.existsErr = errors.New("store unavailable")

	_, err := f.usecase.Register(context.Background(), validRegistration("ada@example.com", "5551234567", "L1"))
	require.Error(t, err)
	assert.Equal(t, 0, f.doctors.count())
}

func TestRegister_UniqueIndexBackstop(t *testing.T) {
	f := newAuthFixture(t, "")
	ctx := context.Background()

	_, err := f.usecase.Register(ctx, validRegistration("ada@example.com", "5551234567", "L1"))
	require.NoError(t, err)

	// a concurrent registration that slipped past the existence reads
	f.doctors.hideExisting = true
	_, err = f.usecase.Register(ctx, validRegistration("other@example.com", "5551234567", "L2"))
	assert.ErrorIs(t, err, ErrPhoneExists)
}

func TestTranslateDoctorConflict(t *testing.T) {
	assert.Equal(t, ErrEmailExists, translateDoctorConflict(&pgconn.PgError{Code: "23505", ConstraintName: "uq_doctors_email"}))
	assert.Equal(t, ErrLicenseExists, translateDoctorConflict(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_doctors_license_number"})))
	assert.Nil(t, translateDoctorConflict(&pgconn.PgError{Code: "23503", ConstraintName: "uq_doctors_email"}))
	assert.Nil(t, translateDoctorConflict(errors.New("boom")))
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t, "")
	ctx := context.Background()
	_, err := f.usecase.Register(ctx, validRegistration("ada@example.com", "5551234567", "L1"))
	require.NoError(t, err)

	doctor, token, err := f.usecase.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "DOC-0001", doctor.DoctorID)

	claims, err := f.jwt.ValidateToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, claims.DoctorID)
	assert.Equal(t, "DOC-0001", claims.DoctorCode)
	assert.Equal(t, "Ada Lovelace", claims.Name)
	assert.Contains(t, f.audit.actions(), entity.AuditActionDoctorLogin)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t, "")
	ctx := context.Background()
	_, err := f.usecase.Register(ctx, validRegistration("ada@example.com", "5551234567", "L1"))
	require.NoError(t, err)

	_, _, wrongPassword := f.usecase.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "wrong-pass"})
	_, _, unknownEmail := f.usecase.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})

	assert.ErrorIs(t, wrongPassword, ErrAuthenticationFailed)
	assert.ErrorIs(t, unknownEmail, ErrAuthenticationFailed)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogin_ThrottlesRepeatedFailures(t *testing.T) {
	f := newAuthFixture(t, "")
	ctx := context.Background()
	_, err := f.usecase.Register(ctx, validRegistration("ada@example.com", "5551234567", "L1"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, _, err := f.usecase.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "wrong-pass"})
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	}

	_, _, err = f.usecase.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestLogin_SuccessResetsThrottle(t *testing.T) {
	f := newAuthFixture(t, "")
	ctx := context.Background()
	_, err := f.usecase.Register(ctx, validRegistration("ada@example.com", "5551234567", "L1"))
	require.NoError(t, err)

	_, _, err = f.usecase.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "wrong-pass"})
	require.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = f.usecase.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	allowed, _ := f.throttle.Allowed(ctx, "ada@example.com")
	assert.True(t, allowed)
	assert.Empty(t, f.throttle.failures)
}

func TestLogin_MissingPassword(t *testing.T) {
	f := newAuthFixture(t, "")

	_, _, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com"})
	var verr *validator.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)
}

func TestRegister_AuditFailureDoesNotFailRequest(t *testing.T) {
	f := newAuthFixture(t, "")
	f.audit.err = errors.New("audit table missing")

	res, err := f.usecase.Register(context.Background(), validRegistration("ada@example.com", "5551234567", "L1"))
	require.NoError(t, err)
	assert.Equal(t, "DOC-0001", res.DoctorID)
}

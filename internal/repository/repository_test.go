package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestCounterRepository_NextValue(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCounterRepository(db)

	mock.ExpectQuery("INSERT INTO counters").
		WithArgs("doctorId").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(7)))

	value, err := repo.NextValue(context.Background(), "doctorId")
	require.NoError(t, err)
	assert.Equal(t, int64(7), value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterRepository_NextValueStoreFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCounterRepository(db)

	mock.ExpectQuery("INSERT INTO counters").
		WithArgs("doctorId").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.NextValue(context.Background(), "doctorId")
	assert.Error(t, err)
}

func TestCounterRepository_Initialize(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCounterRepository(db)

	mock.ExpectExec("INSERT INTO counters").
		WithArgs("doctorId").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Initialize(context.Background(), "doctorId"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorRepository_Exists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDoctorRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "doctors" WHERE email = $1`)).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "doctors" WHERE phone = $1`)).
		WithArgs("5551234567").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "doctors" WHERE license_number = $1`)).
		WithArgs("L-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.ExistsByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByPhone(ctx, "5551234567")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByLicenseNumber(ctx, "L-1")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorRepository_FindByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDoctorRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	doctor, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, doctor)
}

func TestDoctorRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDoctorRepository(db)
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "doctor_id", "full_name", "email", "specializations", "consultation_fee", "password"}).
		AddRow(id.String(), "DOC-0001", "Ada Lovelace", "ada@example.com", "{Cardiology,Neurology}", "150.00", "$2a$10$hash")
	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE email = \$1`).
		WillReturnRows(rows)

	doctor, err := repo.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, doctor)
	assert.Equal(t, id, doctor.ID)
	assert.Equal(t, "DOC-0001", doctor.DoctorID)
	assert.Equal(t, []string{"Cardiology", "Neurology"}, []string(doctor.Specializations))
	assert.Equal(t, "150", doctor.ConsultationFee.String())
}

func TestPatientRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository(db)
	id, doctorID := uuid.New(), uuid.New()

	rows := sqlmock.NewRows([]string{"id", "doctor_id", "name", "age", "gender", "diagnosis", "allergies"}).
		AddRow(id.String(), doctorID.String(), "John Roe", 42, "Male", `{"primary":"Hypertension","status":"Active"}`, "{Penicillin}")
	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WillReturnRows(rows)

	patient, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, patient)
	assert.True(t, patient.IsOwnedBy(doctorID))
	assert.Equal(t, "Hypertension", patient.Diagnosis.Data().Primary)
	assert.Equal(t, []string{"Penicillin"}, []string(patient.Allergies))
}

func TestPatientRepository_FindByDoctorID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository(db)
	doctorID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE doctor_id = \$1 ORDER BY created_at DESC`).
		WithArgs(doctorID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "name"}).
			AddRow(uuid.NewString(), doctorID.String(), "A").
			AddRow(uuid.NewString(), doctorID.String(), "B"))

	patients, err := repo.FindByDoctorID(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Len(t, patients, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrescriptionRepository_FindByPatientIDLoadsDoctor(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPrescriptionRepository(db)
	patientID, doctorID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "prescriptions" WHERE patient_id = \$1 ORDER BY created_at DESC`).
		WithArgs(patientID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "patient_id", "symptoms", "diagnosis", "medications", "created_at"}).
			AddRow(uuid.NewString(), doctorID.String(), patientID.String(), "{fever}", "Flu",
				`[{"name":"Paracetamol","dosage":"500mg","instructions":"Twice a day"}]`, now))
	mock.ExpectQuery(`SELECT .* FROM "doctors"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "full_name", "specializations"}).
			AddRow(doctorID.String(), "DOC-0001", "Ada Lovelace", "{Cardiology}"))

	prescriptions, err := repo.FindByPatientID(context.Background(), patientID)
	require.NoError(t, err)
	require.Len(t, prescriptions, 1)
	require.NotNil(t, prescriptions[0].Doctor)
	assert.Equal(t, "Ada Lovelace", prescriptions[0].Doctor.FullName)
	assert.Equal(t, "Paracetamol", prescriptions[0].Medications[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package converter

import (
	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO. The
// password hash is never copied.
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                     doctor.ID,
		DoctorID:               doctor.DoctorID,
		FullName:               doctor.FullName,
		FirstName:              doctor.FirstName,
		LastName:               doctor.LastName,
		Email:                  doctor.Email,
		Phone:                  doctor.Phone,
		DateOfBirth:            doctor.DateOfBirth.Format("2006-01-02"),
		Gender:                 doctor.Gender,
		LicenseNumber:          doctor.LicenseNumber,
		Experience:             doctor.Experience,
		MedicalSchool:          doctor.MedicalSchool,
		GraduationYear:         doctor.GraduationYear,
		Specializations:        append([]string{}, doctor.Specializations...),
		ClinicName:             doctor.ClinicName,
		PracticeAddress:        doctor.PracticeAddress,
		City:                   doctor.City,
		State:                  doctor.State,
		ZipCode:                doctor.ZipCode,
		ConsultationFee:        doctor.ConsultationFee,
		MedicalLicenseDocument: doctor.MedicalLicenseDocument,
		Photo:                  doctor.Photo,
		Bio:                    doctor.Bio,
		CreatedAt:              doctor.CreatedAt,
		UpdatedAt:              doctor.UpdatedAt,
	}
}

func DoctorToSummary(doctor *entity.Doctor) *dto.DoctorSummary {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorSummary{
		ID:              doctor.ID,
		DoctorID:        doctor.DoctorID,
		FullName:        doctor.FullName,
		Specializations: append([]string{}, doctor.Specializations...),
	}
}

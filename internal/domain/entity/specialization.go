package entity

// Specializations lists every specialization a doctor may declare.
var Specializations = []string{
	"Cardiology",
	"Dermatology",
	"Neurology",
	"Pediatrics",
	"Orthopedics",
	"Psychiatry",
	"General Surgery",
	"Internal Medicine",
}

func IsValidSpecialization(s string) bool {
	for _, known := range Specializations {
		if s == known {
			return true
		}
	}
	return false
}

// Gender constants
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

package entity

// Normalization defaults applied when the upstream record omits a field.
const (
	DefaultRating       = 4.5
	DefaultReviews      = 100
	DefaultVideoConsult = true
	DefaultInClinic     = true
	DefaultGender       = "Unknown"
)

// Doctor is a normalized practitioner record. Every numeric field is already
// coerced, Specialties is never nil.
type Doctor struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Specialties  []string `json:"specialties"`
	Experience   int      `json:"experience"`
	Fees         int      `json:"fees"`
	Rating       float64  `json:"rating"`
	Reviews      int      `json:"reviews"`
	VideoConsult bool     `json:"video_consult"`
	InClinic     bool     `json:"in_clinic"`
	Gender       string   `json:"gender"`

	NameInitials string   `json:"name_initials,omitempty"`
	Photo        string   `json:"photo,omitempty"`
	Introduction string   `json:"doctor_introduction,omitempty"`
	Languages    []string `json:"languages,omitempty"`
}

// HasSpecialty reports whether name is one of the doctor's specialties.
// The match is exact and case-sensitive.
func (d *Doctor) HasSpecialty(name string) bool {
	for _, s := range d.Specialties {
		if s == name {
			return true
		}
	}
	return false
}

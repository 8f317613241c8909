package converter

import (
	"fmt"
	"regexp"
	"strconv"

	"go-doctor-finder/internal/delivery/dto"
	"go-doctor-finder/internal/domain/entity"
)

var digitRun = regexp.MustCompile(`\d+`)

// ExtractNumber returns the first run of decimal digits in raw as an int,
// e.g. "13 Years of experience" -> 13 and "₹ 500" -> 500. It returns 0 when
// raw has no digits or the run does not fit in an int.
func ExtractNumber(raw string) int {
	match := digitRun.FindString(raw)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return n
}

// DoctorRecordToEntity normalizes one upstream record. Missing or wrongly
// typed fields fall back to the entity defaults; it never fails.
func DoctorRecordToEntity(record *dto.DoctorRecord) entity.Doctor {
	doctor := entity.Doctor{
		ID:           record.ID.Value,
		Name:         record.Name.Value,
		Specialties:  []string(record.Specialities),
		Experience:   ExtractNumber(record.Experience.Value),
		Fees:         ExtractNumber(record.Fees.Value),
		Rating:       entity.DefaultRating,
		Reviews:      entity.DefaultReviews,
		VideoConsult: entity.DefaultVideoConsult,
		InClinic:     entity.DefaultInClinic,
		Gender:       entity.DefaultGender,
		NameInitials: record.NameInitials.Value,
		Photo:        record.Photo.Value,
		Introduction: record.DoctorIntroduction.Value,
		Languages:    []string(record.Languages),
	}
	if doctor.Specialties == nil {
		doctor.Specialties = []string{}
	}

	if record.Rating.Valid {
		doctor.Rating = record.Rating.Value
	}
	if record.Reviews.Valid && record.Reviews.Value >= 0 {
		doctor.Reviews = int(record.Reviews.Value)
	}
	if record.VideoConsult.Valid {
		doctor.VideoConsult = record.VideoConsult.Value
	}
	if record.InClinic.Valid {
		doctor.InClinic = record.InClinic.Value
	}
	if record.Gender.Valid && record.Gender.Value != "" {
		doctor.Gender = record.Gender.Value
	}

	return doctor
}

// DoctorRecordsToEntities normalizes a fetched batch, keeping fetch order.
// Records without an id get a positional one; a repeated id keeps only its
// first record.
func DoctorRecordsToEntities(records []dto.DoctorRecord) []entity.Doctor {
	doctors := make([]entity.Doctor, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		doctor := DoctorRecordToEntity(&records[i])
		if doctor.ID == "" {
			doctor.ID = fmt.Sprintf("record-%d", i)
		}
		if _, dup := seen[doctor.ID]; dup {
			continue
		}
		seen[doctor.ID] = struct{}{}
		doctors = append(doctors, doctor)
	}
	return doctors
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = doctorResponse(&doctors[i])
	}
	return responses
}

func doctorResponse(doctor *entity.Doctor) dto.DoctorResponse {
	return dto.DoctorResponse{
		ID:           doctor.ID,
		Name:         doctor.Name,
		NameInitials: doctor.NameInitials,
		Photo:        doctor.Photo,
		Introduction: doctor.Introduction,
		Specialties:  doctor.Specialties,
		Experience:   doctor.Experience,
		Fees:         doctor.Fees,
		Rating:       doctor.Rating,
		Reviews:      doctor.Reviews,
		VideoConsult: doctor.VideoConsult,
		InClinic:     doctor.InClinic,
		Gender:       doctor.Gender,
		Languages:    doctor.Languages,
	}
}

// DoctorsToSuggestions converts doctors to name suggestions.
func DoctorsToSuggestions(doctors []entity.Doctor) []dto.SuggestionResponse {
	suggestions := make([]dto.SuggestionResponse, len(doctors))
	for i, doctor := range doctors {
		suggestions[i] = dto.SuggestionResponse{ID: doctor.ID, Name: doctor.Name}
	}
	return suggestions
}

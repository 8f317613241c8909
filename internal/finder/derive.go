// Package finder derives the visible doctor list from the fetched list and
// the current filter state.
package finder

import (
	"cmp"
	"slices"
	"strings"

	"go-doctor-finder/internal/domain/entity"
)

// Derive runs search, consultation filter, specialty filter and sort, in
// that order. It never modifies doctors and always returns a non-nil slice.
func Derive(doctors []entity.Doctor, state entity.FilterState) []entity.Doctor {
	result := make([]entity.Doctor, len(doctors))
	copy(result, doctors)

	result = BySearch(result, state.Search)
	result = ByConsultation(result, state.Consultation)
	result = BySpecialties(result, state.Specialties)
	SortBy(result, state.Sort)
	return result
}

// BySearch keeps doctors whose name contains term, ignoring case. An empty
// term keeps everything.
func BySearch(doctors []entity.Doctor, term string) []entity.Doctor {
	if term == "" {
		return doctors
	}
	needle := strings.ToLower(term)
	return keep(doctors, func(d *entity.Doctor) bool {
		return strings.Contains(strings.ToLower(d.Name), needle)
	})
}

// ByConsultation keeps video-consult doctors for "video" and in-clinic
// doctors for "clinic". Any other mode keeps everything.
func ByConsultation(doctors []entity.Doctor, mode string) []entity.Doctor {
	switch mode {
	case entity.ConsultationVideo:
		return keep(doctors, func(d *entity.Doctor) bool { return d.VideoConsult })
	case entity.ConsultationClinic:
		return keep(doctors, func(d *entity.Doctor) bool { return d.InClinic })
	default:
		return doctors
	}
}

// BySpecialties keeps doctors sharing at least one specialty with selected.
// An empty selection keeps everything; a doctor with no specialties is
// dropped whenever the selection is not empty.
func BySpecialties(doctors []entity.Doctor, selected entity.Specialties) []entity.Doctor {
	if len(selected) == 0 {
		return doctors
	}
	return keep(doctors, func(d *entity.Doctor) bool {
		for _, s := range selected {
			if d.HasSpecialty(s) {
				return true
			}
		}
		return false
	})
}

// SortBy stable-sorts doctors in place: ascending fee for "fees", descending
// experience for "experience". Other keys leave the order alone.
func SortBy(doctors []entity.Doctor, key string) {
	switch key {
	case entity.SortByFees:
		slices.SortStableFunc(doctors, func(a, b entity.Doctor) int {
			return cmp.Compare(a.Fees, b.Fees)
		})
	case entity.SortByExperience:
		slices.SortStableFunc(doctors, func(a, b entity.Doctor) int {
			return cmp.Compare(b.Experience, a.Experience)
		})
	}
}

func keep(doctors []entity.Doctor, pred func(*entity.Doctor) bool) []entity.Doctor {
	out := make([]entity.Doctor, 0, len(doctors))
	for i := range doctors {
		if pred(&doctors[i]) {
			out = append(out, doctors[i])
		}
	}
	return out
}

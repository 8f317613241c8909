package finder

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go-doctor-finder/internal/domain/entity"
)

// Summary describes the active filters, e.g.
// `Filtered by: "ali", Video Consult, 2 specialties, Sorted by fees`.
// It is empty when nothing recognized is active.
func Summary(state entity.FilterState) string {
	var parts []string

	if state.Search != "" {
		parts = append(parts, `"`+state.Search+`"`)
	}

	switch state.Consultation {
	case entity.ConsultationVideo:
		parts = append(parts, "Video Consult")
	case entity.ConsultationClinic:
		parts = append(parts, "In Clinic")
	}

	switch n := len(state.Specialties); {
	case n == 1:
		parts = append(parts, state.Specialties[0])
	case n > 1:
		parts = append(parts, fmt.Sprintf("%d specialties", n))
	}

	switch state.Sort {
	case entity.SortByFees:
		parts = append(parts, "Sorted by fees")
	case entity.SortByExperience:
		parts = append(parts, "Sorted by experience")
	}

	if len(parts) == 0 {
		return ""
	}
	return "Filtered by: " + strings.Join(parts, ", ")
}

// SpecialtyNames returns every specialty across doctors, deduplicated and
// sorted.
func SpecialtyNames(doctors []entity.Doctor) []string {
	set := make(map[string]struct{})
	for _, d := range doctors {
		for _, s := range d.Specialties {
			set[s] = struct{}{}
		}
	}
	names := make([]string, 0, len(set))
	for s := range set {
		names = append(names, s)
	}
	sort.Strings(names)
	return names
}

// MinSuggestionLength is the shortest term Suggest answers.
const MinSuggestionLength = 2

// DefaultSuggestionLimit is the number of suggestions returned by default.
const DefaultSuggestionLimit = 3

// Suggest returns up to limit doctors, in fetch order, whose name contains
// term ignoring case. Terms shorter than MinSuggestionLength get nothing.
func Suggest(doctors []entity.Doctor, term string, limit int) []entity.Doctor {
	if len([]rune(term)) < MinSuggestionLength || limit <= 0 {
		return []entity.Doctor{}
	}
	matches := BySearch(doctors, term)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Stars splits a rating into whole stars and an optional half star.
func Stars(rating float64) (full int, half bool) {
	if rating <= 0 {
		return 0, false
	}
	whole := math.Floor(rating)
	return int(whole), rating-whole >= 0.5
}

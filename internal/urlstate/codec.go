// Package urlstate keeps the doctor search state in a URL query string.
//
// The query string is the only place the state lives: every read re-parses
// it and every write re-serializes it, so there is nothing to go stale when
// the user navigates back or forward.
package urlstate

import (
	"net/url"

	"go-doctor-finder/internal/domain/entity"

	"github.com/gorilla/schema"
)

// Recognized query keys.
const (
	KeySearch       = "search"
	KeyConsultation = "consultation"
	KeySpecialties  = "specialties"
	KeySort         = "sort"
)

// params mirrors the recognized keys. Every field is a slice so the decoder
// hands over all occurrences; scalars then take the first non-empty one.
type params struct {
	Search       []string `schema:"search,omitempty"`
	Consultation []string `schema:"consultation,omitempty"`
	Specialties  []string `schema:"specialties,omitempty"`
	Sort         []string `schema:"sort,omitempty"`
}

var (
	decoder = schema.NewDecoder()
	encoder = schema.NewEncoder()
)

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// Parse reads the filter state out of a raw query string. Unknown keys are
// ignored; for a repeated scalar key the first non-empty occurrence wins.
// Empty values count as absent.
func Parse(rawQuery string) entity.FilterState {
	// ParseQuery keeps every well-formed pair even when it reports an error.
	query, _ := url.ParseQuery(rawQuery)
	return ParseValues(query)
}

// ParseValues is Parse for already split query values.
func ParseValues(query url.Values) entity.FilterState {
	var p params
	if err := decoder.Decode(&p, query); err != nil {
		// Unknown keys are ignored, so this only fires for keys the decoder
		// reads as paths (e.g. "search.0"). Retry with the recognized keys.
		if err := decoder.Decode(&p, recognized(query)); err != nil {
			return entity.FilterState{}
		}
	}

	state := entity.FilterState{
		Search:       first(p.Search),
		Consultation: first(p.Consultation),
		Sort:         first(p.Sort),
	}
	if specialties := nonEmpty(p.Specialties); len(specialties) > 0 {
		state.Specialties = entity.Specialties(specialties)
	}
	return state
}

// Encode serializes state into a query string holding only the set fields.
func Encode(state entity.FilterState) string {
	p := params{
		Search:       nonEmpty([]string{state.Search}),
		Consultation: nonEmpty([]string{state.Consultation}),
		Specialties:  nonEmpty(state.Specialties),
		Sort:         nonEmpty([]string{state.Sort}),
	}
	query := url.Values{}
	if err := encoder.Encode(&p, query); err != nil {
		return ""
	}
	return query.Encode()
}

func recognized(query url.Values) url.Values {
	out := url.Values{}
	for _, key := range []string{KeySearch, KeyConsultation, KeySpecialties, KeySort} {
		if v, ok := query[key]; ok {
			out[key] = v
		}
	}
	return out
}

func first(values []string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

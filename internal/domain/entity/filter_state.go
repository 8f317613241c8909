package entity

import (
	"encoding/json"
	"fmt"
)

// Recognized consultation modes.
const (
	ConsultationVideo  = "video"
	ConsultationClinic = "clinic"
)

// Recognized sort keys.
const (
	SortByFees       = "fees"
	SortByExperience = "experience"
)

// FilterState is the search/filter/sort selection carried in the page URL.
// A zero-valued field means "no constraint", never "match nothing".
type FilterState struct {
	Search       string      `json:"search,omitempty"`
	Consultation string      `json:"consultation,omitempty"`
	Specialties  Specialties `json:"specialties,omitempty"`
	Sort         string      `json:"sort,omitempty"`
}

// IsEmpty reports whether no field is set.
func (s FilterState) IsEmpty() bool {
	return s.Search == "" && s.Consultation == "" && len(s.Specialties) == 0 && s.Sort == ""
}

// Specialties is the selected specialty set. On the wire a single selection
// is a scalar and several selections are a list; in Go it is always a slice.
type Specialties []string

// MarshalJSON writes a lone selection as a string and anything else as an array.
func (s Specialties) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]string(s))
}

// UnmarshalJSON accepts either a string or an array of strings.
func (s *Specialties) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*s = nil
			return nil
		}
		*s = Specialties{one}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("specialties must be a string or a list of strings: %w", err)
	}
	*s = Specialties(many)
	return nil
}

// Contains reports whether name is selected.
func (s Specialties) Contains(name string) bool {
	for _, v := range s {
		if v == name {
			return true
		}
	}
	return false
}

// With returns a copy with name added unless it is already selected.
func (s Specialties) With(name string) Specialties {
	if s.Contains(name) {
		return append(Specialties(nil), s...)
	}
	out := make(Specialties, 0, len(s)+1)
	out = append(out, s...)
	return append(out, name)
}

// Without returns a copy with every occurrence of name removed.
func (s Specialties) Without(name string) Specialties {
	out := make(Specialties, 0, len(s))
	for _, v := range s {
		if v != name {
			out = append(out, v)
		}
	}
	return out
}

package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Upstream DTOs
//
// The upstream feed is third-party and loosely typed. Every field type below
// decodes leniently: a value of the wrong JSON type is dropped instead of
// failing the whole record.

type DoctorRecord struct {
	ID                 LooseString     `json:"id"`
	Name               LooseString     `json:"name"`
	NameInitials       LooseString     `json:"name_initials"`
	Photo              LooseString     `json:"photo"`
	DoctorIntroduction LooseString     `json:"doctor_introduction"`
	Specialities       SpecialityList  `json:"specialities"`
	Experience         LooseString     `json:"experience"`
	Fees               LooseString     `json:"fees"`
	Languages          LooseStringList `json:"languages"`
	Rating             LooseNumber     `json:"rating"`
	Reviews            LooseNumber     `json:"reviews"`
	VideoConsult       LooseBool       `json:"video_consult"`
	InClinic           LooseBool       `json:"in_clinic"`
	Gender             LooseString     `json:"gender"`
}

// LooseString holds a JSON string, number or bool as text.
type LooseString struct {
	Value string
	Valid bool
}

func (s *LooseString) UnmarshalJSON(data []byte) error {
	*s = LooseString{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err == nil {
			*s = LooseString{Value: v, Valid: true}
		}
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(data, &v); err == nil {
			*s = LooseString{Value: strconv.FormatBool(v), Valid: true}
		}
	case '{', '[':
	default:
		var v json.Number
		if err := json.Unmarshal(data, &v); err == nil {
			*s = LooseString{Value: numberText(v), Valid: true}
		}
	}
	return nil
}

// numberText spells out exponent forms ("1e3" -> "1000") and keeps any other
// literal as written, so long integer ids survive unchanged.
func numberText(n json.Number) string {
	text := n.String()
	if !strings.ContainsAny(text, "eE") {
		return text
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// LooseNumber holds a JSON number or a string that parses as one.
type LooseNumber struct {
	Value float64
	Valid bool
}

func (n *LooseNumber) UnmarshalJSON(data []byte) error {
	*n = LooseNumber{}
	var text LooseString
	_ = text.UnmarshalJSON(data)
	if !text.Valid {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text.Value), 64)
	if err != nil {
		return nil
	}
	*n = LooseNumber{Value: v, Valid: true}
	return nil
}

// LooseBool holds a JSON bool or a string that parses as one.
type LooseBool struct {
	Value bool
	Valid bool
}

func (b *LooseBool) UnmarshalJSON(data []byte) error {
	*b = LooseBool{}
	var text LooseString
	_ = text.UnmarshalJSON(data)
	if !text.Valid {
		return nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(text.Value))
	if err != nil {
		return nil
	}
	*b = LooseBool{Value: v, Valid: true}
	return nil
}

// LooseStringList holds an array of scalars as text, skipping anything else.
type LooseStringList []string

func (l *LooseStringList) UnmarshalJSON(data []byte) error {
	*l = nil
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	for _, item := range items {
		var s LooseString
		_ = s.UnmarshalJSON(item)
		if s.Valid && s.Value != "" {
			*l = append(*l, s.Value)
		}
	}
	return nil
}

// SpecialityList flattens `[{"name": "..."}]` into names. Plain strings in
// the array are accepted too.
type SpecialityList []string

func (l *SpecialityList) UnmarshalJSON(data []byte) error {
	*l = nil
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	for _, item := range items {
		var named struct {
			Name LooseString `json:"name"`
		}
		if err := json.Unmarshal(item, &named); err == nil {
			if named.Name.Valid && named.Name.Value != "" {
				*l = append(*l, named.Name.Value)
			}
			continue
		}
		var s LooseString
		_ = s.UnmarshalJSON(item)
		if s.Valid && s.Value != "" {
			*l = append(*l, s.Value)
		}
	}
	return nil
}

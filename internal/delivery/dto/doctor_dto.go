package dto

import "go-doctor-finder/internal/domain/entity"

// Request DTOs

type SuggestionRequest struct {
	Query string `schema:"q"`
	Limit int    `schema:"limit" validate:"omitempty,min=1,max=10"`
}

// Response DTOs

type DoctorResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	NameInitials string   `json:"name_initials,omitempty"`
	Photo        string   `json:"photo,omitempty"`
	Introduction string   `json:"doctor_introduction,omitempty"`
	Specialties  []string `json:"specialties"`
	Experience   int      `json:"experience"`
	Fees         int      `json:"fees"`
	Rating       float64  `json:"rating"`
	Reviews      int      `json:"reviews"`
	VideoConsult bool     `json:"video_consult"`
	InClinic     bool     `json:"in_clinic"`
	Gender       string   `json:"gender"`
	Languages    []string `json:"languages,omitempty"`
}

// DoctorListResponse carries the derived list. Query is the canonical query
// string for Filters, usable as a page link.
type DoctorListResponse struct {
	Doctors []DoctorResponse   `json:"doctors"`
	Total   int                `json:"total"`
	Filters entity.FilterState `json:"filters"`
	Query   string             `json:"query"`
	Summary string             `json:"summary,omitempty"`
}

type SpecialtyListResponse struct {
	Specialties []string `json:"specialties"`
	Total       int      `json:"total"`
}

type SuggestionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RefreshResponse struct {
	Total int `json:"total"`
}

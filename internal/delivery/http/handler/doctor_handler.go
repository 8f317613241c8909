package handler

import (
	"errors"
	"net/http"

	"go-doctor-finder/internal/delivery/dto"
	"go-doctor-finder/internal/domain/entity"
	"go-doctor-finder/internal/urlstate"
	"go-doctor-finder/internal/usecase"
	"go-doctor-finder/pkg/response"
	"go-doctor-finder/pkg/validator"

	"github.com/gorilla/schema"
)

var queryDecoder = schema.NewDecoder()

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// SearchDoctors answers GET /api/v1/doctors. The query string uses the same
// keys as the page: search, consultation, specialties (repeatable) and sort.
func (h *DoctorHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	state := urlstate.ParseValues(r.URL.Query())

	doctors, err := h.doctorUsecase.Search(r.Context(), state)
	if err != nil {
		writeDoctorError(w, err, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.doctorUsecase.Specialties(r.Context())
	if err != nil {
		writeDoctorError(w, err, "Failed to get specialties")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}

func (h *DoctorHandler) SuggestDoctors(w http.ResponseWriter, r *http.Request) {
	var req dto.SuggestionRequest
	if err := queryDecoder.Decode(&req, r.URL.Query()); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid query parameters", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	suggestions, err := h.doctorUsecase.Suggest(r.Context(), &req)
	if err != nil {
		writeDoctorError(w, err, "Failed to get suggestions")
		return
	}

	response.Success(w, http.StatusOK, "Suggestions retrieved successfully", suggestions)
}

func (h *DoctorHandler) RefreshDoctors(w http.ResponseWriter, r *http.Request) {
	refreshed, err := h.doctorUsecase.Refresh(r.Context())
	if err != nil {
		writeDoctorError(w, err, "Failed to refresh doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors refreshed successfully", refreshed)
}

func writeDoctorError(w http.ResponseWriter, err error, fallback string) {
	var fetchErr *entity.FetchError
	switch {
	case errors.Is(err, usecase.ErrDoctorsLoading):
		response.Loading(w, "Doctors are still loading")
	case errors.As(err, &fetchErr):
		response.BadGateway(w, fetchErr.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

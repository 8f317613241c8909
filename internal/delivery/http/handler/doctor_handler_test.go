package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-doctor-finder/internal/delivery/http/handler"
	"go-doctor-finder/internal/domain/entity"
	"go-doctor-finder/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoctorHandler(source *fakeSource) *handler.DoctorHandler {
	return handler.NewDoctorHandler(newUsecase(source), validator.NewValidator())
}

func TestDoctorHandler_SearchDoctors(t *testing.T) {
	t.Parallel()

	h := newDoctorHandler(&fakeSource{doctors: catalogue()})
	rec := httptest.NewRecorder()
	h.SearchDoctors(rec, httptest.NewRequest(http.MethodGet, "/api/v1/doctors?consultation=video&specialties=Cardiology", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec.Body)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]any)
	assert.Equal(t, float64(1), data["total"])
	filters := data["filters"].(map[string]any)
	assert.Equal(t, "video", filters["consultation"])
	assert.Equal(t, "Cardiology", filters["specialties"])
	assert.Equal(t, "consultation=video&specialties=Cardiology", data["query"])
}

func TestDoctorHandler_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  *fakeSource
		status  int
		message string
	}{
		{
			name:    "upstream failure",
			source:  &fakeSource{err: &entity.FetchError{StatusCode: 503, Message: "Failed to fetch doctors"}},
			status:  http.StatusBadGateway,
			message: "Failed to fetch doctors (HTTP 503)",
		},
		{
			name:    "still loading",
			source:  &fakeSource{err: context.DeadlineExceeded, loading: true},
			status:  http.StatusAccepted,
			message: "Doctors are still loading",
		},
		{
			name:    "unexpected",
			source:  &fakeSource{err: context.Canceled},
			status:  http.StatusInternalServerError,
			message: "Failed to get specialties",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newDoctorHandler(tt.source)
			rec := httptest.NewRecorder()
			h.GetSpecialties(rec, httptest.NewRequest(http.MethodGet, "/api/v1/specialties", nil))

			assert.Equal(t, tt.status, rec.Code)
			envelope := decodeEnvelope(t, rec.Body)
			assert.Equal(t, false, envelope["success"])
			assert.Equal(t, tt.message, envelope["message"])
		})
	}
}

func TestDoctorHandler_SuggestDoctors(t *testing.T) {
	t.Parallel()

	h := newDoctorHandler(&fakeSource{doctors: catalogue()})

	rec := httptest.NewRecorder()
	h.SuggestDoctors(rec, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/suggestions?q=al", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec.Body)["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Dr. Alice", data[0].(map[string]any)["name"])

	rec = httptest.NewRecorder()
	h.SuggestDoctors(rec, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/suggestions?q=al&limit=50", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec.Body)["error"], "SuggestionRequest.Limit")

	rec = httptest.NewRecorder()
	h.SuggestDoctors(rec, httptest.NewRequest(http.MethodGet, "/api/v1/doctors/suggestions?q=al&limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDoctorHandler_RefreshDoctors(t *testing.T) {
	t.Parallel()

	h := newDoctorHandler(&fakeSource{doctors: catalogue()})
	rec := httptest.NewRecorder()
	h.RefreshDoctors(rec, httptest.NewRequest(http.MethodPost, "/api/v1/doctors/refresh", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec.Body)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["total"])
}

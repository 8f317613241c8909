package converter_test

import (
	"encoding/json"
	"testing"

	"go-doctor-finder/internal/converter"
	"go-doctor-finder/internal/delivery/dto"
	"go-doctor-finder/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int
	}{
		{"13 Years of experience", 13},
		{"₹ 500", 500},
		{"₹500", 500},
		{"500", 500},
		{"12.5 years", 12},
		{"-7", 7},
		{"Fresher", 0},
		{"", 0},
		{"99999999999999999999999", 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got := converter.ExtractNumber(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

func decodeRecord(t *testing.T, raw string) dto.DoctorRecord {
	t.Helper()
	var record dto.DoctorRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &record))
	return record
}

func TestDoctorRecordToEntity(t *testing.T) {
	t.Parallel()

	t.Run("normalizes an upstream record", func(t *testing.T) {
		t.Parallel()

		record := decodeRecord(t, `{
			"id": "111",
			"name": "Dr. Alice",
			"name_initials": "DA",
			"photo": "https://example.com/a.png",
			"doctor_introduction": "Cardiologist",
			"specialities": [{"name": "Cardiology"}, {"name": "General Physician"}],
			"experience": "13 Years of experience",
			"fees": "₹ 500",
			"languages": ["English", "Hindi"]
		}`)

		doctor := converter.DoctorRecordToEntity(&record)

		assert.Equal(t, entity.Doctor{
			ID:           "111",
			Name:         "Dr. Alice",
			Specialties:  []string{"Cardiology", "General Physician"},
			Experience:   13,
			Fees:         500,
			Rating:       entity.DefaultRating,
			Reviews:      entity.DefaultReviews,
			VideoConsult: entity.DefaultVideoConsult,
			InClinic:     entity.DefaultInClinic,
			Gender:       entity.DefaultGender,
			NameInitials: "DA",
			Photo:        "https://example.com/a.png",
			Introduction: "Cardiologist",
			Languages:    []string{"English", "Hindi"},
		}, doctor)
	})

	t.Run("fills defaults for a bare record", func(t *testing.T) {
		t.Parallel()

		record := decodeRecord(t, `{"id": 7}`)
		doctor := converter.DoctorRecordToEntity(&record)

		assert.Equal(t, "7", doctor.ID)
		assert.NotNil(t, doctor.Specialties)
		assert.Empty(t, doctor.Specialties)
		assert.Zero(t, doctor.Experience)
		assert.Zero(t, doctor.Fees)
		assert.Equal(t, 4.5, doctor.Rating)
		assert.Equal(t, 100, doctor.Reviews)
		assert.True(t, doctor.VideoConsult)
		assert.True(t, doctor.InClinic)
		assert.Equal(t, "Unknown", doctor.Gender)
	})

	t.Run("keeps valid source values over defaults", func(t *testing.T) {
		t.Parallel()

		record := decodeRecord(t, `{
			"id": "1",
			"experience": 8,
			"fees": 350,
			"rating": "3.9",
			"reviews": 12,
			"video_consult": false,
			"in_clinic": "false",
			"gender": "Female"
		}`)
		doctor := converter.DoctorRecordToEntity(&record)

		assert.Equal(t, 8, doctor.Experience)
		assert.Equal(t, 350, doctor.Fees)
		assert.Equal(t, 3.9, doctor.Rating)
		assert.Equal(t, 12, doctor.Reviews)
		assert.False(t, doctor.VideoConsult)
		assert.False(t, doctor.InClinic)
		assert.Equal(t, "Female", doctor.Gender)
	})

	t.Run("defaults wrongly typed fields", func(t *testing.T) {
		t.Parallel()

		record := decodeRecord(t, `{
			"id": "1",
			"specialities": "Cardiology",
			"experience": {"years": 4},
			"fees": null,
			"rating": "great",
			"video_consult": "sometimes",
			"languages": "English"
		}`)
		doctor := converter.DoctorRecordToEntity(&record)

		assert.Equal(t, []string{}, doctor.Specialties)
		assert.Zero(t, doctor.Experience)
		assert.Zero(t, doctor.Fees)
		assert.Equal(t, entity.DefaultRating, doctor.Rating)
		assert.True(t, doctor.VideoConsult)
		assert.Nil(t, doctor.Languages)
	})
}

func TestDoctorRecordsToEntities(t *testing.T) {
	t.Parallel()

	var records []dto.DoctorRecord
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": "1", "name": "First"},
		{"id": "2", "name": "Second"},
		{"id": "1", "name": "Duplicate"},
		{"name": "No id"}
	]`), &records))

	doctors := converter.DoctorRecordsToEntities(records)

	require.Len(t, doctors, 3)
	assert.Equal(t, "First", doctors[0].Name)
	assert.Equal(t, "Second", doctors[1].Name)
	assert.Equal(t, "record-3", doctors[2].ID)
}

func TestDoctorsToResponses(t *testing.T) {
	t.Parallel()

	doctors := []entity.Doctor{
		{ID: "1", Name: "Dr. Alice", Specialties: []string{"Cardiology"}, Fees: 500},
	}

	responses := converter.DoctorsToResponses(doctors)

	require.Len(t, responses, 1)
	assert.Equal(t, "Dr. Alice", responses[0].Name)
	assert.Equal(t, 500, responses[0].Fees)
	assert.Empty(t, converter.DoctorsToResponses(nil))
}

func TestDoctorRecordToEntity_ExponentNumbers(t *testing.T) {
	t.Parallel()

	var record dto.DoctorRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id": 7, "name": "Dr. Exp", "fees": 1e3, "experience": 1.2e1}`), &record))

	doctor := converter.DoctorRecordToEntity(&record)

	assert.Equal(t, "7", doctor.ID)
	assert.Equal(t, 1000, doctor.Fees)
	assert.Equal(t, 12, doctor.Experience)
}

package dto_test

import (
	"encoding/json"
	"testing"

	"go-doctor-finder/internal/delivery/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooseString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		want      string
		wantValid bool
	}{
		{"string", `"13 Years"`, "13 Years", true},
		{"integer", `42`, "42", true},
		{"float", `4.5`, "4.5", true},
		{"exponent", `1e3`, "1000", true},
		{"negative exponent", `2.5E-1`, "0.25", true},
		{"long integer", `12345678901234567890`, "12345678901234567890", true},
		{"bool", `true`, "true", true},
		{"null", `null`, "", false},
		{"object", `{"a": 1}`, "", false},
		{"array", `[1, 2]`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var s dto.LooseString
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &s))
			assert.Equal(t, tt.want, s.Value)
			assert.Equal(t, tt.wantValid, s.Valid)
		})
	}
}

func TestSpecialityList(t *testing.T) {
	t.Parallel()

	t.Run("flattens named objects", func(t *testing.T) {
		t.Parallel()

		var l dto.SpecialityList
		require.NoError(t, json.Unmarshal([]byte(`[{"name": "Dentist"}, {"name": ""}, {"other": 1}, "Dietitian/Nutritionist", 5]`), &l))
		assert.Equal(t, dto.SpecialityList{"Dentist", "Dietitian/Nutritionist", "5"}, l)
	})

	t.Run("ignores a non-array value", func(t *testing.T) {
		t.Parallel()

		var l dto.SpecialityList
		require.NoError(t, json.Unmarshal([]byte(`"Dentist"`), &l))
		assert.Nil(t, l)
	})
}

func TestDoctorRecord_NeverFailsOnFieldTypes(t *testing.T) {
	t.Parallel()

	var records []dto.DoctorRecord
	err := json.Unmarshal([]byte(`[
		{"id": "1", "rating": [], "reviews": {}, "video_consult": 3, "languages": [1, null, "Tamil"]},
		{"id": 2, "name": 12345}
	]`), &records)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.False(t, records[0].Rating.Valid)
	assert.False(t, records[0].Reviews.Valid)
	assert.False(t, records[0].VideoConsult.Valid)
	assert.Equal(t, dto.LooseStringList{"1", "Tamil"}, records[0].Languages)
	assert.Equal(t, "12345", records[1].Name.Value)
}

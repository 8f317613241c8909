package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"go-doctor-finder/internal/domain/entity"
	"go-doctor-finder/internal/infrastructure/metrics"
	"go-doctor-finder/internal/usecase"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	doctors []entity.Doctor
	err     error
	loading bool
}

func (s *fakeSource) Get(context.Context) ([]entity.Doctor, error) { return s.doctors, s.err }

func (s *fakeSource) Refresh(context.Context) ([]entity.Doctor, error) { return s.doctors, s.err }

func (s *fakeSource) Cached() ([]entity.Doctor, bool) { return nil, false }

func (s *fakeSource) Loading() bool { return s.loading }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newUsecase(source *fakeSource) usecase.DoctorUsecase {
	return usecase.NewDoctorUsecase(source, quietLogger(), metrics.New())
}

func catalogue() []entity.Doctor {
	return []entity.Doctor{
		{ID: "1", Name: "Dr. Alice", Specialties: []string{"Cardiology"}, Fees: 500, Experience: 10, Rating: 4.5, Reviews: 20, VideoConsult: true, InClinic: true},
		{ID: "2", Name: "Dr. Bob", Specialties: []string{}, Fees: 300, Experience: 5, Rating: 3, Reviews: 7, InClinic: true},
	}
}

func decodeEnvelope(t *testing.T, body io.Reader) map[string]any {
	t.Helper()

	var envelope map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	return envelope
}

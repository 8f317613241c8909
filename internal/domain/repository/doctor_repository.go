package repository

import (
	"context"

	"go-doctor-finder/internal/domain/entity"
)

// DoctorRepository retrieves the full practitioner list from the upstream
// source. Each call performs one upstream round trip.
type DoctorRepository interface {
	FetchAll(ctx context.Context) ([]entity.Doctor, error)
}

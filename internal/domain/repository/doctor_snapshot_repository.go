package repository

import (
	"context"

	"go-doctor-finder/internal/domain/entity"
)

// DoctorSnapshotRepository keeps the last normalized doctor list so another
// process (or a restart) can reuse it instead of hitting the upstream.
type DoctorSnapshotRepository interface {
	// Load returns ok=false when no snapshot is stored.
	Load(ctx context.Context) (doctors []entity.Doctor, ok bool, err error)
	Save(ctx context.Context, doctors []entity.Doctor) error
	Delete(ctx context.Context) error
}

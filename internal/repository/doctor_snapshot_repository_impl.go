package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-doctor-finder/internal/domain/entity"
	domainRepo "go-doctor-finder/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const doctorSnapshotKey = "doctorfinder:doctors"

type doctorSnapshotRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDoctorSnapshotRepository stores the list under a single key. A zero ttl
// keeps it until deleted. A nil client yields a repository that stores
// nothing.
func NewDoctorSnapshotRepository(client *redis.Client, ttl time.Duration) domainRepo.DoctorSnapshotRepository {
	if client == nil {
		return noopSnapshotRepository{}
	}
	return &doctorSnapshotRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *doctorSnapshotRepository) Load(ctx context.Context) ([]entity.Doctor, bool, error) {
	data, err := r.client.Get(ctx, doctorSnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get doctor snapshot: %w", err)
	}

	var doctors []entity.Doctor
	if err := json.Unmarshal(data, &doctors); err != nil {
		return nil, false, fmt.Errorf("decode doctor snapshot: %w", err)
	}
	for i := range doctors {
		if doctors[i].Specialties == nil {
			doctors[i].Specialties = []string{}
		}
	}
	return doctors, true, nil
}

func (r *doctorSnapshotRepository) Save(ctx context.Context, doctors []entity.Doctor) error {
	data, err := json.Marshal(doctors)
	if err != nil {
		return fmt.Errorf("encode doctor snapshot: %w", err)
	}
	if err := r.client.Set(ctx, doctorSnapshotKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("set doctor snapshot: %w", err)
	}
	return nil
}

func (r *doctorSnapshotRepository) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, doctorSnapshotKey).Err(); err != nil {
		return fmt.Errorf("delete doctor snapshot: %w", err)
	}
	return nil
}

type noopSnapshotRepository struct{}

func (noopSnapshotRepository) Load(context.Context) ([]entity.Doctor, bool, error) {
	return nil, false, nil
}

func (noopSnapshotRepository) Save(context.Context, []entity.Doctor) error { return nil }

func (noopSnapshotRepository) Delete(context.Context) error { return nil }

package repository

import (
	"context"
	"errors"

	"go-doctor-finder/internal/converter"
	"go-doctor-finder/internal/delivery/dto"
	"go-doctor-finder/internal/domain/entity"
	domainRepo "go-doctor-finder/internal/domain/repository"
	"go-doctor-finder/internal/infrastructure/upstream"

	"github.com/sirupsen/logrus"
)

// RecordFetcher returns the raw upstream records.
type RecordFetcher interface {
	FetchRecords(ctx context.Context) ([]dto.DoctorRecord, error)
}

type doctorRepository struct {
	fetcher RecordFetcher
	log     *logrus.Logger
}

func NewDoctorRepository(fetcher RecordFetcher, log *logrus.Logger) domainRepo.DoctorRepository {
	return &doctorRepository{
		fetcher: fetcher,
		log:     log,
	}
}

func (r *doctorRepository) FetchAll(ctx context.Context) ([]entity.Doctor, error) {
	records, err := r.fetcher.FetchRecords(ctx)
	if err != nil {
		r.log.Warnf("Failed to fetch doctors: %+v", err)
		var fetchErr *entity.FetchError
		if errors.As(err, &fetchErr) {
			return nil, fetchErr
		}
		return nil, &entity.FetchError{Message: upstream.FetchFailedMessage, Err: err}
	}

	doctors := converter.DoctorRecordsToEntities(records)
	if dropped := len(records) - len(doctors); dropped > 0 {
		r.log.Warnf("Dropped %d upstream records with a duplicate id", dropped)
	}
	return doctors, nil
}

package usecase

import (
	"context"
	"errors"
	"time"

	"go-doctor-finder/internal/converter"
	"go-doctor-finder/internal/delivery/dto"
	"go-doctor-finder/internal/domain/entity"
	"go-doctor-finder/internal/finder"
	"go-doctor-finder/internal/infrastructure/metrics"
	"go-doctor-finder/internal/urlstate"

	"github.com/sirupsen/logrus"
)

var (
	// ErrDoctorsLoading is returned when the caller stopped waiting while the
	// doctor list was still being fetched.
	ErrDoctorsLoading = errors.New("doctors are still loading")
)

// DoctorSource serves the fetched doctor list.
type DoctorSource interface {
	Get(ctx context.Context) ([]entity.Doctor, error)
	Refresh(ctx context.Context) ([]entity.Doctor, error)
	// Cached returns the loaded list without waiting for a load.
	Cached() ([]entity.Doctor, bool)
	Loading() bool
}

// Listing is one derived view of the doctor list.
type Listing struct {
	State       entity.FilterState
	Doctors     []entity.Doctor
	Specialties []string
	Summary     string
}

type DoctorUsecase interface {
	List(ctx context.Context, state entity.FilterState) (*Listing, error)
	Search(ctx context.Context, state entity.FilterState) (*dto.DoctorListResponse, error)
	Specialties(ctx context.Context) (*dto.SpecialtyListResponse, error)
	Suggest(ctx context.Context, req *dto.SuggestionRequest) ([]dto.SuggestionResponse, error)
	Refresh(ctx context.Context) (*dto.RefreshResponse, error)
}

type doctorUsecase struct {
	source  DoctorSource
	log     *logrus.Logger
	metrics *metrics.Metrics
}

func NewDoctorUsecase(source DoctorSource, log *logrus.Logger, m *metrics.Metrics) DoctorUsecase {
	return &doctorUsecase{
		source:  source,
		log:     log,
		metrics: m,
	}
}

func (u *doctorUsecase) doctors(ctx context.Context) ([]entity.Doctor, error) {
	doctors, err := u.source.Get(ctx)
	if err == nil {
		return doctors, nil
	}
	var fetchErr *entity.FetchError
	if errors.As(err, &fetchErr) || !errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	// The caller's own deadline ran out first. The load may have settled
	// since, so take whatever it left in the cache.
	if ctx.Err() != nil {
		if doctors, ok := u.source.Cached(); ok {
			return doctors, nil
		}
		return nil, ErrDoctorsLoading
	}
	if u.source.Loading() {
		return nil, ErrDoctorsLoading
	}
	return nil, err
}

func (u *doctorUsecase) List(ctx context.Context, state entity.FilterState) (*Listing, error) {
	all, err := u.doctors(ctx)
	if err != nil {
		if !errors.Is(err, ErrDoctorsLoading) {
			u.log.Warnf("Failed to get doctors: %+v", err)
		}
		return nil, err
	}

	start := time.Now()
	visible := finder.Derive(all, state)
	u.metrics.DeriveDuration.Observe(time.Since(start).Seconds())

	return &Listing{
		State:       state,
		Doctors:     visible,
		Specialties: finder.SpecialtyNames(all),
		Summary:     finder.Summary(state),
	}, nil
}

func (u *doctorUsecase) Search(ctx context.Context, state entity.FilterState) (*dto.DoctorListResponse, error) {
	listing, err := u.List(ctx, state)
	if err != nil {
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(listing.Doctors),
		Total:   len(listing.Doctors),
		Filters: listing.State,
		Query:   urlstate.Encode(listing.State),
		Summary: listing.Summary,
	}, nil
}

func (u *doctorUsecase) Specialties(ctx context.Context) (*dto.SpecialtyListResponse, error) {
	all, err := u.doctors(ctx)
	if err != nil {
		return nil, err
	}

	names := finder.SpecialtyNames(all)
	return &dto.SpecialtyListResponse{
		Specialties: names,
		Total:       len(names),
	}, nil
}

func (u *doctorUsecase) Suggest(ctx context.Context, req *dto.SuggestionRequest) ([]dto.SuggestionResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = finder.DefaultSuggestionLimit
	}
	if len([]rune(req.Query)) < finder.MinSuggestionLength {
		return []dto.SuggestionResponse{}, nil
	}

	all, err := u.doctors(ctx)
	if err != nil {
		return nil, err
	}

	return converter.DoctorsToSuggestions(finder.Suggest(all, req.Query, limit)), nil
}

func (u *doctorUsecase) Refresh(ctx context.Context) (*dto.RefreshResponse, error) {
	doctors, err := u.source.Refresh(ctx)
	if err != nil {
		u.log.Warnf("Failed to refresh doctors: %+v", err)
		return nil, err
	}

	u.log.Infof("Doctor list refreshed: %d doctors", len(doctors))
	return &dto.RefreshResponse{Total: len(doctors)}, nil
}

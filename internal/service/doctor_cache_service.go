package service

import (
	"context"
	"sync"
	"time"

	"go-doctor-finder/internal/domain/entity"
	"go-doctor-finder/internal/domain/repository"
	"go-doctor-finder/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// The whole list is fetched and cached as one unit. Refreshes fly under
// their own key so they never join a load that may answer from the snapshot.
const (
	doctorsCacheKey   = "doctors"
	doctorsRefreshKey = "doctors:refresh"
)

// snapshotTimeout bounds redis calls made on behalf of a fetch.
const snapshotTimeout = 2 * time.Second

// DoctorCacheService loads the doctor list once and serves it from memory
// until Refresh is called.
//
// Concurrent callers share one in-flight load: the upstream is hit at most
// once per load and every caller sees the same normalized slice. The load
// itself is detached from the caller's context, so a caller that gives up
// early does not cancel it for the others.
//
// Lookup order: memory, then the redis snapshot, then the upstream. Refresh
// bumps a generation counter; a load started before it never stores its
// result.
type DoctorCacheService struct {
	repo     repository.DoctorRepository
	snapshot repository.DoctorSnapshotRepository
	log      *logrus.Logger
	metrics  *metrics.Metrics

	group singleflight.Group

	mu         sync.RWMutex
	doctors    []entity.Doctor
	loaded     bool
	loading    int
	generation uint64
}

func NewDoctorCacheService(
	repo repository.DoctorRepository,
	snapshot repository.DoctorSnapshotRepository,
	log *logrus.Logger,
	m *metrics.Metrics,
) *DoctorCacheService {
	return &DoctorCacheService{
		repo:     repo,
		snapshot: snapshot,
		log:      log,
		metrics:  m,
	}
}

// Get returns the cached list, loading it first if needed. It returns
// ctx.Err() if ctx ends while the load is still in flight; the load keeps
// going and a later Get picks up its result.
func (s *DoctorCacheService) Get(ctx context.Context) ([]entity.Doctor, error) {
	if doctors, ok := s.cached(); ok {
		s.metrics.CacheLookups.WithLabelValues(metrics.SourceMemory).Inc()
		return doctors, nil
	}
	return s.load(ctx, true)
}

// Refresh drops the cached list (memory and snapshot) and loads it again
// from the upstream. Concurrent refreshes share one upstream request; a Get
// already in flight is not joined.
func (s *DoctorCacheService) Refresh(ctx context.Context) ([]entity.Doctor, error) {
	s.mu.Lock()
	s.doctors = nil
	s.loaded = false
	s.generation++
	s.mu.Unlock()
	s.metrics.DoctorsLoaded.Set(0)

	if err := s.snapshot.Delete(ctx); err != nil {
		s.log.Warnf("Failed to delete doctor snapshot: %+v", err)
	}
	return s.load(ctx, false)
}

// Cached returns the list in memory, if any, without loading.
func (s *DoctorCacheService) Cached() ([]entity.Doctor, bool) {
	return s.cached()
}

// Loading reports whether a load is in flight.
func (s *DoctorCacheService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

func (s *DoctorCacheService) cached() ([]entity.Doctor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doctors, s.loaded
}

func (s *DoctorCacheService) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *DoctorCacheService) load(ctx context.Context, useSnapshot bool) ([]entity.Doctor, error) {
	key := doctorsCacheKey
	if !useSnapshot {
		key = doctorsRefreshKey
	}
	ch := s.group.DoChan(key, func() (interface{}, error) {
		s.setLoading(1)
		defer s.setLoading(-1)
		return s.fetch(context.WithoutCancel(ctx), useSnapshot)
	})

	select {
	case res := <-ch:
		if res.Shared {
			s.metrics.CacheLookups.WithLabelValues(metrics.SourceShared).Inc()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]entity.Doctor), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *DoctorCacheService) fetch(ctx context.Context, useSnapshot bool) ([]entity.Doctor, error) {
	generation := s.currentGeneration()
	if useSnapshot {
		if doctors, ok := s.cached(); ok {
			return doctors, nil
		}
		if doctors, ok := s.loadSnapshot(ctx); ok {
			if s.storeIfCurrent(generation, doctors) {
				s.metrics.CacheLookups.WithLabelValues(metrics.SourceSnapshot).Inc()
				return doctors, nil
			}
			// A refresh started while the snapshot was read.
			return s.afterRefresh(ctx)
		}
	}

	start := time.Now()
	doctors, err := s.repo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.CacheLookups.WithLabelValues(metrics.SourceUpstream).Inc()
	s.log.Infof("Loaded %d doctors from upstream in %v", len(doctors), time.Since(start))

	if !useSnapshot {
		s.store(doctors)
	} else if !s.storeIfCurrent(generation, doctors) {
		return s.afterRefresh(ctx)
	}
	s.saveSnapshot(ctx, doctors)
	return doctors, nil
}

// afterRefresh answers a load that was overtaken by Refresh with the
// refreshed list.
func (s *DoctorCacheService) afterRefresh(ctx context.Context) ([]entity.Doctor, error) {
	if doctors, ok := s.cached(); ok {
		return doctors, nil
	}
	return s.load(ctx, false)
}

func (s *DoctorCacheService) loadSnapshot(ctx context.Context) ([]entity.Doctor, bool) {
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	doctors, ok, err := s.snapshot.Load(ctx)
	if err != nil {
		s.log.Warnf("Failed to load doctor snapshot: %+v", err)
		return nil, false
	}
	return doctors, ok
}

func (s *DoctorCacheService) saveSnapshot(ctx context.Context, doctors []entity.Doctor) {
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	if err := s.snapshot.Save(ctx, doctors); err != nil {
		s.log.Warnf("Failed to save doctor snapshot: %+v", err)
	}
}

func (s *DoctorCacheService) store(doctors []entity.Doctor) {
	s.mu.Lock()
	s.doctors = doctors
	s.loaded = true
	s.mu.Unlock()
	s.metrics.DoctorsLoaded.Set(float64(len(doctors)))
}

// storeIfCurrent keeps doctors unless Refresh ran since generation was read.
func (s *DoctorCacheService) storeIfCurrent(generation uint64, doctors []entity.Doctor) bool {
	s.mu.Lock()
	current := s.generation == generation
	if current {
		s.doctors = doctors
		s.loaded = true
	}
	s.mu.Unlock()
	if current {
		s.metrics.DoctorsLoaded.Set(float64(len(doctors)))
	}
	return current
}

func (s *DoctorCacheService) setLoading(delta int) {
	s.mu.Lock()
	s.loading += delta
	s.mu.Unlock()
}

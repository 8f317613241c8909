package repository_test

import (
	"context"
	"testing"
	"time"

	"go-doctor-finder/internal/domain/entity"
	"go-doctor-finder/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestDoctorSnapshotRepository_RoundTrip(t *testing.T) {
	t.Parallel()

	mr, client := newRedis(t)
	repo := repository.NewDoctorSnapshotRepository(client, time.Minute)
	ctx := context.Background()

	_, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	doctors := []entity.Doctor{
		{ID: "1", Name: "Dr. One", Specialties: []string{"Dentist"}, Fees: 500, Rating: 4.5},
		{ID: "2", Name: "Dr. Two", Specialties: []string{}},
	}
	require.NoError(t, repo.Save(ctx, doctors))
	assert.Equal(t, time.Minute, mr.TTL("doctorfinder:doctors"))

	got, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, doctors, got)

	require.NoError(t, repo.Delete(ctx))
	_, ok, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDoctorSnapshotRepository_Expires(t *testing.T) {
	t.Parallel()

	mr, client := newRedis(t)
	repo := repository.NewDoctorSnapshotRepository(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, []entity.Doctor{{ID: "1", Specialties: []string{}}}))
	mr.FastForward(2 * time.Minute)

	_, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDoctorSnapshotRepository_CorruptValue(t *testing.T) {
	t.Parallel()

	mr, client := newRedis(t)
	require.NoError(t, mr.Set("doctorfinder:doctors", "not json"))
	repo := repository.NewDoctorSnapshotRepository(client, 0)

	_, ok, err := repo.Load(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestDoctorSnapshotRepository_NilClient(t *testing.T) {
	t.Parallel()

	repo := repository.NewDoctorSnapshotRepository(nil, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, []entity.Doctor{{ID: "1"}}))
	_, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, repo.Delete(ctx))
}

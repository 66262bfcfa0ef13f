package locker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRedisRepository struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Duration
}

func newFakeRedisRepository() *fakeRedisRepository {
	return &fakeRedisRepository{values: map[string]string{}, expires: map[string]time.Duration{}}
}

func (f *fakeRedisRepository) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return nil
}

func (f *fakeRedisRepository) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key], nil
}

func (f *fakeRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expires[key] = exp
	return nil
}

func (f *fakeRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.values[key]; exists {
		return false, nil
	}
	f.values[key] = "\"" + value.(string) + "\""
	f.expires[key] = exp
	return true, nil
}

func TestLockService_TryLockIsExclusive(t *testing.T) {
	svc := NewLockService(newFakeRedisRepository(), zap.NewNop())
	ctx := context.Background()

	acquired, token, err := svc.TryLock(ctx, "audit", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.NotEmpty(t, token)

	acquired, _, err = svc.TryLock(ctx, "audit", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)
}

func TestLockService_UnlockRequiresOwnership(t *testing.T) {
	repo := newFakeRedisRepository()
	svc := NewLockService(repo, zap.NewNop())
	ctx := context.Background()

	_, token, err := svc.TryLock(ctx, "audit", time.Minute)
	require.NoError(t, err)

	assert.Error(t, svc.Unlock(ctx, "audit", "someone-else"))
	require.NoError(t, svc.Unlock(ctx, "audit", token))

	value, _ := repo.Get(ctx, "audit")
	assert.Empty(t, value)

	// releasing a lock that is already gone is not an error
	assert.NoError(t, svc.Unlock(ctx, "audit", token))
}

func TestLockService_Refresh(t *testing.T) {
	repo := newFakeRedisRepository()
	svc := NewLockService(repo, zap.NewNop())
	ctx := context.Background()

	_, token, err := svc.TryLock(ctx, "audit", time.Minute)
	require.NoError(t, err)

	require.NoError(t, svc.Refresh(ctx, "audit", token, 2*time.Minute))
	assert.Equal(t, 2*time.Minute, repo.expires["audit"])

	require.NoError(t, svc.Unlock(ctx, "audit", token))
	assert.Error(t, svc.Refresh(ctx, "audit", token, time.Minute))
}

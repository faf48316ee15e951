package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-route-agent/domain"
)

func TestRedisCache_SetGetExpire(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cache := NewRedisCache(mr.Addr(), "", 0, time.Minute)
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.Ping(ctx))

	_, ok := cache.Get(ctx, "affordability:abc")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "affordability:abc", `{"score":80}`))
	val, ok := cache.Get(ctx, "affordability:abc")
	require.True(t, ok)
	assert.Equal(t, `{"score":80}`, val)
	assert.True(t, mr.Exists("home-route:affordability:abc"))

	mr.FastForward(2 * time.Minute)
	_, ok = cache.Get(ctx, "affordability:abc")
	assert.False(t, ok)
}

func TestRedisCache_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	cache := NewRedisCache(addr, "", 0, time.Minute)
	defer cache.Close()

	_, ok := cache.Get(context.Background(), "k")
	assert.False(t, ok)
	assert.Error(t, cache.Set(context.Background(), "k", "v"))
}

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)
	require.NoError(t, cache.Set(ctx, "k", "v"))
	val, ok := cache.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", val)
	assert.Equal(t, 1, cache.Len())
}

func TestLoanRepositoryMemory(t *testing.T) {
	repo := NewLoanRepositoryMemory()
	in := domain.LoanInput{Amount: 1200, InterestRate: 0, TermMonths: 12}
	out := domain.LoanResult{MonthlyPayment: 100, TotalPayment: 1200}

	require.NoError(t, repo.Save(in, out))
	records := repo.All()
	require.Len(t, records, 1)
	assert.Equal(t, in, records[0].Input)
	assert.Equal(t, out, records[0].Result)
}

package localstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_booking/internal/adapters/localstore"
	"travel_booking/internal/domain"
)

func TestFileSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	f, err := localstore.Open(path)
	require.NoError(t, err)
	_, ok, err := f.Get(ctx, domain.KeyAuthToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.Set(ctx, domain.KeyAuthToken, "tok"))
	require.NoError(t, f.Set(ctx, domain.KeyUser, `{"id":"1"}`))

	g, err := localstore.Open(path)
	require.NoError(t, err)
	v, ok, err := g.Get(ctx, domain.KeyAuthToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	require.NoError(t, g.Del(ctx, domain.KeyAuthToken))
	require.NoError(t, g.Del(ctx, "never-set"))
	_, ok, _ = f.Get(ctx, domain.KeyAuthToken)
	assert.False(t, ok)
	v, _, _ = f.Get(ctx, domain.KeyUser)
	assert.Equal(t, `{"id":"1"}`, v)
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := localstore.NewMemory()
	require.NoError(t, m.Set(ctx, "k", "v"))
	v, ok, _ := m.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	require.NoError(t, m.Del(ctx, "k"))
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

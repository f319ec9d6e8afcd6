package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect("not-a-redis-url")
	assert.Error(t, err)
}

func TestStore_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := Connect("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}

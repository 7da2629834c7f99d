package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, st)

	st, err = Open(ctx, Options{Backend: BackendBadger, BadgerPath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &Badger{}, st)
	require.NoError(t, st.Close())

	_, err = Open(ctx, Options{Backend: "sqlite"})
	assert.Error(t, err)

	assert.True(t, Options{Backend: BackendRedis}.Persistent())
	assert.False(t, Options{Backend: BackendMemory}.Persistent())
}

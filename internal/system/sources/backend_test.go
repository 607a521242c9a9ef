package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigreer/diskinfo/internal/system"
)

func TestForPlatformLinux(t *testing.T) {
	backend, err := ForPlatform(context.Background(), PlatformLinux)
	require.NoError(t, err)

	l, ok := backend.(*Linux)
	require.True(t, ok)
	assert.Equal(t, "/", l.Root)
}

func TestForPlatformUnknown(t *testing.T) {
	backend, err := ForPlatform(context.Background(), "plan9")
	assert.Nil(t, backend)
	assert.ErrorIs(t, err, system.ErrUnknownPlatform)
	assert.Contains(t, err.Error(), "plan9")
}

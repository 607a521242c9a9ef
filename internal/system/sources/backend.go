// Package sources implements the platform backends that feed system.Build.
package sources

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sigreer/diskinfo/internal/system"
)

// Platform identifiers accepted by ForPlatform
const (
	PlatformLinux   = "linux"
	PlatformWindows = "windows"
)

// Current returns the platform identifier of the running binary
func Current() string {
	return runtime.GOOS
}

// ForPlatform returns the backend for the given platform identifier. The
// context bounds any external command the backend runs.
func ForPlatform(ctx context.Context, id string) (system.Backend, error) {
	switch id {
	case PlatformLinux:
		return NewLinux(ctx, "/"), nil
	case PlatformWindows:
		return newWindows()
	default:
		return nil, fmt.Errorf("%w: %q", system.ErrUnknownPlatform, id)
	}
}

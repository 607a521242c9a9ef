//go:build !windows

package sources

import (
	"fmt"

	"github.com/sigreer/diskinfo/internal/system"
)

func newWindows() (system.Backend, error) {
	return nil, fmt.Errorf("%w: the windows backend needs a windows build", system.ErrUnknownPlatform)
}

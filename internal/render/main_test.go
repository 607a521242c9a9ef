package render

import (
	"os"
	"testing"

	"github.com/sigreer/diskinfo/internal/logger"
)

func TestMain(m *testing.M) {
	logger.ConfigureTestLogging()
	os.Exit(m.Run())
}

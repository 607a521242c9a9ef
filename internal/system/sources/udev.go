package sources

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sigreer/diskinfo/internal/system"
)

// udevProps holds the E: properties of a udev database entry
type udevProps map[string]string

// readUdev reads /run/udev/data/b<major>:<minor>. A missing entry yields an
// empty set; udev is optional on minimal systems.
func readUdev(dataDir, majMin string) udevProps {
	props := make(udevProps)

	file, err := os.Open(filepath.Join(dataDir, "b"+majMin))
	if err != nil {
		return props
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "E:") {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(line, "E:"), "=")
		if !ok {
			continue
		}
		props[key] = value
	}
	return props
}

func (u udevProps) get(key string) *string {
	return system.String(strings.TrimSpace(u[key]))
}

func (u udevProps) getInt(key string) *int64 {
	v, ok := u[key]
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 0, 64)
	if err != nil {
		return nil
	}
	return &n
}

package sources

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sigreer/diskinfo/internal/system"
)

// readAttr reads a sysfs attribute, nil when missing or blank
func readAttr(dir, name string) *string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil
	}
	value := strings.Map(func(r rune) rune {
		if r >= 32 && r < 127 {
			return r
		}
		return -1
	}, strings.TrimSpace(string(data)))
	return system.String(strings.TrimSpace(value))
}

// readIntAttr reads a numeric sysfs attribute, nil when missing or not a number
func readIntAttr(dir, name string) *int64 {
	s := readAttr(dir, name)
	if s == nil {
		return nil
	}
	v, err := strconv.ParseInt(*s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

func firstString(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstInt(values ...*int64) *int64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

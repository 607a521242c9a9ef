package sources

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// linkIndex maps kernel device paths to their filesystem label and UUID
type linkIndex struct {
	labels map[string]string
	uuids  map[string]string
}

func (l *Linux) diskLinks() linkIndex {
	return linkIndex{
		labels: l.readSymlinks("/dev/disk/by-label"),
		uuids:  l.readSymlinks("/dev/disk/by-uuid"),
	}
}

// readSymlinks reads a /dev/disk/by-* directory and returns device path ->
// unescaped link name. Targets are resolved lexically so the device nodes
// themselves need not exist below the root.
func (l *Linux) readSymlinks(dir string) map[string]string {
	result := make(map[string]string)

	entries, err := os.ReadDir(l.path(dir))
	if err != nil {
		return result
	}

	for _, entry := range entries {
		if entry.Type()&os.ModeSymlink == 0 {
			continue
		}

		target, err := os.Readlink(l.path(filepath.Join(dir, entry.Name())))
		if err != nil {
			continue
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}

		result[filepath.Clean(target)] = unescapeLink(entry.Name())
	}

	return result
}

// unescapeLink decodes the \xHH escapes udev writes into link names
func unescapeLink(name string) string {
	if !strings.Contains(name, `\x`) {
		return name
	}
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		if name[i] == '\\' && i+3 < len(name) && name[i+1] == 'x' {
			if v, err := strconv.ParseUint(name[i+2:i+4], 16, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3
				continue
			}
		}
		b.WriteByte(name[i])
	}
	return b.String()
}

package sources

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

var dfArgs = []string{"--output=source,fstype,size,avail,target", "--local", "--block-size=1"}

// source, fstype, size, avail, target; the header never matches
var dfLine = regexp.MustCompile(`^(.*\S)\s+(\S+)\s+(\d+)\s+(\d+)\s+(/.*)$`)

// mount is one filesystem reported by df
type mount struct {
	source string
	fstype string
	size   int64
	avail  int64
	target string
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// mounts runs df once. A df that cannot be started is fatal; a non-zero exit
// with output (an unreadable mount point) only loses that mount.
func (l *Linux) mounts() ([]mount, error) {
	ctx := l.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	run := l.Run
	if run == nil {
		run = execRunner
	}

	out, err := run(ctx, "df", dfArgs...)
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || len(out) == 0 {
			return nil, fmt.Errorf("run df: %w", err)
		}
		log.Debug().Err(err).Msg("df reported errors, using partial output")
	}

	return parseDf(string(out)), nil
}

func parseDf(out string) []mount {
	var mounts []mount
	for _, line := range strings.Split(out, "\n") {
		m := dfLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		size, err1 := strconv.ParseInt(m[3], 10, 64)
		avail, err2 := strconv.ParseInt(m[4], 10, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		mounts = append(mounts, mount{
			source: m[1],
			fstype: m[2],
			size:   size,
			avail:  avail,
			target: m[5],
		})
	}
	return mounts
}

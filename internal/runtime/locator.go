package runtime

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// Locator finds executables on the search path and probes them for version
// strings. The zero value is usable; ProbeTimeout defaults to 5 seconds.
type Locator struct {
	// ProbeTimeout bounds a single version-probe invocation.
	ProbeTimeout time.Duration
}

// Locate resolves name on the host search path and returns the absolute
// path of the first match. A failed lookup reports ok=false; at this layer
// "not installed" and "lookup failed" are the same outcome.
func (l *Locator) Locate(name string) (string, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return "", false
	}
	return path, true
}

// ProbeVersion invokes the executable at path with the given arguments and
// returns the first trimmed line of its stdout. Any spawn failure, non-zero
// exit, or empty output reports ok=false; callers cannot distinguish a
// broken binary from a missing one, and treat both as "not detected".
func (l *Locator) ProbeVersion(ctx context.Context, path string, args []string) (string, bool) {
	timeout := l.ProbeTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(cctx, path, args...).Output()
	if err != nil {
		return "", false
	}

	line, _, _ := strings.Cut(string(out), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	return line, true
}

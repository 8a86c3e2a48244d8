package runtime

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// DockerAPI is the slice of the Docker SDK client this core uses. Keeping it
// narrow lets tests substitute a fake without a daemon.
type DockerAPI interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	ContainerInspect(ctx context.Context, containerID string) (container.InspectResponse, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
}

// NewDockerClient creates a Docker SDK client from the standard environment
// variables (DOCKER_HOST, etc.).
func NewDockerClient() (*client.Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}
	return cli, nil
}

// pseudoHandle derives a deterministic handle for a container from its
// reference. It is not an OS pid: signal semantics do not apply, and callers
// must route stop requests through the Docker backend instead.
func pseudoHandle(containerRef string) int {
	var h uint32
	for _, b := range []byte(containerRef) {
		h += uint32(b)
	}
	return int(h)
}

// startDocker asks the daemon to start the referenced container and records
// a pseudo-handle for it. No output capture is wired for containers.
func (m *Manager) startDocker(ctx context.Context, ref Ref) (int, error) {
	if ref.Container == "" {
		return 0, fmt.Errorf("%w: missing container reference", ErrInvalidID)
	}
	if m.docker == nil {
		return 0, fmt.Errorf("docker start %s: no docker client configured", ref.Container)
	}

	if err := m.docker.ContainerStart(ctx, ref.Container, container.StartOptions{}); err != nil {
		return 0, fmt.Errorf("docker start %s: %w", ref.Container, err)
	}

	pid := pseudoHandle(ref.Container)
	m.registry.Insert(ProcessRecord{
		PID:    pid,
		ToolID: ref.ID,
		Status: ProcessRunning,
	}, nil)
	return pid, nil
}

// stopDocker asks the daemon to stop the referenced container.
func (m *Manager) stopDocker(ctx context.Context, ref Ref) error {
	if ref.Container == "" {
		return fmt.Errorf("%w: missing container reference", ErrInvalidID)
	}
	if m.docker == nil {
		return fmt.Errorf("docker stop %s: no docker client configured", ref.Container)
	}

	timeout := 10
	if err := m.docker.ContainerStop(ctx, ref.Container, container.StopOptions{Timeout: &timeout}); err != nil {
		return fmt.Errorf("docker stop %s: %w", ref.Container, err)
	}
	return nil
}

// dockerStatus maps the container's inspected state onto the runtime status
// vocabulary: running stays running, every other daemon state reads as
// stopped.
func (m *Manager) dockerStatus(ctx context.Context, ref Ref) (Status, error) {
	if ref.Container == "" {
		return Status{}, fmt.Errorf("%w: missing container reference", ErrInvalidID)
	}
	if m.docker == nil {
		return Status{}, fmt.Errorf("docker inspect %s: no docker client configured", ref.Container)
	}

	resp, err := m.docker.ContainerInspect(ctx, ref.Container)
	if err != nil {
		return Status{}, fmt.Errorf("docker inspect %s: %w", ref.Container, err)
	}

	state := StateStopped
	if resp.State != nil && resp.State.Running {
		state = StateRunning
	}
	return Status{State: state}, nil
}

// dockerUsage shells out to `docker stats` for a one-shot snapshot. The
// preformatted columns are enough for an advisory estimate; the SDK stats
// endpoint exposes raw cgroup counters that would need platform-specific
// math for the same answer.
func (m *Manager) dockerUsage(ctx context.Context, ref Ref) (Usage, error) {
	if ref.Container == "" {
		return Usage{}, fmt.Errorf("%w: missing container reference", ErrInvalidID)
	}

	out, err := exec.CommandContext(ctx, m.dockerBin,
		"stats", "--no-stream", "--format", "{{.MemUsage}}|{{.CPUPerc}}", ref.Container,
	).Output()
	if err != nil {
		return Usage{}, fmt.Errorf("docker stats %s: %w", ref.Container, err)
	}

	usage, ok := parseDockerStats(strings.TrimSpace(string(out)))
	if !ok {
		return Usage{}, fmt.Errorf("docker stats %s: unexpected output %q", ref.Container, string(out))
	}
	return usage, nil
}

// parseDockerStats parses a "MemUsage|CPUPerc" line, e.g.
// "123.4MiB / 2GiB|12.34%".
func parseDockerStats(line string) (Usage, bool) {
	memPart, cpuPart, ok := strings.Cut(line, "|")
	if !ok {
		return Usage{}, false
	}

	memStr, _, _ := strings.Cut(memPart, "/")
	memoryMB := ParseMemoryString(strings.TrimSpace(memStr))

	cpuStr := strings.TrimSuffix(strings.TrimSpace(cpuPart), "%")
	cpuPercent, err := strconv.ParseFloat(cpuStr, 64)
	if err != nil || cpuPercent < 0 {
		cpuPercent = 0
	}

	return Usage{MemoryMB: memoryMB, CPUPercent: cpuPercent}, true
}

// ParseMemoryString converts a docker memory figure like "123.4MiB" or
// "1.5GiB" to megabytes. Estimation is advisory, so anything unparsable
// degrades to zero rather than an error.
func ParseMemoryString(s string) float64 {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(s, "GiB"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "GiB"), 64)
		if err != nil || v < 0 {
			return 0
		}
		return v * 1024
	case strings.HasSuffix(s, "MiB"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "MiB"), 64)
		if err != nil || v < 0 {
			return 0
		}
		return v
	case strings.HasSuffix(s, "KiB"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "KiB"), 64)
		if err != nil || v < 0 {
			return 0
		}
		return v / 1024
	default:
		return 0
	}
}

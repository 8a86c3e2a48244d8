package runtime

import (
	"context"
	"errors"
	"testing"

	"github.com/docker/docker/api/types/container"
)

// fakeDocker implements DockerAPI for testing.
type fakeDocker struct {
	ListFunc    func(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	InspectFunc func(ctx context.Context, containerID string) (container.InspectResponse, error)
	StartFunc   func(ctx context.Context, containerID string, options container.StartOptions) error
	StopFunc    func(ctx context.Context, containerID string, options container.StopOptions) error
}

func (f *fakeDocker) ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, options)
	}
	return nil, nil
}

func (f *fakeDocker) ContainerInspect(ctx context.Context, containerID string) (container.InspectResponse, error) {
	if f.InspectFunc != nil {
		return f.InspectFunc(ctx, containerID)
	}
	return container.InspectResponse{}, nil
}

func (f *fakeDocker) ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error {
	if f.StartFunc != nil {
		return f.StartFunc(ctx, containerID, options)
	}
	return nil
}

func (f *fakeDocker) ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error {
	if f.StopFunc != nil {
		return f.StopFunc(ctx, containerID, options)
	}
	return nil
}

func newTestManager(docker DockerAPI) *Manager {
	return NewManager(NewRegistry(), NewOutputBuffer(), docker, ManagerConfig{}, nil)
}

func TestParseMemoryString(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"123.4MiB", 123.4},
		{"1.5GiB", 1536.0},
		{"512KiB", 0.5},
		{"garbage", 0.0},
		{"", 0.0},
		{"12XB", 0.0},
	}
	for _, c := range cases {
		if got := ParseMemoryString(c.in); got != c.want {
			t.Errorf("ParseMemoryString(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseDockerStats(t *testing.T) {
	usage, ok := parseDockerStats("123.4MiB / 2GiB|12.34%")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if usage.MemoryMB != 123.4 {
		t.Errorf("expected 123.4 MB, got %v", usage.MemoryMB)
	}
	if usage.CPUPercent != 12.34 {
		t.Errorf("expected 12.34%%, got %v", usage.CPUPercent)
	}

	if _, ok := parseDockerStats("no separator here"); ok {
		t.Error("expected parse to fail without separator")
	}

	// Garbage degrades to zero, never an error.
	usage, ok = parseDockerStats("garbage / stuff|not-a-number%")
	if !ok {
		t.Fatal("expected parse to tolerate garbage fields")
	}
	if usage.MemoryMB != 0 || usage.CPUPercent != 0 {
		t.Errorf("expected zero usage, got %+v", usage)
	}
}

func TestPseudoHandle_Deterministic(t *testing.T) {
	a := pseudoHandle("ab12cd")
	b := pseudoHandle("ab12cd")
	if a != b {
		t.Errorf("pseudo handle not deterministic: %d vs %d", a, b)
	}
	if a < 0 {
		t.Errorf("pseudo handle must be non-negative, got %d", a)
	}
}

func TestStartDocker_RecordsPseudoHandle(t *testing.T) {
	var started string
	fake := &fakeDocker{
		StartFunc: func(ctx context.Context, containerID string, options container.StartOptions) error {
			started = containerID
			return nil
		},
	}
	m := newTestManager(fake)

	pid, err := m.Start(context.Background(), "docker_ab12cd", "", nil, "")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if started != "ab12cd" {
		t.Errorf("expected container ab12cd to be started, got %q", started)
	}
	if pid != pseudoHandle("ab12cd") {
		t.Errorf("expected deterministic pseudo handle, got %d", pid)
	}

	rec, err := m.Record(pid)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if rec.Status != ProcessRunning {
		t.Errorf("expected Running, got %s", rec.Status)
	}
}

func TestStartDocker_MissingContainerSegment(t *testing.T) {
	m := newTestManager(&fakeDocker{})

	_, err := m.Start(context.Background(), "docker", "", nil, "")
	if !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestStartDocker_DaemonError(t *testing.T) {
	fake := &fakeDocker{
		StartFunc: func(ctx context.Context, containerID string, options container.StartOptions) error {
			return errors.New("no such container")
		},
	}
	m := newTestManager(fake)

	_, err := m.Start(context.Background(), "docker_missing", "", nil, "")
	if err == nil {
		t.Fatal("expected error from daemon")
	}
}

func TestStopDocker(t *testing.T) {
	var stopped string
	fake := &fakeDocker{
		StopFunc: func(ctx context.Context, containerID string, options container.StopOptions) error {
			stopped = containerID
			return nil
		},
	}
	m := newTestManager(fake)

	if err := m.Stop(context.Background(), "docker_ab12cd"); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if stopped != "ab12cd" {
		t.Errorf("expected ab12cd to be stopped, got %q", stopped)
	}
}

func TestDockerStatus(t *testing.T) {
	fake := &fakeDocker{
		InspectFunc: func(ctx context.Context, containerID string) (container.InspectResponse, error) {
			return container.InspectResponse{
				ContainerJSONBase: &container.ContainerJSONBase{
					State: &container.State{Running: true, Status: "running"},
				},
			}, nil
		},
	}
	m := newTestManager(fake)

	status, err := m.Status(context.Background(), "docker_ab12cd")
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.State != StateRunning {
		t.Errorf("expected running, got %s", status.State)
	}
}

func TestDockerStatus_NotRunning(t *testing.T) {
	fake := &fakeDocker{
		InspectFunc: func(ctx context.Context, containerID string) (container.InspectResponse, error) {
			return container.InspectResponse{
				ContainerJSONBase: &container.ContainerJSONBase{
					State: &container.State{Running: false, Status: "exited"},
				},
			}, nil
		},
	}
	m := newTestManager(fake)

	status, err := m.Status(context.Background(), "docker_ab12cd")
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.State != StateStopped {
		t.Errorf("expected stopped, got %s", status.State)
	}
}

func TestDockerStatus_InspectError(t *testing.T) {
	fake := &fakeDocker{
		InspectFunc: func(ctx context.Context, containerID string) (container.InspectResponse, error) {
			return container.InspectResponse{}, errors.New("daemon unreachable")
		},
	}
	m := newTestManager(fake)

	if _, err := m.Status(context.Background(), "docker_ab12cd"); err == nil {
		t.Fatal("expected inspect error to propagate")
	}
}

func TestIsAIServiceImage(t *testing.T) {
	if !IsAIServiceImage("ollama/ollama:latest") {
		t.Error("expected ollama image to classify as AI service")
	}
	if !IsAIServiceImage("ghcr.io/huggingface/Text-Generation-inference:1.0") {
		t.Error("expected classification to be case-insensitive")
	}
	if IsAIServiceImage("nginx:latest") {
		t.Error("expected nginx not to classify as AI service")
	}
}

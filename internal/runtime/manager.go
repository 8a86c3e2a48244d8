package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ManagerConfig holds the tunables for the lifecycle manager.
type ManagerConfig struct {
	OllamaPort   int
	LocalAIPort  int
	DockerBin    string
	ProbeTimeout time.Duration
	RestartDelay time.Duration
}

// Manager routes lifecycle requests to backend strategies based on the
// decoded runtime identifier. All shared state lives in the injected
// registry and output buffer; the manager itself holds only configuration
// and collaborators.
type Manager struct {
	registry *Registry
	output   *OutputBuffer
	locator  *Locator
	docker   DockerAPI

	httpClient  *http.Client
	log         *slog.Logger
	dockerBin   string
	ollamaPort  int
	localAIPort int

	restartDelay time.Duration
}

// NewManager creates a lifecycle manager. docker may be nil, in which case
// container operations report a configuration error and the container scan
// is skipped.
func NewManager(reg *Registry, out *OutputBuffer, docker DockerAPI, cfg ManagerConfig, log *slog.Logger) *Manager {
	if cfg.OllamaPort <= 0 {
		cfg.OllamaPort = 11434
	}
	if cfg.LocalAIPort <= 0 {
		cfg.LocalAIPort = 8080
	}
	if cfg.DockerBin == "" {
		cfg.DockerBin = "docker"
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 5 * time.Second
	}
	if cfg.RestartDelay <= 0 {
		cfg.RestartDelay = 1 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}

	return &Manager{
		registry:     reg,
		output:       out,
		locator:      &Locator{ProbeTimeout: cfg.ProbeTimeout},
		docker:       docker,
		httpClient:   &http.Client{Timeout: cfg.ProbeTimeout},
		log:          log,
		dockerBin:    cfg.DockerBin,
		ollamaPort:   cfg.OllamaPort,
		localAIPort:  cfg.LocalAIPort,
		restartDelay: cfg.RestartDelay,
	}
}

func (m *Manager) span(ctx context.Context, op, id string) (context.Context, trace.Span) {
	tracer := otel.Tracer("runtime-manager")
	return tracer.Start(ctx, op,
		trace.WithAttributes(attribute.String("runtime.id", id)),
	)
}

// Start launches the runtime behind the identifier. The named services
// ignore the caller-supplied executable and spawn their well-known command;
// Docker issues a container start and returns a pseudo-handle; everything
// else is a generic spawn of the given executable.
func (m *Manager) Start(ctx context.Context, id, executablePath string, args []string, workDir string) (int, error) {
	ref, err := ParseRef(id)
	if err != nil {
		return 0, err
	}

	ctx, span := m.span(ctx, "start_runtime", id)
	defer span.End()

	switch ref.Kind {
	case KindOllama, KindLocalAI:
		return m.startService(ref)
	case KindDocker:
		return m.startDocker(ctx, ref)
	default:
		return m.startExec(ref, executablePath, args, workDir)
	}
}

// Stop halts the runtime behind the identifier. Only Docker containers can
// be stopped through this path; other backends fail explicitly rather than
// pretending to succeed. This asymmetry is a known gap, kept visible on
// purpose.
func (m *Manager) Stop(ctx context.Context, id string) error {
	ref, err := ParseRef(id)
	if err != nil {
		return err
	}

	ctx, span := m.span(ctx, "stop_runtime", id)
	defer span.End()

	if ref.Kind == KindDocker {
		return m.stopDocker(ctx, ref)
	}
	return unsupportedErr("stopping", ref.RawKind)
}

// Restart stops the runtime best-effort, waits for it to settle, then
// starts it again. A stop failure is logged and swallowed so that an
// already-stopped runtime never blocks its own restart. The start phase
// gets no executable or arguments, so restart is only meaningful for the
// named services and Docker; generic executables cannot be restarted here.
func (m *Manager) Restart(ctx context.Context, id string) (int, error) {
	ctx, span := m.span(ctx, "restart_runtime", id)
	defer span.End()

	if err := m.Stop(ctx, id); err != nil {
		m.log.Warn("stop failed during restart, continuing", "runtime_id", id, "error", err)
	}

	time.Sleep(m.restartDelay)

	return m.Start(ctx, id, "", nil, "")
}

// Status probes the runtime and reports its liveness. The result is
// computed fresh on every call; nothing is cached.
func (m *Manager) Status(ctx context.Context, id string) (Status, error) {
	ref, err := ParseRef(id)
	if err != nil {
		return Status{}, err
	}

	ctx, span := m.span(ctx, "get_runtime_status", id)
	defer span.End()

	switch ref.Kind {
	case KindOllama:
		return m.ollamaStatus(ctx), nil
	case KindLocalAI:
		return m.localAIStatus(ctx), nil
	case KindDocker:
		return m.dockerStatus(ctx, ref)
	case KindPython, KindNode:
		// Interpreters are invoked on demand, not long-running services.
		return Status{State: StateStopped}, nil
	default:
		return Status{}, fmt.Errorf("unknown runtime type %q: %w", ref.RawKind, ErrUnsupported)
	}
}

// Usage estimates the runtime's resource consumption. Backends without a
// probe report zero usage rather than an error; the estimate is advisory.
func (m *Manager) Usage(ctx context.Context, id string) (Usage, error) {
	ref, err := ParseRef(id)
	if err != nil {
		return Usage{}, err
	}

	ctx, span := m.span(ctx, "estimate_resource_usage", id)
	defer span.End()

	switch ref.Kind {
	case KindOllama:
		return m.processUsage(ctx, "ollama")
	case KindLocalAI:
		return m.processUsage(ctx, "local-ai")
	case KindDocker:
		return m.dockerUsage(ctx, ref)
	default:
		return Usage{}, nil
	}
}

// SpawnTracked registers a tracked process slot for a tool session the
// caller drives itself, and returns its synthetic handle. It cannot fail.
func (m *Manager) SpawnTracked(toolID, workDir string, args []string) int {
	_ = args // reserved for the shell integration that owns the session

	pid := m.registry.nextSyntheticPID()
	m.registry.Insert(ProcessRecord{
		PID:        pid,
		ToolID:     toolID,
		WorkingDir: workDir,
		Status:     ProcessRunning,
	}, nil)
	m.output.Create(pid)
	return pid
}

// SendInput records input for a tracked process. The handle must already be
// registered.
func (m *Manager) SendInput(pid int, input string) error {
	if !m.registry.Contains(pid) {
		return fmt.Errorf("send input to %d: %w", pid, ErrNotFound)
	}
	m.output.Append(pid, fmt.Sprintf("Input: %s\n", input))
	return nil
}

// Kill stops a registered process, signalling the OS process when one is
// attached to the handle.
func (m *Manager) Kill(pid int) error {
	if err := m.registry.Kill(pid); err != nil {
		return fmt.Errorf("kill %d: %w", pid, err)
	}
	return nil
}

// Record returns the registry entry for a handle.
func (m *Manager) Record(pid int) (ProcessRecord, error) {
	rec, ok := m.registry.Get(pid)
	if !ok {
		return ProcessRecord{}, fmt.Errorf("process %d: %w", pid, ErrNotFound)
	}
	return rec, nil
}

// Output returns the full captured output for a handle. Absent handles are
// an error.
func (m *Manager) Output(pid int) (string, error) {
	text, ok := m.output.Get(pid)
	if !ok {
		return "", fmt.Errorf("output for %d: %w", pid, ErrNotFound)
	}
	return text, nil
}

// StreamOutput returns the captured output as lines. Unlike Output, an
// absent handle yields an empty slice, not an error; callers have come to
// rely on each behavior, so both are kept as-is.
func (m *Manager) StreamOutput(pid int) []string {
	return m.output.Lines(pid)
}

package runtime

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v4/process"
)

// spawnPiped starts an executable with piped stdout/stderr, registers it as
// Running, and hands both read ends to background capture goroutines. The
// readers terminate on their own when the process exits and closes its
// streams.
func (m *Manager) spawnPiped(name string, args []string, workDir, toolID string) (int, error) {
	cmd := exec.Command(name, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("start %s: %w", name, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return 0, fmt.Errorf("start %s: %w", name, err)
	}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start %s: %w", name, err)
	}

	pid := cmd.Process.Pid
	m.registry.Insert(ProcessRecord{
		PID:        pid,
		ToolID:     toolID,
		WorkingDir: workDir,
		Status:     ProcessRunning,
	}, cmd.Process)
	m.output.Create(pid)

	var readers sync.WaitGroup
	readers.Add(2)
	go func() {
		defer readers.Done()
		m.output.capture(pid, stdout)
	}()
	go func() {
		defer readers.Done()
		m.output.capture(pid, stderr)
	}()

	// Reap the child once it exits so it does not linger as a zombie.
	// Wait closes the pipe read ends, so it must not run until both
	// readers have drained their streams to EOF.
	go func() {
		readers.Wait()
		_ = cmd.Wait()
	}()

	return pid, nil
}

// serviceCommand returns the well-known launch command for a service-style
// backend.
func serviceCommand(kind Kind) (string, []string) {
	switch kind {
	case KindOllama:
		return "ollama", []string{"serve"}
	case KindLocalAI:
		return "local-ai", nil
	default:
		return "", nil
	}
}

// startService launches a named local service (ollama, local-ai) with its
// fixed arguments. Caller-supplied executable paths are not consulted; the
// service is expected to be on the search path.
func (m *Manager) startService(ref Ref) (int, error) {
	name, args := serviceCommand(ref.Kind)
	if name == "" {
		return 0, unsupportedErr("starting", ref.RawKind)
	}
	return m.spawnPiped(name, args, "", string(ref.Kind))
}

// probeHTTP issues a plain GET and classifies the outcome: any response at
// all means the service is up (2xx running, otherwise error), while a
// connection failure means it is stopped. The body is returned for callers
// that surface a version string.
func (m *Manager) probeHTTP(ctx context.Context, url string) (ok bool, reachable bool, body string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, false, ""
	}
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return false, false, ""
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return resp.StatusCode >= 200 && resp.StatusCode < 300, true, strings.TrimSpace(string(raw))
}

// ollamaStatus probes the Ollama version endpoint on its default port.
func (m *Manager) ollamaStatus(ctx context.Context) Status {
	url := fmt.Sprintf("http://localhost:%d/api/version", m.ollamaPort)
	ok, reachable, body := m.probeHTTP(ctx, url)
	switch {
	case ok:
		return Status{State: StateRunning, Version: body, Port: m.ollamaPort}
	case reachable:
		return Status{State: StateError, Port: m.ollamaPort, Error: "Ollama API returned error"}
	default:
		return Status{State: StateStopped, Port: m.ollamaPort}
	}
}

// localAIStatus probes the LocalAI readiness endpoint on its default port.
func (m *Manager) localAIStatus(ctx context.Context) Status {
	url := fmt.Sprintf("http://localhost:%d/readyz", m.localAIPort)
	ok, reachable, _ := m.probeHTTP(ctx, url)
	switch {
	case ok:
		return Status{State: StateRunning, Port: m.localAIPort}
	case reachable:
		return Status{State: StateError, Port: m.localAIPort, Error: "LocalAI API returned error"}
	default:
		return Status{State: StateStopped, Port: m.localAIPort}
	}
}

// processUsage sums memory and CPU across every process whose name contains
// the given substring. No matching process is not an error; the estimate is
// simply zero.
func (m *Manager) processUsage(ctx context.Context, nameSubstr string) (Usage, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return Usage{}, fmt.Errorf("list processes: %w", err)
	}

	needle := strings.ToLower(nameSubstr)
	var usage Usage
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || !strings.Contains(strings.ToLower(name), needle) {
			continue
		}
		if mem, err := p.MemoryInfoWithContext(ctx); err == nil && mem != nil {
			usage.MemoryMB += float64(mem.RSS) / 1024.0 / 1024.0
		}
		if cpu, err := p.CPUPercentWithContext(ctx); err == nil && cpu > 0 {
			usage.CPUPercent += cpu
		}
	}
	return usage, nil
}

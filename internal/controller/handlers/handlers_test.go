package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"runtimeplane/internal/runtime"
)

// mockManager implements Manager with per-test hooks.
type mockManager struct {
	detectResp []runtime.DetectedRuntime

	startResp int
	startErr  error
	stopErr   error

	restartResp int
	restartErr  error

	statusResp runtime.Status
	statusErr  error

	usageResp runtime.Usage
	usageErr  error

	validateResp runtime.Info

	spawnResp    int
	sendInputErr error
	killErr      error

	outputResp string
	outputErr  error
	streamResp []string

	// Spies
	capturedID      string
	capturedExe     string
	capturedArgs    []string
	capturedWorkDir string
	capturedToolID  string
	capturedPID     int
	capturedInput   string
}

func (m *mockManager) DetectAll(ctx context.Context) []runtime.DetectedRuntime {
	return m.detectResp
}

func (m *mockManager) Start(ctx context.Context, id, executablePath string, args []string, workDir string) (int, error) {
	m.capturedID = id
	m.capturedExe = executablePath
	m.capturedArgs = args
	m.capturedWorkDir = workDir
	return m.startResp, m.startErr
}

func (m *mockManager) Stop(ctx context.Context, id string) error {
	m.capturedID = id
	return m.stopErr
}

func (m *mockManager) Restart(ctx context.Context, id string) (int, error) {
	m.capturedID = id
	return m.restartResp, m.restartErr
}

func (m *mockManager) Status(ctx context.Context, id string) (runtime.Status, error) {
	m.capturedID = id
	return m.statusResp, m.statusErr
}

func (m *mockManager) Usage(ctx context.Context, id string) (runtime.Usage, error) {
	m.capturedID = id
	return m.usageResp, m.usageErr
}

func (m *mockManager) ValidateRuntimePath(ctx context.Context, path string) runtime.Info {
	return m.validateResp
}

func (m *mockManager) SpawnTracked(toolID, workDir string, args []string) int {
	m.capturedToolID = toolID
	m.capturedWorkDir = workDir
	m.capturedArgs = args
	return m.spawnResp
}

func (m *mockManager) SendInput(pid int, input string) error {
	m.capturedPID = pid
	m.capturedInput = input
	return m.sendInputErr
}

func (m *mockManager) Kill(pid int) error {
	m.capturedPID = pid
	return m.killErr
}

func (m *mockManager) Output(pid int) (string, error) {
	m.capturedPID = pid
	return m.outputResp, m.outputErr
}

func (m *mockManager) StreamOutput(pid int) []string {
	m.capturedPID = pid
	return m.streamResp
}

func newTestHandlers(m Manager) *Handlers {
	return New(m, nil, nil)
}

// doRequest runs a handler with path values extracted from the pattern.
func doRequest(h http.HandlerFunc, method, target, body string, pathValues map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

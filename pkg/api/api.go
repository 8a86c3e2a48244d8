// Package api contains shared JSON request/response structs.
// This package is shared between the CLI and the daemon.
package api

// ErrorResponse is the standard error body returned by the daemon.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// RuntimeResponse describes one detected runtime.
type RuntimeResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	RuntimeType    string `json:"runtime_type"`
	ExecutablePath string `json:"executable_path"`
	Version        string `json:"version,omitempty"`
	AutoDetected   bool   `json:"auto_detected"`
}

// DetectResponse is the response body for a detection pass.
type DetectResponse struct {
	Runtimes []RuntimeResponse `json:"runtimes"`
}

// StartRuntimeRequest is the request body for starting a runtime.
type StartRuntimeRequest struct {
	ExecutablePath string   `json:"executable_path,omitempty"`
	Args           []string `json:"args,omitempty"`
	WorkingDir     string   `json:"working_dir,omitempty"`
}

// StartRuntimeResponse is the response body after a successful start or
// restart.
type StartRuntimeResponse struct {
	PID int `json:"pid"`
}

// StatusResponse is the response body for runtime status queries.
type StatusResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version,omitempty"`
	UptimeSeconds uint64 `json:"uptime_seconds,omitempty"`
	Port          int    `json:"port,omitempty"`
	Error         string `json:"error,omitempty"`
}

// UsageResponse is the response body for resource usage queries.
type UsageResponse struct {
	MemoryMB   float64  `json:"memory_mb"`
	VRAMMB     *float64 `json:"vram_mb,omitempty"`
	CPUPercent float64  `json:"cpu_percent"`
}

// ValidatePathRequest is the request body for validating a runtime path.
type ValidatePathRequest struct {
	Path string `json:"path"`
}

// ValidatePathResponse is the response body for path validation.
type ValidatePathResponse struct {
	Valid        bool     `json:"valid"`
	Version      string   `json:"version,omitempty"`
	Capabilities []string `json:"capabilities"`
}

// SpawnProcessRequest is the request body for registering a tracked process.
type SpawnProcessRequest struct {
	ToolID     string   `json:"tool_id"`
	WorkingDir string   `json:"working_dir,omitempty"`
	Args       []string `json:"args,omitempty"`
}

// SpawnProcessResponse is the response body after registering a tracked
// process.
type SpawnProcessResponse struct {
	PID int `json:"pid"`
}

// SendInputRequest is the request body for sending input to a tracked
// process.
type SendInputRequest struct {
	Input string `json:"input"`
}

// OutputResponse is the response body for full output queries.
type OutputResponse struct {
	Output string `json:"output"`
}

// StreamResponse is the response body for line-oriented output queries.
type StreamResponse struct {
	Lines []string `json:"lines"`
}

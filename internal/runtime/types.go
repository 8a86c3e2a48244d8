// Package runtime implements the process lifecycle core: runtime detection,
// per-backend start/stop/restart dispatch, status and resource probes, and
// the process/output registries.
package runtime

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a runtime backend family.
type Kind string

const (
	KindOllama  Kind = "ollama"
	KindLocalAI Kind = "localai"
	KindDocker  Kind = "docker"
	KindPython  Kind = "python"
	KindNode    Kind = "node"
	KindCustom  Kind = "custom"
)

// Kinds is the closed set of backend kinds this core manages.
var Kinds = []Kind{KindOllama, KindLocalAI, KindDocker, KindPython, KindNode, KindCustom}

// Sentinel errors for the taxonomy used across the package.
var (
	// ErrNotFound is returned when a handle is absent from the registry.
	ErrNotFound = errors.New("process not found")

	// ErrInvalidID is returned for malformed runtime identifiers.
	ErrInvalidID = errors.New("invalid runtime ID")

	// ErrUnsupported is returned when an operation is not implemented
	// for the requested backend.
	ErrUnsupported = errors.New("not implemented for this backend")
)

// Ref is a runtime identifier decoded at the boundary. Identifiers are
// composite strings of the form "<kind>_<discriminator>"; Ref carries the
// decoded kind plus the fields that kind needs, so dispatch sites never
// re-parse the string.
type Ref struct {
	// Kind is the backend family. Prefixes outside the known set decode
	// to KindCustom; RawKind keeps what the caller actually wrote.
	Kind    Kind
	RawKind string

	// Container is the Docker container reference (ID or name). Only set
	// for KindDocker; empty when the identifier had no second segment.
	Container string

	// ID is the original identifier string.
	ID string
}

// ParseRef decodes a composite runtime identifier. An empty identifier is
// rejected here; unknown kind prefixes are accepted and resolved to
// KindCustom, since start treats them as generic executables while status
// and usage reject them per-operation.
func ParseRef(id string) (Ref, error) {
	if strings.TrimSpace(id) == "" {
		return Ref{}, ErrInvalidID
	}

	tag, rest, _ := strings.Cut(id, "_")

	ref := Ref{RawKind: tag, ID: id}
	switch Kind(tag) {
	case KindOllama, KindLocalAI, KindPython, KindNode, KindCustom:
		ref.Kind = Kind(tag)
	case KindDocker:
		ref.Kind = KindDocker
		ref.Container = rest
	default:
		ref.Kind = KindCustom
	}
	return ref, nil
}

// DetectedRuntime describes one runtime found by a detection pass. Values
// are immutable once returned; persistence belongs to the settings store,
// not to this core.
type DetectedRuntime struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Kind           Kind   `json:"runtime_type"`
	ExecutablePath string `json:"executable_path"`
	Version        string `json:"version,omitempty"`
	AutoDetected   bool   `json:"auto_detected"`
}

// Status describes the liveness of a runtime at query time. It is derived
// fresh on every query and never cached.
type Status struct {
	State         string `json:"status"` // "running", "stopped", "error"
	Version       string `json:"version,omitempty"`
	UptimeSeconds uint64 `json:"uptime_seconds,omitempty"`
	Port          int    `json:"port,omitempty"`
	Error         string `json:"error,omitempty"`
}

const (
	StateRunning = "running"
	StateStopped = "stopped"
	StateError   = "error"
)

// Usage is an advisory resource estimate. Values are non-negative by
// construction; VRAM is never populated here since no platform API for it
// is invoked in this core.
type Usage struct {
	MemoryMB   float64  `json:"memory_mb"`
	VRAMMB     *float64 `json:"vram_mb,omitempty"`
	CPUPercent float64  `json:"cpu_percent"`
}

// Info is the result of validating a caller-supplied runtime path.
type Info struct {
	Valid        bool     `json:"valid"`
	Version      string   `json:"version,omitempty"`
	Capabilities []string `json:"capabilities"`
}

// ProcessStatus is the lifecycle state of a registry record.
type ProcessStatus string

const (
	ProcessRunning ProcessStatus = "Running"
	ProcessStopped ProcessStatus = "Stopped"
	ProcessError   ProcessStatus = "Error"
)

// ProcessRecord is the registry entry for a spawned or tracked process.
// A record transitions Running -> Stopped at most once; a restart creates
// a new record under a new handle rather than reviving an old one.
type ProcessRecord struct {
	PID        int           `json:"pid"`
	ToolID     string        `json:"tool_id"`
	WorkingDir string        `json:"working_dir"`
	Status     ProcessStatus `json:"status"`
}

func unsupportedErr(op string, kind string) error {
	return fmt.Errorf("%s %s runtimes: %w", op, kind, ErrUnsupported)
}

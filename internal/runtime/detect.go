package runtime

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/docker/docker/api/types/container"
)

// Detector describes how to find and version-probe one known backend kind.
type Detector struct {
	Name        string
	Kind        Kind
	Executables []string
	VersionArgs []string
	DefaultPort int
}

// detectors is the fixed, ordered table of known runtimes. Detection result
// ordering mirrors this table.
var detectors = []Detector{
	{
		Name:        "Ollama",
		Kind:        KindOllama,
		Executables: []string{"ollama"},
		VersionArgs: []string{"--version"},
		DefaultPort: 11434,
	},
	{
		Name:        "LocalAI",
		Kind:        KindLocalAI,
		Executables: []string{"local-ai", "localai"},
		VersionArgs: []string{"--version"},
		DefaultPort: 8080,
	},
	{
		Name:        "Python",
		Kind:        KindPython,
		Executables: []string{"python3", "python"},
		VersionArgs: []string{"--version"},
	},
	{
		Name:        "Node.js",
		Kind:        KindNode,
		Executables: []string{"node"},
		VersionArgs: []string{"--version"},
	},
	{
		Name:        "Docker",
		Kind:        KindDocker,
		Executables: []string{"docker"},
		VersionArgs: []string{"--version"},
	},
}

// aiImageMarkers classifies a container image as an AI service when its name
// contains any of these, case-insensitively.
var aiImageMarkers = []string{"ollama", "localai", "text-generation", "stable-diffusion"}

// IsAIServiceImage reports whether a Docker image name looks like an AI
// service this core should surface.
func IsAIServiceImage(image string) bool {
	lower := strings.ToLower(image)
	for _, marker := range aiImageMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// DetectAll scans the detector table and running Docker containers, and
// returns every runtime found. It never fails: a detector whose executable
// is absent contributes nothing, and an unreachable Docker daemon only drops
// the container scan. A runtime present both as a host executable and as a
// container appears twice; results are deliberately not deduplicated.
func (m *Manager) DetectAll(ctx context.Context) []DetectedRuntime {
	var found []DetectedRuntime

	for _, d := range detectors {
		if rt, ok := m.detectOne(ctx, d); ok {
			found = append(found, rt)
		}
	}

	containers, err := m.scanContainers(ctx)
	if err != nil {
		m.log.Warn("docker container scan failed", "error", err)
	} else {
		found = append(found, containers...)
	}

	return found
}

// detectOne tries a descriptor's candidate executables in order and stops at
// the first one on the search path, so each descriptor yields at most one
// runtime.
func (m *Manager) detectOne(ctx context.Context, d Detector) (DetectedRuntime, bool) {
	for _, exe := range d.Executables {
		path, ok := m.locator.Locate(exe)
		if !ok {
			continue
		}
		version, _ := m.locator.ProbeVersion(ctx, path, d.VersionArgs)
		return DetectedRuntime{
			ID:             fmt.Sprintf("%s_%s", d.Kind, exe),
			Name:           d.Name,
			Kind:           d.Kind,
			ExecutablePath: path,
			Version:        version,
			AutoDetected:   true,
		}, true
	}
	return DetectedRuntime{}, false
}

// scanContainers lists running containers and keeps the ones whose image
// looks like an AI service. The version field carries the image reference,
// since a container has no version string of its own.
func (m *Manager) scanContainers(ctx context.Context) ([]DetectedRuntime, error) {
	if m.docker == nil {
		return nil, nil
	}

	summaries, err := m.docker.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}

	var found []DetectedRuntime
	for _, c := range summaries {
		if !IsAIServiceImage(c.Image) {
			continue
		}
		name := c.ID
		if len(c.Names) > 0 {
			name = strings.TrimPrefix(c.Names[0], "/")
		}
		found = append(found, DetectedRuntime{
			ID:             fmt.Sprintf("docker_%s", c.ID),
			Name:           fmt.Sprintf("Docker: %s", name),
			Kind:           KindDocker,
			ExecutablePath: fmt.Sprintf("docker:%s", c.ID),
			Version:        c.Image,
			AutoDetected:   true,
		})
	}
	return found, nil
}

// ValidateRuntimePath checks a caller-supplied executable path and infers
// its capabilities from the executable name.
func (m *Manager) ValidateRuntimePath(ctx context.Context, path string) Info {
	if _, err := os.Stat(path); err != nil {
		return Info{Valid: false, Capabilities: []string{}}
	}
	version, _ := m.locator.ProbeVersion(ctx, path, []string{"--version"})
	return Info{
		Valid:        true,
		Version:      version,
		Capabilities: capabilitiesFor(path),
	}
}

// capabilitiesFor maps well-known executable names to the features they
// provide.
func capabilitiesFor(path string) []string {
	lower := strings.ToLower(path)
	switch {
	case strings.Contains(lower, "ollama"):
		return []string{"chat", "embeddings", "model_management"}
	case strings.Contains(lower, "local-ai"), strings.Contains(lower, "localai"):
		return []string{"chat", "embeddings", "text_to_speech", "speech_to_text"}
	case strings.Contains(lower, "python"):
		return []string{"scripting", "ml_frameworks"}
	case strings.Contains(lower, "node"):
		return []string{"scripting", "web_apis"}
	}
	return []string{}
}

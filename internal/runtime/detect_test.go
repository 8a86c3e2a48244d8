package runtime

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docker/docker/api/types/container"
)

// writeFakeExecutable drops a shell script named name into dir.
func writeFakeExecutable(t *testing.T, dir, name, body string) {
	t.Helper()
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write fake executable: %v", err)
	}
}

func TestDetectAll_Properties(t *testing.T) {
	m := newTestManager(nil)

	found := m.DetectAll(context.Background())

	seen := make(map[string]bool)
	valid := make(map[Kind]bool)
	for _, k := range Kinds {
		valid[k] = true
	}

	for _, rt := range found {
		if rt.ID == "" {
			t.Error("detected runtime with empty identifier")
		}
		if seen[rt.ID] {
			t.Errorf("duplicate identifier %q in a single detection pass", rt.ID)
		}
		seen[rt.ID] = true
		if !valid[rt.Kind] {
			t.Errorf("runtime %q has kind %q outside the closed set", rt.ID, rt.Kind)
		}
		if !rt.AutoDetected {
			t.Errorf("runtime %q not flagged auto-detected", rt.ID)
		}
	}
}

func TestDetectAll_FindsFakeOllama(t *testing.T) {
	dir := t.TempDir()
	writeFakeExecutable(t, dir, "ollama", `echo "ollama version 0.5.1"`)
	t.Setenv("PATH", dir)

	m := newTestManager(nil)
	found := m.DetectAll(context.Background())

	var ollama *DetectedRuntime
	for i := range found {
		if found[i].Kind == KindOllama {
			ollama = &found[i]
		}
	}
	if ollama == nil {
		t.Fatal("expected fake ollama to be detected")
	}
	if ollama.ID != "ollama_ollama" {
		t.Errorf("expected id ollama_ollama, got %q", ollama.ID)
	}
	if !strings.Contains(ollama.Version, "0.5.1") {
		t.Errorf("expected version from probe, got %q", ollama.Version)
	}
	if ollama.ExecutablePath != filepath.Join(dir, "ollama") {
		t.Errorf("unexpected path %q", ollama.ExecutablePath)
	}
}

func TestDetectOne_FirstCandidateWins(t *testing.T) {
	dir := t.TempDir()
	writeFakeExecutable(t, dir, "local-ai", `echo "v2"`)
	writeFakeExecutable(t, dir, "localai", `echo "v2"`)
	t.Setenv("PATH", dir)

	m := newTestManager(nil)
	found := m.DetectAll(context.Background())

	count := 0
	for _, rt := range found {
		if rt.Kind == KindLocalAI {
			count++
			if !strings.HasSuffix(rt.ExecutablePath, "local-ai") {
				t.Errorf("expected first candidate local-ai, got %q", rt.ExecutablePath)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one LocalAI result per descriptor, got %d", count)
	}
}

func TestScanContainers_ClassifiesImages(t *testing.T) {
	fake := &fakeDocker{
		ListFunc: func(ctx context.Context, options container.ListOptions) ([]container.Summary, error) {
			return []container.Summary{
				{ID: "ab12cd", Image: "ollama/ollama:latest", Names: []string{"/my-ollama"}},
				{ID: "ef34gh", Image: "nginx:latest", Names: []string{"/web"}},
				{ID: "ij56kl", Image: "Stable-Diffusion-webui:1.2", Names: []string{"/sd"}},
			}, nil
		},
	}
	m := newTestManager(fake)

	found, err := m.scanContainers(context.Background())
	if err != nil {
		t.Fatalf("scanContainers failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 AI containers, got %d", len(found))
	}

	first := found[0]
	if first.ID != "docker_ab12cd" {
		t.Errorf("expected id docker_ab12cd, got %q", first.ID)
	}
	if first.Name != "Docker: my-ollama" {
		t.Errorf("expected container name surfaced, got %q", first.Name)
	}
	if first.Version != "ollama/ollama:latest" {
		t.Errorf("expected image in version field, got %q", first.Version)
	}
	if first.Kind != KindDocker {
		t.Errorf("expected docker kind, got %q", first.Kind)
	}
}

func TestDetectAll_DuplicatesAcrossScansKept(t *testing.T) {
	dir := t.TempDir()
	writeFakeExecutable(t, dir, "ollama", `echo "0.5.1"`)
	t.Setenv("PATH", dir)

	fake := &fakeDocker{
		ListFunc: func(ctx context.Context, options container.ListOptions) ([]container.Summary, error) {
			return []container.Summary{
				{ID: "ab12cd", Image: "ollama/ollama:latest", Names: []string{"/ollama"}},
			}, nil
		},
	}
	m := newTestManager(fake)

	found := m.DetectAll(context.Background())

	// The host executable and the container are both reported; callers see
	// the duplication and decide what to do with it.
	ollamaResults := 0
	for _, rt := range found {
		if strings.Contains(strings.ToLower(rt.Name), "ollama") {
			ollamaResults++
		}
	}
	if ollamaResults != 2 {
		t.Errorf("expected both scans to report ollama, got %d results", ollamaResults)
	}
}

func TestValidateRuntimePath(t *testing.T) {
	m := newTestManager(nil)
	ctx := context.Background()

	info := m.ValidateRuntimePath(ctx, "/nonexistent/path/to/tool")
	if info.Valid {
		t.Error("expected missing path to be invalid")
	}
	if info.Capabilities == nil {
		t.Error("capabilities must be an empty list, not nil")
	}

	dir := t.TempDir()
	writeFakeExecutable(t, dir, "ollama", `echo "0.5.1"`)
	info = m.ValidateRuntimePath(ctx, filepath.Join(dir, "ollama"))
	if !info.Valid {
		t.Fatal("expected existing executable to be valid")
	}
	if !strings.Contains(info.Version, "0.5.1") {
		t.Errorf("expected probed version, got %q", info.Version)
	}
	hasChat := false
	for _, c := range info.Capabilities {
		if c == "chat" {
			hasChat = true
		}
	}
	if !hasChat {
		t.Errorf("expected ollama capabilities, got %v", info.Capabilities)
	}
}

package runtime

import (
	"context"
	"strings"
	"testing"
)

func TestLocate_Found(t *testing.T) {
	loc := &Locator{}

	path, ok := loc.Locate("sh")
	if !ok {
		t.Fatal("expected sh to be on the search path")
	}
	if !strings.HasSuffix(path, "sh") {
		t.Errorf("unexpected path %q", path)
	}
}

func TestLocate_NotFound(t *testing.T) {
	loc := &Locator{}

	if _, ok := loc.Locate("definitely-not-a-real-binary-xyz"); ok {
		t.Fatal("expected lookup to fail")
	}
}

func TestProbeVersion_FirstLine(t *testing.T) {
	loc := &Locator{}
	ctx := context.Background()

	version, ok := loc.ProbeVersion(ctx, "sh", []string{"-c", "echo v1.2.3; echo second line"})
	if !ok {
		t.Fatal("expected probe to succeed")
	}
	if version != "v1.2.3" {
		t.Errorf("expected first trimmed line, got %q", version)
	}
}

func TestProbeVersion_NonZeroExit(t *testing.T) {
	loc := &Locator{}
	ctx := context.Background()

	if _, ok := loc.ProbeVersion(ctx, "sh", []string{"-c", "echo oops; exit 1"}); ok {
		t.Fatal("expected probe to fail on non-zero exit")
	}
}

func TestProbeVersion_EmptyOutput(t *testing.T) {
	loc := &Locator{}
	ctx := context.Background()

	if _, ok := loc.ProbeVersion(ctx, "true", nil); ok {
		t.Fatal("expected probe to fail on empty output")
	}
}

func TestProbeVersion_MissingExecutable(t *testing.T) {
	loc := &Locator{}
	ctx := context.Background()

	// A missing binary must read as "not detected", never a panic.
	if _, ok := loc.ProbeVersion(ctx, "/nonexistent/binary", nil); ok {
		t.Fatal("expected probe to fail for missing executable")
	}
}

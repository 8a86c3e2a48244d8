package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"runtimeplane/pkg/api"
)

func TestStartCommand_Success(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST method, got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/runtimes/ollama_ollama/start") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(api.StartRuntimeResponse{PID: 12345})
	}))
	defer server.Close()

	viper.Set("url", server.URL)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"start", "ollama_ollama"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "Started ollama_ollama") {
		t.Errorf("expected start confirmation, got: %s", output)
	}
	if !strings.Contains(output, "12345") {
		t.Errorf("expected pid in output, got: %s", output)
	}
}

func TestStartCommand_ForwardsExecutable(t *testing.T) {
	resetViper()

	var received api.StartRuntimeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &received)

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(api.StartRuntimeResponse{PID: 1})
	}))
	defer server.Close()

	viper.Set("url", server.URL)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"start", "custom_mytool", "--exe", "/usr/bin/mytool", "--workdir", "/work", "--arg", "--serve"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if received.ExecutablePath != "/usr/bin/mytool" {
		t.Errorf("expected executable path in request, got: %q", received.ExecutablePath)
	}
	if received.WorkingDir != "/work" {
		t.Errorf("expected working dir in request, got: %q", received.WorkingDir)
	}
	if len(received.Args) != 1 || received.Args[0] != "--serve" {
		t.Errorf("expected args in request, got: %v", received.Args)
	}

	// Flags are package-level; reset for other tests
	startExecutable = ""
	startWorkDir = ""
	startArgs = nil
}

func TestStartCommand_DaemonError(t *testing.T) {
	resetViper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(api.ErrorResponse{Error: "start failed: executable vanished", Code: "502"})
	}))
	defer server.Close()

	viper.Set("url", server.URL)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"start", "ollama_ollama"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "Start failed") {
		t.Errorf("expected failure message, got: %s", output)
	}
	if !strings.Contains(output, "executable vanished") {
		t.Errorf("expected daemon error message, got: %s", output)
	}
}

func TestStartCommand_RequiresRuntimeIDArgument(t *testing.T) {
	resetViper()

	var stderr bytes.Buffer
	rootCmd.SetOut(&stderr)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"start"}) // No runtime ID

	err := rootCmd.Execute()
	if err == nil {
		t.Error("expected error when no runtime ID provided")
	}
}

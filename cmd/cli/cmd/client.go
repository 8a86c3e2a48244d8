package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"runtimeplane/pkg/api"
)

// RuntimeClient handles API calls to the runtimeplane daemon.
type RuntimeClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewRuntimeClient creates a new client with the given base URL.
func NewRuntimeClient(baseURL string) *RuntimeClient {
	return &RuntimeClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

func (c *RuntimeClient) do(method, path string, reqBody any, out any) error {
	var body io.Reader
	if reqBody != nil {
		bodyBytes, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if reqBody != nil {
		httpReq.Header.Add("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg := string(respBody)
		var apiErr api.ErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// DetectRuntimes sends GET /runtimes to run a detection pass.
func (c *RuntimeClient) DetectRuntimes() ([]api.RuntimeResponse, error) {
	var result api.DetectResponse
	if err := c.do(http.MethodGet, "/runtimes", nil, &result); err != nil {
		return nil, err
	}
	return result.Runtimes, nil
}

// StartRuntime sends POST /runtimes/{id}/start.
func (c *RuntimeClient) StartRuntime(id string, req *api.StartRuntimeRequest) (*api.StartRuntimeResponse, error) {
	var result api.StartRuntimeResponse
	var body any
	if req != nil {
		body = req
	}
	if err := c.do(http.MethodPost, fmt.Sprintf("/runtimes/%s/start", id), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// StopRuntime sends POST /runtimes/{id}/stop.
func (c *RuntimeClient) StopRuntime(id string) error {
	return c.do(http.MethodPost, fmt.Sprintf("/runtimes/%s/stop", id), nil, nil)
}

// RestartRuntime sends POST /runtimes/{id}/restart.
func (c *RuntimeClient) RestartRuntime(id string) (*api.StartRuntimeResponse, error) {
	var result api.StartRuntimeResponse
	if err := c.do(http.MethodPost, fmt.Sprintf("/runtimes/%s/restart", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetStatus sends GET /runtimes/{id}/status.
func (c *RuntimeClient) GetStatus(id string) (*api.StatusResponse, error) {
	var result api.StatusResponse
	if err := c.do(http.MethodGet, fmt.Sprintf("/runtimes/%s/status", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUsage sends GET /runtimes/{id}/usage.
func (c *RuntimeClient) GetUsage(id string) (*api.UsageResponse, error) {
	var result api.UsageResponse
	if err := c.do(http.MethodGet, fmt.Sprintf("/runtimes/%s/usage", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SpawnProcess sends POST /processes to register a tracked process.
func (c *RuntimeClient) SpawnProcess(req api.SpawnProcessRequest) (*api.SpawnProcessResponse, error) {
	var result api.SpawnProcessResponse
	if err := c.do(http.MethodPost, "/processes", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetOutput sends GET /processes/{pid}/output.
func (c *RuntimeClient) GetOutput(pid int) (string, error) {
	var result api.OutputResponse
	if err := c.do(http.MethodGet, fmt.Sprintf("/processes/%d/output", pid), nil, &result); err != nil {
		return "", err
	}
	return result.Output, nil
}

// StreamOutput sends GET /processes/{pid}/stream.
func (c *RuntimeClient) StreamOutput(pid int) ([]string, error) {
	var result api.StreamResponse
	if err := c.do(http.MethodGet, fmt.Sprintf("/processes/%d/stream", pid), nil, &result); err != nil {
		return nil, err
	}
	return result.Lines, nil
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// claudeCodeClient implements the Client interface using Claude Code CLI.
type claudeCodeClient struct {
	model   string
	cliPath string
}

// newClaudeCodeClient creates a new Claude Code CLI client.
func newClaudeCodeClient(cfg Config) (Client, error) {
	cliPath := cfg.ClaudeCodePath
	if cliPath == "" {
		cliPath = "claude"
	}

	if _, err := exec.LookPath(cliPath); err != nil {
		return nil, fmt.Errorf("claude CLI not found at %s: ensure @anthropic-ai/claude-code is installed", cliPath)
	}

	model := cfg.Model
	if model == "" {
		model = "haiku"
	}

	return &claudeCodeClient{
		model:   model,
		cliPath: cliPath,
	}, nil
}

// ClassifyFilenames sends a classification request to Claude Code.
func (c *claudeCodeClient) ClassifyFilenames(ctx context.Context, filenames []string) ([]string, error) {
	args := []string{
		"-p", systemPrompt + "\n\n" + BuildPrompt(filenames),
		"--output-format", "json",
		"--model", c.model,
		"--max-turns", "1",
	}

	cmd := exec.CommandContext(ctx, c.cliPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("claude code error: %s", strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("failed to execute claude: %w", err)
	}

	return parseClaudeCodeOutput(stdout.Bytes())
}

// parseClaudeCodeOutput unwraps the CLI's JSON envelope, falling back to raw text.
func parseClaudeCodeOutput(output []byte) ([]string, error) {
	var response claudeCodeResponse
	if err := json.Unmarshal(output, &response); err != nil || response.Type == "" {
		return parseFilenameList(string(output))
	}

	if response.IsError {
		return nil, fmt.Errorf("claude code error in response: %s", response.Result)
	}
	if response.Result == "" {
		return nil, fmt.Errorf("empty response from claude code")
	}

	return parseFilenameList(response.Result)
}

// claudeCodeResponse represents the JSON response from Claude Code CLI.
type claudeCodeResponse struct {
	Result    string  `json:"result"`
	Type      string  `json:"type"`
	SessionID string  `json:"session_id"`
	IsError   bool    `json:"is_error"`
	TotalCost float64 `json:"total_cost_usd"`
}

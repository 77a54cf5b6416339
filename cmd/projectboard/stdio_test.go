package main

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// newStdioSession starts the built binary in mcp mode and connects a client.
func newStdioSession(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	binaryPath := "../../bin/projectboard"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skip("binary not found; build it into bin/projectboard first")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(os.Environ(),
		"PROJECTBOARD_MODE=mcp",
		"PROJECTBOARD_STORAGE_DRIVER=memory",
		"PROJECTBOARD_API_DELAY=0s",
	)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestStdio_ListAndUpdate(t *testing.T) {
	session := newStdioSession(t)
	ctx := context.Background()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 5)

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "update_project_status",
		Arguments: map[string]any{"id": "p2", "status": "active"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	var p struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &p))
	require.Equal(t, "active", p.Status)
}

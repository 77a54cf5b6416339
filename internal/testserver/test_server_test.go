package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/rpggio/projectboard/internal/domain/project"
	"github.com/rpggio/projectboard/internal/sqlite"
	"github.com/rpggio/projectboard/internal/transport"
	"github.com/stretchr/testify/require"
)

type rpcResponse struct {
	Result json.RawMessage  `json:"result"`
	Error  *transport.Error `json:"error"`
}

func (ts *TestServer) rpc(t *testing.T, method string, params any) rpcResponse {
	t.Helper()
	body := map[string]any{"jsonrpc": "2.0", "id": 1, "method": method}
	if params != nil {
		body["params"] = params
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/rpc", bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if ts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+ts.Token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out rpcResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (ts *TestServer) get(t *testing.T, path string, auth bool) (int, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.Server.URL+path, nil)
	require.NoError(t, err)
	if auth && ts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+ts.Token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestStack_ListUpdateAndPersist(t *testing.T) {
	ts := New(t, Options{Token: "ops-token"})

	resp := ts.rpc(t, "list_projects", nil)
	require.Nil(t, resp.Error)
	var list struct {
		Projects []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"projects"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &list))
	require.Equal(t, len(project.Seed()), list.Total)

	resp = ts.rpc(t, "update_project_status", map[string]any{"id": "p3", "status": "active"})
	require.Nil(t, resp.Error)
	var updated struct {
		Status      string `json:"status"`
		StatusLabel string `json:"status_label"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &updated))
	require.Equal(t, "active", updated.Status)
	require.Equal(t, "Active", updated.StatusLabel)

	// The change is stored in the sqlite slot.
	raw, err := sqlite.NewSlotRepository(ts.DB).Get(context.Background(), project.DefaultStorageKey)
	require.NoError(t, err)
	stored, err := project.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, project.StatusActive, stored[2].Status)
}

func TestStack_ErrorsCarryCodes(t *testing.T) {
	ts := New(t, Options{})

	resp := ts.rpc(t, "get_project", map[string]any{"id": "nope"})
	require.NotNil(t, resp.Error)
	require.Equal(t, transport.ErrApplication, resp.Error.Code)
	data, err := json.Marshal(resp.Error.Data)
	require.NoError(t, err)
	var detail transport.ErrorData
	require.NoError(t, json.Unmarshal(data, &detail))
	require.Equal(t, "PROJECT_NOT_FOUND", detail.Code)

	resp = ts.rpc(t, "update_project", map[string]any{"id": "p1", "end_date": "2000-01-01"})
	require.NotNil(t, resp.Error)
	require.Contains(t, resp.Error.Message, "End date cannot be earlier than start date.")
}

func TestStack_HealthAndMetrics(t *testing.T) {
	ts := New(t, Options{Token: "ops-token", API: project.Options{SimulateError: true}})

	status, _ := ts.get(t, "/metrics", false)
	require.Equal(t, http.StatusUnauthorized, status)

	resp := ts.rpc(t, "refresh_projects", nil)
	require.NotNil(t, resp.Error)

	status, body := ts.get(t, "/health", false)
	require.Equal(t, http.StatusOK, status)
	var health transport.HealthResponse
	require.NoError(t, json.Unmarshal([]byte(body), &health))
	require.Equal(t, "degraded", health.Status)
	require.Equal(t, "Network error (simulated)", health.Error)

	status, body = ts.get(t, "/metrics", true)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `projectboard_fetch_total{mode="refresh",outcome="error"} 1`)
}

package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fljobs/backend/agent"
	"github.com/fljobs/backend/tools"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := agent.NewService(nil, nil, agent.WithJitter(func() int { return 0 }))
	svc.Initialize(context.Background())

	r := gin.New()
	NewServer(tools.NewDefaultRegistry(svc), ServerInfo{Name: "fljobs", Version: "test"}, nil).RegisterRoutes(r.Group("/api"))
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHandleMCPToolsList(t *testing.T) {
	r := newTestRouter(t)

	w := post(r, "/api/mcp", `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ID     float64         `json:"id"`
		Result ToolsListResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp.ID)
	require.Len(t, resp.Result.Tools, 2)
	assert.Equal(t, "generate_job_description", resp.Result.Tools[0].Name)
}

func TestHandleMCPToolsCall(t *testing.T) {
	r := newTestRouter(t)

	w := post(r, "/api/mcp", `{"jsonrpc":"2.0","id":"a","method":"tools/call","params":{"name":"score_candidate_match","arguments":{"job_requirements":"cashier","candidate_profile":{"skills":["cashier"]}}}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result ToolCallResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Result.Content, 1)
	assert.False(t, resp.Result.IsError)

	var res tools.ToolResult
	require.NoError(t, json.Unmarshal([]byte(resp.Result.Content[0].Text), &res))
	assert.True(t, res.Success)
}

func TestHandleMCPErrors(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"parse error", `{`, codeParseError},
		{"unknown method", `{"jsonrpc":"2.0","id":1,"method":"resources/list"}`, codeMethodNotFound},
		{"bad params", `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":"x"}`, codeInvalidParams},
		{"missing tool name", `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{}}`, codeInvalidParams},
		{"wrong version", `{"jsonrpc":"1.0","id":1,"method":"tools/list"}`, codeInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(r, "/api/mcp", tt.body)

			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestHandleToolsCallUnknownTool(t *testing.T) {
	r := newTestRouter(t)

	w := post(r, "/api/mcp/tools/call", `{"name":"search_jobs","arguments":{}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res ToolCallResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.IsError)
	assert.Equal(t, "tool not found: search_jobs", res.Content[0].Text)

	w = post(r, "/api/mcp/tools/list", ``)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleMCPInitialize(t *testing.T) {
	r := newTestRouter(t)

	w := post(r, "/api/mcp", `{"jsonrpc":"2.0","id":7,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result InitializeResult `json:"result"`
		Error  *RPCError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Nil(t, resp.Error)
	assert.Equal(t, ProtocolVersion, resp.Result.ProtocolVersion)
	assert.Equal(t, "fljobs", resp.Result.ServerInfo.Name)
	assert.Contains(t, resp.Result.Capabilities, "tools")
}

func TestHandleMCPPingAndNotification(t *testing.T) {
	r := newTestRouter(t)

	w := post(r, "/api/mcp", `{"jsonrpc":"2.0","id":2,"method":"ping"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":2,"result":{}}`, w.Body.String())

	w = post(r, "/api/mcp", `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Empty(t, w.Body.String())
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fljobs/backend/logger"
	"github.com/fljobs/backend/tools"
)

// ProtocolVersion is the MCP revision this server speaks
const ProtocolVersion = "2024-11-05"

// JSON-RPC error codes
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// ServerInfo identifies the server during the initialize handshake
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Server exposes the job tools over the MCP (Model Context Protocol)
// JSON-RPC surface so external agents can call them
type Server struct {
	registry *tools.ToolRegistry
	info     ServerInfo
	logger   *zap.Logger
	methods  map[string]method
}

type method func(ctx context.Context, params json.RawMessage) (any, *RPCError)

// NewServer creates a new MCP server
func NewServer(registry *tools.ToolRegistry, info ServerInfo, log *zap.Logger) *Server {
	s := &Server{
		registry: registry,
		info:     info,
		logger:   logger.OrNop(log).Named("mcp"),
	}
	s.methods = map[string]method{
		"initialize": s.initialize,
		"ping":       func(context.Context, json.RawMessage) (any, *RPCError) { return struct{}{}, nil },
		"tools/list": func(context.Context, json.RawMessage) (any, *RPCError) { return s.listTools(), nil },
		"tools/call": s.toolsCall,
	}
	return s
}

// Request is a JSON-RPC 2.0 request. A request without an ID is a notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC 2.0 response
type Response struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *RPCError `json:"error,omitempty"`
}

// RPCError is a JSON-RPC error object
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// InitializeResult answers the initialize handshake
type InitializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ServerInfo      ServerInfo     `json:"serverInfo"`
}

// ToolsListResult represents the result of tools/list
type ToolsListResult struct {
	Tools []ToolDefinition `json:"tools"`
}

// ToolDefinition represents a tool definition for MCP
type ToolDefinition struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	InputSchema tools.Schema `json:"inputSchema"`
}

// ToolCallParams represents parameters for tools/call
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolCallResult represents the result of tools/call
type ToolCallResult struct {
	Content []ContentItem `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// ContentItem represents a content item in MCP
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// RegisterRoutes registers MCP endpoints on the given router group
func (s *Server) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/mcp", s.HandleMCP)
	router.POST("/mcp/tools/list", s.HandleToolsList)
	router.POST("/mcp/tools/call", s.HandleToolsCall)
}

// HandleMCP handles MCP JSON-RPC requests
func (s *Server) HandleMCP(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		s.reply(c, nil, nil, &RPCError{Code: codeParseError, Message: "Parse error", Data: err.Error()})
		return
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		s.reply(c, req.ID, nil, &RPCError{Code: codeInvalidRequest, Message: "Invalid Request"})
		return
	}

	// notifications get no response body
	if req.ID == nil {
		s.logger.Debug("Notification received", zap.String("method", req.Method))
		c.Status(http.StatusAccepted)
		return
	}

	handle, ok := s.methods[req.Method]
	if !ok {
		s.reply(c, req.ID, nil, &RPCError{Code: codeMethodNotFound, Message: "Method not found", Data: req.Method})
		return
	}

	result, rpcErr := handle(c.Request.Context(), req.Params)
	s.reply(c, req.ID, result, rpcErr)
}

// HandleToolsList handles POST /mcp/tools/list
func (s *Server) HandleToolsList(c *gin.Context) {
	c.JSON(http.StatusOK, s.listTools())
}

// HandleToolsCall handles POST /mcp/tools/call
func (s *Server) HandleToolsCall(c *gin.Context) {
	var params ToolCallParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	c.JSON(http.StatusOK, s.callTool(c.Request.Context(), params))
}

func (s *Server) initialize(context.Context, json.RawMessage) (any, *RPCError) {
	return InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    map[string]any{"tools": map[string]any{}},
		ServerInfo:      s.info,
	}, nil
}

func (s *Server) toolsCall(ctx context.Context, raw json.RawMessage) (any, *RPCError) {
	var params ToolCallParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, &RPCError{Code: codeInvalidParams, Message: "Invalid params", Data: err.Error()}
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, &RPCError{Code: codeInvalidParams, Message: "Invalid params", Data: "name is required"}
	}
	return s.callTool(ctx, params), nil
}

func (s *Server) listTools() ToolsListResult {
	defs := s.registry.Definitions()

	result := ToolsListResult{Tools: make([]ToolDefinition, 0, len(defs))}
	for _, d := range defs {
		result.Tools = append(result.Tools, ToolDefinition{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.Parameters,
		})
	}
	return result
}

// callTool runs a tool and folds any failure into an isError result
func (s *Server) callTool(ctx context.Context, params ToolCallParams) ToolCallResult {
	tool, ok := s.registry.Get(params.Name)
	if !ok {
		return errorContent(fmt.Sprintf("tool not found: %s", params.Name))
	}

	args := params.Arguments
	if len(args) == 0 || string(args) == "null" {
		args = json.RawMessage(`{}`)
	}

	start := time.Now()
	result, err := tool.Execute(ctx, args)
	if err != nil {
		s.logger.Error("Tool failed", zap.String("tool", params.Name), zap.Error(err))
		return errorContent(err.Error())
	}

	s.logger.Info("Tool completed", zap.String("tool", params.Name), zap.Duration("elapsed", time.Since(start)))
	return ToolCallResult{Content: []ContentItem{{Type: "text", Text: string(result)}}}
}

func errorContent(msg string) ToolCallResult {
	return ToolCallResult{
		Content: []ContentItem{{Type: "text", Text: msg}},
		IsError: true,
	}
}

func (s *Server) reply(c *gin.Context, id any, result any, rpcErr *RPCError) {
	resp := Response{JSONRPC: "2.0", ID: id}
	if rpcErr != nil {
		resp.Error = rpcErr
	} else {
		resp.Result = result
	}
	c.JSON(http.StatusOK, resp)
}

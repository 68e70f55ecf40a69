package tools

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	"github.com/fljobs/backend/models"
)

// Tool is one operation external agents can invoke by name
type Tool interface {
	Name() string
	Description() string
	// InputSchema is the JSON schema of the arguments Execute accepts
	InputSchema() Schema
	// Execute reports bad input as an unsuccessful ToolResult, not as an error
	Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error)
}

// JobAI is the AI service the tools delegate to
type JobAI interface {
	GenerateJobDescription(ctx context.Context, fields models.JobFields) models.GenerationResult
	ScoreMatch(ctx context.Context, jobRequirements string, profile models.CandidateProfile) models.MatchResult
}

// Schema is a JSON schema fragment
type Schema map[string]any

func objectSchema(required []string, properties map[string]Schema) Schema {
	return Schema{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func typed(kind, description string) Schema {
	return Schema{"type": kind, "description": description}
}

// Definition describes a tool in function-calling format
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  Schema `json:"parameters"`
}

// ToolRegistry holds the tools by name and lists them in name order
type ToolRegistry struct {
	tools []Tool
}

// NewToolRegistry creates an empty registry
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{}
}

// NewDefaultRegistry registers every job tool backed by ai
func NewDefaultRegistry(ai JobAI) *ToolRegistry {
	r := NewToolRegistry()
	r.Register(NewGenerateJobDescriptionTool(ai))
	r.Register(NewScoreCandidateMatchTool(ai))
	return r
}

// Register adds a tool, replacing any tool with the same name
func (r *ToolRegistry) Register(tool Tool) {
	i, found := r.search(tool.Name())
	if found {
		r.tools[i] = tool
		return
	}
	r.tools = slices.Insert(r.tools, i, tool)
}

// Get retrieves a tool by name
func (r *ToolRegistry) Get(name string) (Tool, bool) {
	i, found := r.search(name)
	if !found {
		return nil, false
	}
	return r.tools[i], true
}

// List returns all registered tools sorted by name
func (r *ToolRegistry) List() []Tool {
	return slices.Clone(r.tools)
}

// Definitions returns every tool's definition, sorted by name
func (r *ToolRegistry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.tools))
	for _, tool := range r.tools {
		defs = append(defs, Definition{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.InputSchema(),
		})
	}
	return defs
}

func (r *ToolRegistry) search(name string) (int, bool) {
	return slices.BinarySearchFunc(r.tools, name, func(t Tool, name string) int {
		return strings.Compare(t.Name(), name)
	})
}

// ToolResult is the envelope every tool returns
type ToolResult struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// NewSuccessResult wraps data in a successful ToolResult
func NewSuccessResult(data any) (json.RawMessage, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(ToolResult{Success: true, Data: dataBytes})
}

// NewErrorResult wraps errMsg in an unsuccessful ToolResult
func NewErrorResult(errMsg string) (json.RawMessage, error) {
	return json.Marshal(ToolResult{Success: false, Error: errMsg})
}

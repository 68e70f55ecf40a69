package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fljobs/backend/models"
	"github.com/fljobs/backend/tools"
)

// SystemHandler serves status and tool introspection endpoints
type SystemHandler struct {
	ai       AIService
	registry *tools.ToolRegistry
	now      func() time.Time
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(ai AIService, registry *tools.ToolRegistry) *SystemHandler {
	return &SystemHandler{ai: ai, registry: registry, now: time.Now}
}

// Root reports the service banner and AI availability
// @Summary Service status
// @Description Service banner with AI availability
// @Tags System
// @Produce json
// @Success 200 {object} models.RootResponse
// @Router / [get]
func (h *SystemHandler) Root(c *gin.Context) {
	status := "Limited (Fallback mode)"
	if h.ai.IsReady() {
		status = "Available"
	}
	c.JSON(http.StatusOK, models.RootResponse{
		Message:  "FL Jobs API is running",
		Version:  Version,
		AIStatus: status,
	})
}

// HealthCheck returns server health status
// @Summary Health check
// @Description Check if the server is running and whether the AI backends are ready
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse "Server is healthy"
// @Router /health [get]
func (h *SystemHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Version:   Version,
		AIReady:   h.ai.IsReady(),
		AIState:   h.ai.State().String(),
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

// GetTools returns available MCP tools
// @Summary List available tools
// @Description Get a list of all available MCP tools for AI agents
// @Tags Tools
// @Produce json
// @Success 200 {object} map[string]interface{} "List of tools"
// @Router /tools [get]
func (h *SystemHandler) GetTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tools": h.registry.Definitions(),
	})
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fljobs/backend/agent"
	"github.com/fljobs/backend/models"
)

// Version is reported by the root and health endpoints
const Version = "2.0.0"

// AIService is the part of agent.Service the handlers depend on
type AIService interface {
	GenerateJobDescription(ctx context.Context, fields models.JobFields) models.GenerationResult
	ScoreMatch(ctx context.Context, jobRequirements string, profile models.CandidateProfile) models.MatchResult
	IsReady() bool
	State() agent.ReadinessState
}

func errorBody(code int, msg string) models.ErrorResponse {
	return models.ErrorResponse{Error: msg, Code: code}
}

func respondError(c *gin.Context, code int, msg string, err error) {
	resp := errorBody(code, msg)
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(code, resp)
}

func badRequest(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, "Invalid request body", err)
}

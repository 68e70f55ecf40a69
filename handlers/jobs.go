package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fljobs/backend/auth"
	"github.com/fljobs/backend/logger"
	"github.com/fljobs/backend/models"
	"github.com/fljobs/backend/storage"
)

var errMissingMatchInput = errors.New("provide job_id or job_requirements, and candidate_id or candidate_profile")

// JobHandler handles job posting and matching requests
type JobHandler struct {
	store   storage.Store
	ai      AIService
	archive storage.PostArchive
	logger  *zap.Logger
	now     func() time.Time
}

// NewJobHandler creates a new job handler. archive may be nil, in which case
// formatted posts are only stored with the listing.
func NewJobHandler(store storage.Store, ai AIService, archive storage.PostArchive, log *zap.Logger) *JobHandler {
	return &JobHandler{
		store:   store,
		ai:      ai,
		archive: archive,
		logger:  logger.OrNop(log).Named("jobs"),
		now:     time.Now,
	}
}

// ListJobs returns the caller's job listings
// @Summary List my job listings
// @Description Job listings created by the authenticated employer, newest first
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.JobListingsResponse
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	if claims == nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	jobs, err := h.store.ListJobsByOwner(c.Request.Context(), claims.UserID())
	if err != nil {
		h.logger.Error("Failed to list jobs", zap.String("user_id", claims.UserID()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to list jobs", nil)
		return
	}
	if jobs == nil {
		jobs = []*models.JobListing{}
	}

	c.JSON(http.StatusOK, models.JobListingsResponse{Jobs: jobs, Total: len(jobs)})
}

// CreateJob generates and stores a job listing
// @Summary Create a job listing
// @Description Generate an enhanced description for the posting and save it. Falls back to a template when AI is unavailable.
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.GenerateJobRequest true "Job fields"
// @Success 201 {object} models.JobListing
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	if claims == nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req models.GenerateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	fields := req.Fields()
	gen := h.ai.GenerateJobDescription(ctx, fields)

	listing := models.NewJobListing(fields, gen, claims.UserID(), h.now().UTC())
	listing.ID = uuid.NewString()

	if h.archive != nil {
		url, err := h.archive.UploadPost(ctx, listing)
		if err != nil {
			h.logger.Warn("Failed to archive job post", zap.String("job_id", listing.ID), zap.Error(err))
		} else {
			listing.PostURL = url
		}
	}

	if err := h.store.CreateJob(ctx, listing); err != nil {
		h.logger.Error("Failed to save job", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to save job", nil)
		return
	}

	h.logger.Info("Job created",
		zap.String("job_id", listing.ID),
		zap.String("user_id", claims.UserID()),
		zap.Bool("ai_enhanced", listing.AIEnhanced),
	)
	c.JSON(http.StatusCreated, listing)
}

// GenerateJob previews a generated description without saving it
// @Summary Preview job description
// @Tags Jobs
// @Accept json
// @Produce json
// @Param request body models.GenerateJobRequest true "Job fields"
// @Success 200 {object} models.GenerationResult
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Router /jobs/generate [post]
func (h *JobHandler) GenerateJob(c *gin.Context) {
	var req models.GenerateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.ai.GenerateJobDescription(c.Request.Context(), req.Fields()))
}

// MatchScore scores a candidate against a job
// @Summary Candidate match score
// @Description Score a stored or inline candidate against a stored or inline job
// @Tags Matching
// @Accept json
// @Produce json
// @Param request body models.MatchScoreRequest true "Match request"
// @Success 200 {object} models.MatchScoreResponse
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 404 {object} models.ErrorResponse "Job or candidate not found"
// @Router /match-score [post]
func (h *JobHandler) MatchScore(c *gin.Context) {
	var req models.MatchScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	jobText, err := h.resolveJobText(ctx, req)
	if err != nil {
		h.matchError(c, err)
		return
	}
	profile, err := h.resolveProfile(ctx, req)
	if err != nil {
		h.matchError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MatchScoreResponse{
		JobID:       req.JobID,
		CandidateID: req.CandidateID,
		MatchResult: h.ai.ScoreMatch(ctx, jobText, profile),
	})
}

// MatchMyProfile scores the caller's own profile against a stored listing
// @Summary Match my profile
// @Tags Matching
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} models.MatchScoreResponse
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Job or user not found"
// @Router /jobs/{id}/match [get]
func (h *JobHandler) MatchMyProfile(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	if claims == nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	ctx := c.Request.Context()
	jobID := c.Param("id")
	jobText, err := h.resolveJobText(ctx, models.MatchScoreRequest{JobID: jobID})
	if err != nil {
		h.matchError(c, err)
		return
	}
	user, err := h.store.GetUserByID(ctx, claims.UserID())
	if err != nil {
		h.matchError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MatchScoreResponse{
		JobID:       jobID,
		MatchResult: h.ai.ScoreMatch(ctx, jobText, user.CandidateProfile()),
	})
}

// resolveJobText prefers inline requirements, then a stored listing, then a
// neighbourhood job with a numeric id.
func (h *JobHandler) resolveJobText(ctx context.Context, req models.MatchScoreRequest) (string, error) {
	if text := strings.TrimSpace(req.JobRequirements); text != "" {
		return text, nil
	}
	if req.JobID == "" {
		return "", errMissingMatchInput
	}

	listing, err := h.store.GetJob(ctx, req.JobID)
	if err == nil {
		return listing.RequirementsText(), nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return "", err
	}

	id, convErr := strconv.Atoi(req.JobID)
	if convErr != nil {
		return "", err
	}
	job, err := h.store.GetLocationJob(ctx, id)
	if err != nil {
		return "", err
	}
	return models.JobFields{Position: job.Position, Requirements: job.Requirements}.RequirementsText(), nil
}

func (h *JobHandler) resolveProfile(ctx context.Context, req models.MatchScoreRequest) (models.CandidateProfile, error) {
	if req.CandidateProfile != nil {
		return *req.CandidateProfile, nil
	}
	if req.CandidateID == 0 {
		return models.CandidateProfile{}, errMissingMatchInput
	}
	candidate, err := h.store.GetCandidate(ctx, req.CandidateID)
	if err != nil {
		return models.CandidateProfile{}, err
	}
	return candidate.Profile(), nil
}

func (h *JobHandler) matchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errMissingMatchInput):
		badRequest(c, err)
	case errors.Is(err, storage.ErrNotFound):
		respondError(c, http.StatusNotFound, "Job or candidate not found", nil)
	default:
		h.logger.Error("Failed to resolve match input", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to compute match score", nil)
	}
}

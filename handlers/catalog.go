package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fljobs/backend/logger"
	"github.com/fljobs/backend/storage"
)

// CatalogHandler serves the read-only store, location and candidate catalog
type CatalogHandler struct {
	catalog storage.Catalog
	logger  *zap.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog storage.Catalog, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger.OrNop(log).Named("catalog"),
	}
}

// GetStores lists all stores
// @Summary List stores
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.Store
// @Router /stores [get]
func (h *CatalogHandler) GetStores(c *gin.Context) {
	stores, err := h.catalog.ListStores(c.Request.Context())
	h.respond(c, stores, err)
}

// GetStore returns one store by id
// @Summary Get store
// @Tags Catalog
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} models.Store
// @Failure 400 {object} models.ErrorResponse "Invalid store id"
// @Failure 404 {object} models.ErrorResponse "Store not found"
// @Router /stores/{id} [get]
func (h *CatalogHandler) GetStore(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid store id", err)
		return
	}
	store, err := h.catalog.GetStore(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Store not found", nil)
		return
	}
	h.respond(c, store, err)
}

// GetLocations lists the service areas
// @Summary List locations
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.Location
// @Router /locations [get]
func (h *CatalogHandler) GetLocations(c *gin.Context) {
	locations, err := h.catalog.ListLocations(c.Request.Context())
	h.respond(c, locations, err)
}

// GetLocationStores lists the stores in a location
// @Summary List stores in a location
// @Tags Catalog
// @Produce json
// @Param name path string true "Location name"
// @Success 200 {array} models.LocationStore
// @Router /locations/{name}/stores [get]
func (h *CatalogHandler) GetLocationStores(c *gin.Context) {
	stores, err := h.catalog.ListLocationStores(c.Request.Context(), c.Param("name"))
	h.respond(c, stores, err)
}

// GetLocationJobs lists the open jobs in a location
// @Summary List jobs in a location
// @Tags Catalog
// @Produce json
// @Param name path string true "Location name"
// @Success 200 {array} models.LocationJob
// @Router /locations/{name}/jobs [get]
func (h *CatalogHandler) GetLocationJobs(c *gin.Context) {
	jobs, err := h.catalog.ListLocationJobs(c.Request.Context(), c.Param("name"))
	h.respond(c, jobs, err)
}

// GetCandidates lists the candidate pool
// @Summary List candidates
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.Candidate
// @Router /candidates [get]
func (h *CatalogHandler) GetCandidates(c *gin.Context) {
	candidates, err := h.catalog.ListCandidates(c.Request.Context())
	h.respond(c, candidates, err)
}

func (h *CatalogHandler) respond(c *gin.Context, body any, err error) {
	if err != nil {
		h.logger.Error("Catalog read failed", zap.String("path", c.FullPath()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to load catalog", nil)
		return
	}
	c.JSON(http.StatusOK, body)
}

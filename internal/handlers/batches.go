package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"solar_cleaner/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errListBatches  = "failed to load batches"
	errGetBatch     = "failed to load batch"
	errIngestBatch  = "failed to store batch"
	errInvalidPage  = "invalid 'page'; use a positive integer"
	errBatchUnknown = "batch not found"
)

// IngestBatchRequest is an ML pipeline upload.
type IngestBatchRequest struct {
	Name   string               `json:"name" example:"Batch 2024-06-01"`
	Date   string               `json:"date" example:"2024-06-01"`
	Images []IngestImageRequest `json:"images" binding:"required,min=1,dive"`
}

// IngestImageRequest is one analysed image of an upload.
type IngestImageRequest struct {
	URL         string `json:"url" binding:"required" example:"https://example.com/panel-17.jpg"`
	DamageCount int    `json:"damageCount" binding:"min=0" example:"2"`
}

// @Summary      List ML batches
// @Description  Five batches per page, newest first. 'search' matches name or date (case-insensitive substring).
// @Tags         batches
// @Produce      json
// @Param        page    query     int     false  "1-based page"  default(1)
// @Param        search  query     string  false  "Substring of name or date"
// @Success      200     {object}  models.BatchPage
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/batches [get]
// @Security     BearerAuth
func (h *Handler) listBatches(c *gin.Context) {
	page := 1
	if qs := c.Query("page"); qs != "" {
		p, err := strconv.Atoi(qs)
		if err != nil || p < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidPage})
			return
		}
		page = p
	}
	search := c.Query("search")

	res, err := h.services.Batches.List(c.Request.Context(), service.BatchQuery{Page: page, Search: search})
	if err != nil {
		if errors.Is(err, service.ErrInvalidPage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidPage})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errListBatches, "batches_list_failed", err, "page", page, "search", search)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Get one batch
// @Tags         batches
// @Produce      json
// @Param        id   path      string  true  "Batch id"
// @Success      200  {object}  models.Batch
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/batches/{id} [get]
// @Security     BearerAuth
func (h *Handler) getBatch(c *gin.Context) {
	id := c.Param("id")
	b, err := h.services.Batches.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBatchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errBatchUnknown})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetBatch, "batch_get_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary      Ingest an ML batch
// @Description  Batch damageCount is the sum of the images' damage counts. Date defaults to today (UTC).
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        body  body      IngestBatchRequest  true  "Batch upload"
// @Success      201   {object}  models.Batch
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/batches [post]
// @Security     BearerAuth
func (h *Handler) ingestBatch(c *gin.Context) {
	var req IngestBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	in := service.BatchInput{Name: req.Name, Date: req.Date, Images: make([]service.ImageInput, 0, len(req.Images))}
	for _, img := range req.Images {
		in.Images = append(in.Images, service.ImageInput{URL: img.URL, DamageCount: img.DamageCount})
	}

	b, err := h.services.Batches.Ingest(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrInvalidBatch) {
			if h.log != nil {
				h.log.Infow("batch_ingest_rejected", "err", err)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errIngestBatch, "batch_ingest_failed", err, "name", req.Name)
		return
	}
	c.JSON(http.StatusCreated, b)
}

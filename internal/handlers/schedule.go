package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"solar_cleaner/internal/models"
	"solar_cleaner/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errGetSchedule     = "failed to load schedule"
	errSaveSchedule    = "failed to save schedule"
	errDeleteSchedule  = "failed to delete schedule entry"
	errIndexOutOfRange = "schedule index out of range"
	errInvalidIndex    = "invalid index; use a non-negative integer"
)

// ReplaceScheduleResponse carries the stored schedule after PUT.
type ReplaceScheduleResponse struct {
	Success         bool                   `json:"success" example:"true"`
	UpdatedSchedule []models.ScheduleEntry `json:"updatedSchedule"`
}

// AddScheduleResponse carries the stored entry after POST.
type AddScheduleResponse struct {
	Success         bool                 `json:"success" example:"true"`
	NewScheduleItem models.ScheduleEntry `json:"newScheduleItem"`
}

// scheduleRequest binds one entry; both fields are required.
type scheduleRequest struct {
	Day  string `json:"day" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// isScheduleValidation reports errors caused by bad client input.
func isScheduleValidation(err error) bool {
	return errors.Is(err, models.ErrInvalidDay) ||
		errors.Is(err, models.ErrInvalidTime) ||
		errors.Is(err, service.ErrScheduleFull)
}

// @Summary      Get cleaning schedule
// @Tags         schedule
// @Produce      json
// @Success      200  {array}   models.ScheduleEntry
// @Failure      500  {object}  map[string]string
// @Router       /api/schedule [get]
// @Security     BearerAuth
func (h *Handler) getSchedule(c *gin.Context) {
	entries, err := h.services.Schedule.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetSchedule, "schedule_list_failed", err)
		return
	}
	if entries == nil {
		entries = []models.ScheduleEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// @Summary      Replace cleaning schedule
// @Description  The body is the whole schedule; entries are stored in the given order.
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Param        body  body      []models.ScheduleEntry  true  "Full schedule"
// @Success      200   {object}  ReplaceScheduleResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/schedule [put]
// @Security     BearerAuth
func (h *Handler) replaceSchedule(c *gin.Context) {
	var entries []models.ScheduleEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	stored, err := h.services.Schedule.Replace(c.Request.Context(), entries)
	if err != nil {
		if isScheduleValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSaveSchedule, "schedule_replace_failed", err, "entries", len(entries))
		return
	}
	c.JSON(http.StatusOK, ReplaceScheduleResponse{Success: true, UpdatedSchedule: stored})
}

// @Summary      Delete schedule entry
// @Description  Later entries shift down by one.
// @Tags         schedule
// @Produce      json
// @Param        index  path      int  true  "0-based position"
// @Success      200    {object}  map[string]bool
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/schedule/{index} [delete]
// @Security     BearerAuth
func (h *Handler) deleteScheduleItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidIndex})
		return
	}
	if err := h.services.Schedule.Delete(c.Request.Context(), index); err != nil {
		if errors.Is(err, service.ErrScheduleIndexOutOfRange) {
			c.JSON(http.StatusNotFound, gin.H{"error": errIndexOutOfRange})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteSchedule, "schedule_delete_failed", err, "index", index)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Add schedule entry
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Param        body  body      models.ScheduleEntry  true  "New entry"
// @Success      200   {object}  AddScheduleResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/schedule [post]
// @Security     BearerAuth
func (h *Handler) addScheduleItem(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	e, err := h.services.Schedule.Add(c.Request.Context(), models.ScheduleEntry{Day: models.Weekday(req.Day), Time: req.Time})
	if err != nil {
		if isScheduleValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSaveSchedule, "schedule_add_failed", err, "day", req.Day, "time", req.Time)
		return
	}
	c.JSON(http.StatusOK, AddScheduleResponse{Success: true, NewScheduleItem: e})
}

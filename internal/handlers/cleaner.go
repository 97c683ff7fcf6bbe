package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errToggleCleaner   = "failed to toggle cleaner"
	errSetActive       = "failed to update active state"
	errGetState        = "failed to load state"
	errGetDashboard    = "failed to load dashboard"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// ToggleRequest is the payload of POST /api/cleaner/toggle.
type ToggleRequest struct {
	// Desired power state
	State *bool `json:"state" binding:"required" example:"true"`
}

// ToggleResponse reports the power state after a toggle.
type ToggleResponse struct {
	Success  bool `json:"success" example:"true"`
	NewState bool `json:"newState" example:"true"`
}

// ActiveRequest is the payload of POST /api/cleaner/active.
type ActiveRequest struct {
	// Whether scheduled cleanings may run
	Active *bool `json:"active" binding:"required" example:"false"`
}

// ActiveResponse reports the active flag after an update.
type ActiveResponse struct {
	Success        bool `json:"success" example:"true"`
	NewActiveState bool `json:"newActiveState" example:"false"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Dashboard snapshot
// @Description  Power and active flags, the last five on/off changes, time since the last cleaning and the number of captured images.
// @Tags         cleaner
// @Produce      json
// @Success      200  {object}  models.Dashboard
// @Failure      500  {object}  map[string]string
// @Router       /api/dashboard [get]
// @Security     BearerAuth
func (h *Handler) getDashboard(c *gin.Context) {
	d, err := h.services.Dashboard.Snapshot(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetDashboard, "dashboard_snapshot_failed", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary      Turn the cleaner on or off
// @Tags         cleaner
// @Accept       json
// @Produce      json
// @Param        body  body      ToggleRequest  true  "Desired state"
// @Success      200   {object}  ToggleResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/cleaner/toggle [post]
// @Security     BearerAuth
func (h *Handler) toggleCleaner(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Cleaner.SetPower(c.Request.Context(), *req.State)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errToggleCleaner, "cleaner_toggle_failed", err, "state", *req.State)
		return
	}
	c.JSON(http.StatusOK, ToggleResponse{Success: true, NewState: st.IsOn})
}

// @Summary      Arm or disarm the cleaner
// @Tags         cleaner
// @Accept       json
// @Produce      json
// @Param        body  body      ActiveRequest  true  "Desired active flag"
// @Success      200   {object}  ActiveResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/cleaner/active [post]
// @Security     BearerAuth
func (h *Handler) setActive(c *gin.Context) {
	var req ActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Cleaner.SetActive(c.Request.Context(), *req.Active)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSetActive, "cleaner_set_active_failed", err, "active", *req.Active)
		return
	}
	c.JSON(http.StatusOK, ActiveResponse{Success: true, NewActiveState: st.IsActive})
}

// @Summary      Get cleaner state
// @Tags         cleaner
// @Produce      json
// @Success      200  {object}  models.CleanerState
// @Failure      500  {object}  map[string]string
// @Router       /api/cleaner/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "cleaner_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

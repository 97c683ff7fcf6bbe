package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"solar_cleaner/internal/service"

	"github.com/gin-gonic/gin"
)

var (
	errFromInvalid = errors.New("invalid 'from' time; use RFC3339 or YYYY-MM-DD")
	errToInvalid   = errors.New("invalid 'to' time; use RFC3339 or YYYY-MM-DD")
	errRangeOrder  = errors.New("'from' must be <= 'to'")
)

// queryTimeLayouts are tried in order. span is how much time the text covers,
// so a bare date used as an upper bound includes that whole day.
var queryTimeLayouts = []struct {
	layout string
	span   time.Duration
}{
	{time.RFC3339, 0},
	{time.DateTime, 0},
	{time.DateOnly, 24 * time.Hour},
}

type eventsQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
	Type string `form:"type"`
}

func (q eventsQuery) filter() (service.LogFilter, error) {
	f := service.LogFilter{Type: strings.ToUpper(strings.TrimSpace(q.Type))}
	if q.From != "" {
		t, _, err := parseQueryTime(q.From)
		if err != nil {
			return f, errFromInvalid
		}
		f.From = t
	}
	if q.To != "" {
		t, span, err := parseQueryTime(q.To)
		if err != nil {
			return f, errToInvalid
		}
		if span > 0 {
			t = t.Add(span - time.Nanosecond)
		}
		f.To = t
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return f, errRangeOrder
	}
	return f, nil
}

// @Summary      List cleaner events
// @Description  Filter events by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive.
// @Tags         events
// @Produce      json
// @Param        from  query   string  false  "Start of range"  example(2024-05-01)
// @Param        to    query   string  false  "End of range. Date-only treated as end of day."  example(2024-05-31)
// @Param        type  query   string  false  "Event type"  Enums(POWER_ON,POWER_OFF,ACTIVATED,DEACTIVATED,SCHEDULED_START,AUTO_STOP)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/events [get]
// @Security     BearerAuth
func (h *Handler) getEvents(c *gin.Context) {
	var q eventsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}
	f, err := q.filter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.services.EventLog.List(c.Request.Context(), f)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load events", "events_list_failed", err,
			"from", f.From, "to", f.To, "type", f.Type)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(events), "events": events})
}

// parseQueryTime returns s in UTC together with the span of time it names.
func parseQueryTime(s string) (time.Time, time.Duration, error) {
	for _, l := range queryTimeLayouts {
		if t, err := time.Parse(l.layout, s); err == nil {
			return t.UTC(), l.span, nil
		}
	}
	return time.Time{}, 0, fmt.Errorf("unsupported time %q", s)
}

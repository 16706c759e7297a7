package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"aiot_brain/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/relvacode/iso8601"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339, ISO 8601 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339, ISO 8601 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// @Summary      Ask about a device
// @Description  Summarises the last 30 days per day and asks the language model to answer from that summary only.
// @Tags         analysis
// @Produce      json
// @Param        deviceId  query     string  true   "Device ID"
// @Param        q         query     string  false  "Question"
// @Success      200       {object}  service.AskResult
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Failure      502       {object}  map[string]string
// @Failure      503       {object}  map[string]string
// @Router       /ask [get]
func (h *Handler) ask(c *gin.Context) {
	req := service.AskRequest{
		Question: c.Query("q"),
		DeviceID: c.Query("deviceId"),
	}
	res, err := h.services.Analysis.Ask(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, "ask_failed", err, "device_id", req.DeviceID)
		return
	}
	c.JSON(http.StatusOK, res)
}

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List past analyses
// @Description  Zone-less bounds are read in the service timezone; a date-only 'to' covers that whole day.
// @Tags         analysis
// @Produce      json
// @Param        from      query     string  false  "Start of range"  example(2025-03-01)
// @Param        to        query     string  false  "End of range"    example(2025-03-31)
// @Param        deviceId  query     string  false  "Device ID"
// @Success      200       {object}  map[string]interface{}  "count, analyses"
// @Failure      400       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/analyses [get]
func (h *Handler) listAnalyses(c *gin.Context) {
	var (
		from, to time.Time
		err      error
	)
	if qs := c.Query("from"); qs != "" {
		if from, err = parseQueryTime(qs, h.loc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		if to, err = parseQueryTime(qs, h.loc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.In(h.loc).AddDate(0, 0, 1).Add(-time.Nanosecond).UTC()
		}
	}

	records, err := h.services.Journal.List(c.Request.Context(), service.JournalFilter{
		From:     from,
		To:       to,
		DeviceID: c.Query("deviceId"),
	})
	if err != nil {
		h.respondError(c, "analyses_list_failed", err, "from", from, "to", to)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(records),
		"analyses": records,
	})
}

// parseQueryTime reads zone-less dates and date-times in loc; ISO 8601 values
// keep their own offset. The result is in UTC.
func parseQueryTime(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{layoutDate, layoutDateTime} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	if t, err := iso8601.ParseString(s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"ISO 8601 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}

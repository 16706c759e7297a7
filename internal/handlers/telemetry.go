package handlers

import (
	"net/http"
	"strconv"

	"aiot_brain/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Latest readings
// @Description  Raw temperature readings of the last 12 hours, as returned by the platform.
// @Tags         telemetry
// @Produce      json
// @Param        id   path      string  true  "Device ID"
// @Success      200  {object}  models.TimeSeries
// @Failure      500  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/device/{id}/latest [get]
func (h *Handler) latest(c *gin.Context) {
	id := c.Param("id")
	series, err := h.services.Telemetry.Latest(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "latest_failed", err, "device_id", id)
		return
	}
	c.JSON(http.StatusOK, series)
}

// @Summary      Daily history
// @Description  One platform-averaged point per local day, today included.
// @Tags         telemetry
// @Produce      json
// @Param        id    path      string  true   "Device ID"
// @Param        key   query     string  false  "Telemetry key"  default(temperature)
// @Param        days  query     int     false  "Days, 1..365"   default(7)
// @Success      200   {object}  models.TimeSeries
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/device/{id}/history [get]
func (h *Handler) history(c *gin.Context) {
	id := c.Param("id")
	days := service.DefaultDays
	if s := c.Query("days"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'days'; expected an integer between 1 and 365"})
			return
		}
		days = v
	}

	series, err := h.services.Telemetry.History(c.Request.Context(), id, service.HistoryParams{
		Key:  c.DefaultQuery("key", service.DefaultKey),
		Days: days,
	})
	if err != nil {
		h.respondError(c, "history_failed", err, "device_id", id, "days", days)
		return
	}
	c.JSON(http.StatusOK, series)
}

// @Summary      Temperature statistics
// @Description  Today, last 7 days, per-day breakdown (newest first) and 30-day average.
// @Tags         telemetry
// @Produce      json
// @Param        id   path      string  true  "Device ID"
// @Success      200  {object}  models.StatsReport
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/device/{id}/stats [get]
func (h *Handler) stats(c *gin.Context) {
	id := c.Param("id")
	report, err := h.services.Telemetry.Stats(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "stats_failed", err, "device_id", id)
		return
	}
	c.JSON(http.StatusOK, report)
}

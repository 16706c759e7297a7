package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateDeviceRequest is the payload of POST /api/device.
type CreateDeviceRequest struct {
	Name string `json:"name" binding:"required" example:"MyTempSensor"`
}

// @Summary      List devices
// @Tags         devices
// @Produce      json
// @Success      200  {array}   models.Device
// @Failure      500  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/devices [get]
func (h *Handler) listDevices(c *gin.Context) {
	devices, err := h.services.Devices.ListDevices(c.Request.Context())
	if err != nil {
		h.respondError(c, "devices_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

// @Summary      Create device
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        body  body      CreateDeviceRequest  true  "Device name"
// @Success      200   {object}  models.Device
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/device [post]
func (h *Handler) createDevice(c *gin.Context) {
	var req CreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	d, err := h.services.Devices.CreateDevice(c.Request.Context(), req.Name)
	if err != nil {
		h.respondError(c, "device_create_failed", err, "name", req.Name)
		return
	}
	c.JSON(http.StatusOK, d)
}

package handlers

import (
	"errors"
	"net/http"

	"aiot_brain/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errInternal        = "internal error"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(requestIDKey)}, kv...)
		if httpCode >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondError maps a service error kind to its HTTP status and message.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code, msg := classifyError(err)
	h.logAndJSONError(c, code, msg, logKey, err, kv...)
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrBadRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNoData):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrAuth):
		return http.StatusInternalServerError, service.ErrAuth.Error()
	case errors.Is(err, service.ErrCreateDevice):
		return http.StatusInternalServerError, service.ErrCreateDevice.Error()
	case errors.Is(err, service.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, service.ErrServiceUnavailable.Error()
	case errors.Is(err, service.ErrUpstreamFetch):
		return http.StatusBadGateway, service.ErrUpstreamFetch.Error()
	case errors.Is(err, service.ErrUpstreamGeneration):
		// Generation failures expose their cause.
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, errInternal
	}
}

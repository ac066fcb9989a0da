package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/marcodesign21/chaset-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInternal    = "internal server error"
	errInvalidBody = "invalid body: "
)

// errorResponse is the body of every non-2xx JSON reply.
type errorResponse struct {
	Error string `json:"error" example:"invalid credentials"`
}

// statusFor maps service errors onto an HTTP status and a client-safe message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, service.ErrInvalidCredentials.Error()
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, errInternal
	}
}

// writeError logs err under logKey and writes the mapped {error} reply.
// Store failures log at error level, client mistakes at info.
func (h *Handler) writeError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code, msg := statusFor(err)
	fields := append([]interface{}{"err", err, "status", code, "request_id", requestID(c)}, kv...)
	if code >= http.StatusInternalServerError {
		h.log.Errorw(logKey, fields...)
	} else {
		h.log.Infow(logKey, fields...)
	}
	c.JSON(code, errorResponse{Error: msg})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled, true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow("bad_request_body", "err", err, "path", c.Request.URL.Path, "request_id", requestID(c))
		c.JSON(http.StatusBadRequest, errorResponse{Error: errInvalidBody + err.Error()})
		return false
	}
	return true
}

// pathID parses a positive integer path parameter or writes a 400.
func (h *Handler) pathID(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		h.log.Infow("bad_path_param", "param", name, "value", raw, "request_id", requestID(c))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid " + name + ": " + strconv.Quote(raw)})
		return 0, false
	}
	return id, true
}

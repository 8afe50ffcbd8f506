package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Payload any    `json:"payload"`
}

func respond(c *gin.Context, code int, status, message string, payload any) {
	c.JSON(code, envelope{Status: status, Message: message, Payload: payload})
}

func success(c *gin.Context, code int, message string, payload any) {
	respond(c, code, statusSuccess, message, payload)
}

func fail(c *gin.Context, code int, message string) {
	respond(c, code, statusError, message, nil)
}

// internalError answers with the envelope and leaves err on the context for
// the error handler to log.
func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	fail(c, http.StatusInternalServerError, "Internal server error")
}

// cachedSuccess replays a stored payload without decoding it.
func cachedSuccess(c *gin.Context, message string, payload []byte) {
	success(c, http.StatusOK, message, json.RawMessage(payload))
}

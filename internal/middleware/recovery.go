package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type errorBody struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler turns panics and errors attached with c.Error into a 500
// response, unless the handler already wrote one.
func ErrorHandler(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("panic: %v", rec)
				log.WithFields(logrus.Fields{
					"request_id": GetRequestID(c),
					"path":       c.Request.URL.Path,
				}).WithError(err).Error("recovered from panic")
				abortInternal(c, err)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		log.WithFields(logrus.Fields{
			"request_id": GetRequestID(c),
			"path":       c.Request.URL.Path,
		}).WithError(err).Error("request error")

		if !c.Writer.Written() {
			abortInternal(c, err)
		}
	}
}

func abortInternal(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": errorBody{
			Message: "Internal Server Error",
			Details: err.Error(),
		},
	})
}

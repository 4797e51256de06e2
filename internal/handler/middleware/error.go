package middleware

import (
	"log/slog"
	"net/http"

	"reservas-backend/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler is the last line before the wire: handlers that abort
// through httperr have already rendered their envelope, so this only
// fires for errors that reached the context without a response. It logs
// the real cause and answers with the shared envelope, never the error
// text itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		// Newest error wins; handlers attach at most one public error
		for i := len(c.Errors) - 1; i >= 0; i-- {
			ginErr := c.Errors[i]
			if !ginErr.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := ginErr.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}

		if len(c.Errors) > 0 {
			slog.Error("request failed without a rendered response",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", c.Errors.Last().Error())
		}

		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}

		resp := httperr.Response{Status: http.StatusInternalServerError}
		resp.Error.Message = "Internal server error"
		c.JSON(http.StatusInternalServerError, resp)
	}
}

// CustomRecovery converts panics into the same envelope instead of
// gin's default HTML page, keeping stack details out of the response.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"

				c.JSON(http.StatusInternalServerError, resp)
				c.Abort()
			}
		}()
		c.Next()
	}
}

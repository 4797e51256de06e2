package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every failure on this API shares:
// {"error":{"message":...}} plus an optional detail object. The 409
// booking collision is the only path that fills Detail today, carrying
// the blocking reservations under the "conflito" key.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError renders the envelope and records the underlying error
// on the context so the logging middleware sees the real cause. msg is
// what the client gets; err never reaches the wire.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithConflict reports a booking collision, attaching the blocking
// reservations in the detail shape the original clients expect.
func AbortWithConflict(c *gin.Context, err error, msg string, conflicts any) {
	AbortWithError(c, http.StatusConflict, err, msg, gin.H{"conflito": conflicts})
}

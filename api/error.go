package api

import (
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

var (
	errorInternalServer       = errorResponse{"internal server error"}
	errorInvalidParameters    = errorResponse{"invalid parameters"}
	errorAuthenticationFailed = errorResponse{"authentication failed"}
	errorInsufficientProfile  = errorResponse{"insufficient permissions"}
	errorResourceNotFound     = errorResponse{"resource not found"}
)

// abortWithEncoding writes the error response and stops the handler
// chain. Underlying causes go to the gin error log, never to the
// caller.
func abortWithEncoding(c *gin.Context, statusCode int, resp errorResponse, errs ...error) {
	for _, err := range errs {
		c.Error(err)
	}
	c.AbortWithStatusJSON(statusCode, resp)
}

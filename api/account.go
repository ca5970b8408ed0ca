package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) authCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Auth route working"})
}

// authProfile echoes the verified claims back to the caller. It needs a
// valid token but no particular permission.
func (s *Server) authProfile(c *gin.Context) {
	claims, ok := c.MustGet(claimsContextKey).(*TokenClaims)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subject":     claims.Subject,
		"permissions": claims.Permissions,
	})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listTags(c *gin.Context) {
	tags, err := s.tags.ListTags()
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// The tag write routes are accepted no-ops: they are admin-gated and
// acknowledged but have no persisted effect yet.

func (s *Server) createTag(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Create tag route"})
}

func (s *Server) deleteTag(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Delete tag route"})
}

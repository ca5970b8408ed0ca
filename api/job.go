package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listJobs(c *gin.Context) {
	jobs, err := s.jobs.ListJobs()
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (s *Server) searchJobs(c *gin.Context) {
	var params struct {
		Query string `form:"query"`
	}

	if err := c.BindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	jobs, err := s.jobs.SearchJobs(params.Query)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

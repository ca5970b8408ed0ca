package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rpetter01/bioinformatics-hub/store"
)

func (s *Server) getAnalytics(c *gin.Context) {
	analytics, err := s.analytics.GetAnalytics()
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

func (s *Server) recordPageView(c *gin.Context) {
	if err := s.analytics.RecordPageView(); err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) recordResourceClick(c *gin.Context) {
	var params struct {
		ResourceID   string `json:"resourceId"`
		ResourceName string `json:"resourceName"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	if err := s.analytics.RecordResourceClick(params.ResourceID, params.ResourceName); err != nil {
		if errors.Is(err, store.ErrMissingClickFields) {
			abortWithEncoding(c, http.StatusBadRequest, errorResponse{err.Error()})
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) recordSearch(c *gin.Context) {
	var params struct {
		Term string `json:"term"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	if err := s.analytics.RecordSearch(params.Term); err != nil {
		if errors.Is(err, store.ErrMissingSearchTerm) {
			abortWithEncoding(c, http.StatusBadRequest, errorResponse{err.Error()})
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) recordStoreButtonClick(c *gin.Context) {
	if err := s.analytics.RecordStoreButtonClick(); err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

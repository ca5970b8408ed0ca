package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rpetter01/bioinformatics-hub/store"
)

func (s *Server) listResources(c *gin.Context) {
	resources, err := s.resources.ListResources()
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	c.JSON(http.StatusOK, resources)
}

func (s *Server) getResource(c *gin.Context) {
	resource, err := s.resources.GetResource(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrResourceNotFound) {
			abortWithEncoding(c, http.StatusNotFound, errorResourceNotFound)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (s *Server) createResource(c *gin.Context) {
	var params struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
		URL         string   `json:"url"`
		Featured    bool     `json:"featured"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	resource, err := s.resources.CreateResource(store.CreateResourceParams{
		Name:        params.Name,
		Description: params.Description,
		Category:    params.Category,
		Tags:        params.Tags,
		URL:         params.URL,
		Featured:    params.Featured,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrMissingResourceFields), errors.Is(err, store.ErrInvalidCategory):
			abortWithEncoding(c, http.StatusBadRequest, errorResponse{err.Error()})
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	c.JSON(http.StatusCreated, resource)
}

func (s *Server) updateResource(c *gin.Context) {
	// pointer fields distinguish an absent field from an explicit value,
	// so a partial update never clears what it does not mention
	var params struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Tags        []string `json:"tags"`
		URL         *string  `json:"url"`
		Featured    *bool    `json:"featured"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	resource, err := s.resources.UpdateResource(c.Param("id"), store.UpdateResourceParams{
		Name:        params.Name,
		Description: params.Description,
		Category:    params.Category,
		Tags:        params.Tags,
		URL:         params.URL,
		Featured:    params.Featured,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrResourceNotFound):
			abortWithEncoding(c, http.StatusNotFound, errorResourceNotFound)
		case errors.Is(err, store.ErrMissingResourceFields), errors.Is(err, store.ErrInvalidCategory):
			abortWithEncoding(c, http.StatusBadRequest, errorResponse{err.Error()})
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	c.JSON(http.StatusOK, resource)
}

func (s *Server) deleteResource(c *gin.Context) {
	if err := s.resources.DeleteResource(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrResourceNotFound) {
			abortWithEncoding(c, http.StatusNotFound, errorResourceNotFound)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource deleted successfully"})
}

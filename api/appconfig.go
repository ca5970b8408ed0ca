package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rpetter01/bioinformatics-hub/schema"
)

func (s *Server) getStoreButton(c *gin.Context) {
	button, err := s.config.GetStoreButton()
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	c.JSON(http.StatusOK, button)
}

// updateStoreButton replaces the whole store button object. All three
// fields are required: this is not a merge, so "enabled": false must
// be stated explicitly.
func (s *Server) updateStoreButton(c *gin.Context) {
	var params struct {
		Text    *string `json:"text"`
		URL     *string `json:"url"`
		Enabled *bool   `json:"enabled"`
	}

	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	if params.Text == nil || params.URL == nil || params.Enabled == nil {
		abortWithEncoding(c, http.StatusBadRequest, errorResponse{"missing required fields (text, url, enabled)"})
		return
	}

	button, err := s.config.SetStoreButton(schema.StoreButton{
		Text:    *params.Text,
		URL:     *params.URL,
		Enabled: *params.Enabled,
	})
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	c.JSON(http.StatusOK, button)
}

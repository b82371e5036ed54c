package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mwantia/taskfilter/pkg/db/models"
	"github.com/mwantia/taskfilter/pkg/filter"
)

type viewRequest struct {
	Filters     []filter.Filter `json:"filters"`
	Description string          `json:"description"`
}

type viewResponse struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Filters     []filter.Filter `json:"filters"`
	Summary     string          `json:"summary"`
}

func newViewResponse(v models.View) viewResponse {
	fs := filter.Deserialize(v.Filters)
	return viewResponse{
		Name:        v.Name,
		Description: v.Description,
		Filters:     fs,
		Summary:     filter.Summary(len(fs)),
	}
}

// tenant resolves the organization or aborts with 401.
func (s *Server) tenant(c *gin.Context) (string, bool) {
	org, ok := s.cfg.Tenants.Resolve(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing organization"})
	}
	return org, ok
}

func (s *Server) listViews(c *gin.Context) {
	org, ok := s.tenant(c)
	if !ok {
		return
	}

	views, err := s.cfg.Store.ListViews(c.Request.Context(), org)
	if err != nil {
		s.log.Error("Failed to list views: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list views"})
		return
	}

	resp := make([]viewResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, newViewResponse(v))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getView(c *gin.Context) {
	org, ok := s.tenant(c)
	if !ok {
		return
	}

	view, err := s.cfg.Store.GetView(c.Request.Context(), org, c.Param("name"))
	if isNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "view not found"})
		return
	}
	if err != nil {
		s.log.Error("Failed to load view: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load view"})
		return
	}
	c.JSON(http.StatusOK, newViewResponse(*view))
}

// saveView stores the valid filters of the request body; invalid ones are
// dropped and reported.
func (s *Server) saveView(c *gin.Context) {
	org, ok := s.tenant(c)
	if !ok {
		return
	}

	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid view payload"})
		return
	}

	valid, dropped := filter.Sanitize(req.Filters)
	view := &models.View{
		OrganizationID: org,
		Name:           c.Param("name"),
		Filters:        filter.Serialize(valid),
		Description:    req.Description,
	}
	if err := s.cfg.Store.SaveView(c.Request.Context(), view); err != nil {
		s.log.Error("Failed to save view: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save view"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"view":    newViewResponse(*view),
		"dropped": dropped,
	})
}

func (s *Server) deleteView(c *gin.Context) {
	org, ok := s.tenant(c)
	if !ok {
		return
	}

	err := s.cfg.Store.DeleteView(c.Request.Context(), org, c.Param("name"))
	if isNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "view not found"})
		return
	}
	if err != nil {
		s.log.Error("Failed to delete view: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete view"})
		return
	}
	c.Status(http.StatusNoContent)
}

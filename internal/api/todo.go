package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mwantia/taskfilter/pkg/db/store"
	"github.com/mwantia/taskfilter/pkg/filter"
)

// requestFilters reads the filter list of a request. A view parameter loads
// a saved view instead. Bad payloads never fail the request; they degrade to
// fewer or no filters.
func (s *Server) requestFilters(c *gin.Context, org string) []filter.Filter {
	q := c.Request.URL.Query()

	if name := q.Get("view"); name != "" {
		view, err := s.cfg.Store.GetView(c.Request.Context(), org, name)
		if err != nil {
			s.log.Debug("Ignoring view '%s': %v", name, err)
			return []filter.Filter{}
		}
		fs, _ := filter.Sanitize(filter.Deserialize(view.Filters))
		return fs
	}

	fs, err := filter.FromValues(q)
	if err != nil {
		s.log.Warn("Degraded filter payload: %v", err)
	}
	return fs
}

func (s *Server) listTodos(c *gin.Context) {
	org, ok := s.cfg.Tenants.Resolve(c)
	if !ok {
		c.JSON(http.StatusOK, []any{})
		return
	}

	todos, err := s.cfg.Store.ListTodos(c.Request.Context(), org, s.requestFilters(c, org))
	if err != nil {
		s.log.Error("Failed to list todos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list todos"})
		return
	}
	c.JSON(http.StatusOK, todos)
}

func (s *Server) countTodos(c *gin.Context) {
	org, ok := s.cfg.Tenants.Resolve(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"count": 0})
		return
	}

	count, err := s.cfg.Store.CountTodos(c.Request.Context(), org, s.requestFilters(c, org))
	if err != nil {
		s.log.Error("Failed to count todos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count todos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

package api

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultTenantHeader carries the organization id of a request.
const DefaultTenantHeader = "X-Organization-ID"

// TenantResolver yields the organization a request is scoped to.
type TenantResolver interface {
	Resolve(c *gin.Context) (string, bool)
}

// HeaderTenantResolver reads the organization id from a request header.
type HeaderTenantResolver struct {
	Header string
}

func (r HeaderTenantResolver) Resolve(c *gin.Context) (string, bool) {
	header := r.Header
	if header == "" {
		header = DefaultTenantHeader
	}
	org := strings.TrimSpace(c.GetHeader(header))
	return org, org != ""
}

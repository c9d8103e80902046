package request

import (
	"net/url"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BaseURL is the absolute URL of the current request without its query.
func BaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	proto := strings.ToLower(strings.TrimSpace(strings.Split(c.GetHeader("X-Forwarded-Proto"), ",")[0]))
	if proto == "http" || proto == "https" {
		scheme = proto
	}

	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path}
	return u.String()
}

// ListRequest reads the listing parameters of the current request.
func ListRequest(c *gin.Context) pagination.Request {
	return pagination.FromQuery(BaseURL(c), c.Request.URL.Query())
}

// ID returns the :id path parameter when it is a well-formed UUID.
func ID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if err := uuid.Validate(id); err != nil {
		return "", false
	}
	return id, true
}

package request

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestBaseURLDropsQuery(t *testing.T) {
	c := newContext("http://catalog.local/api/products?page=2&search=tv")
	assert.Equal(t, "http://catalog.local/api/products", BaseURL(c))
}

func TestBaseURLScheme(t *testing.T) {
	c := newContext("http://catalog.local/api/products")
	c.Request.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://catalog.local/api/products", BaseURL(c))

	c = newContext("http://catalog.local/api/products")
	c.Request.Header.Set("X-Forwarded-Proto", "HTTPS, http")
	assert.Equal(t, "https://catalog.local/api/products", BaseURL(c))
}

func TestBaseURLIgnoresUnknownForwardedScheme(t *testing.T) {
	for _, proto := range []string{"javascript", "ftp, https", "evil://x"} {
		c := newContext("http://catalog.local/api/products")
		c.Request.Header.Set("X-Forwarded-Proto", proto)
		assert.Equal(t, "http://catalog.local/api/products", BaseURL(c), proto)
	}

	c := newContext("http://catalog.local/api/products")
	c.Request.TLS = &tls.ConnectionState{}
	c.Request.Header.Set("X-Forwarded-Proto", "gopher")
	assert.Equal(t, "https://catalog.local/api/products", BaseURL(c))
}

func TestListRequest(t *testing.T) {
	c := newContext("http://catalog.local/api/categories?page=3&per_page=abc&sort_by=name")
	req := ListRequest(c)

	assert.Equal(t, float64(3), req.Page)
	assert.True(t, req.PerPage != req.PerPage, "unparseable per_page must surface as NaN")
	assert.Equal(t, "name", req.SortBy)
	assert.Equal(t, "desc", req.SortDir)
	assert.Equal(t, "http://catalog.local/api/categories", req.BasePath)
	assert.Equal(t, "3", req.Query.Get("page"))
}

func TestID(t *testing.T) {
	c := newContext("http://catalog.local/api/categories/x")

	c.Params = gin.Params{{Key: "id", Value: "4f5a2c1e-8d7b-4e21-9c3a-0b6f1d2e3a4b"}}
	id, ok := ID(c)
	assert.True(t, ok)
	assert.Equal(t, "4f5a2c1e-8d7b-4e21-9c3a-0b6f1d2e3a4b", id)

	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	_, ok = ID(c)
	assert.False(t, ok)
}

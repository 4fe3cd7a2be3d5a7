package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akoudje/appfbo-backend/internal/config"
	"github.com/akoudje/appfbo-backend/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		Upload: config.UploadConfig{Dir: t.TempDir()},
	}
	return SetupRouter(cfg, &provider.Container{Config: cfg})
}

func TestSetupRouterHealthAndNoRoute(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
	req.Header.Set("Accept-Language", "en")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status_code":404`)
	assert.Contains(t, w.Body.String(), "Route not found")
}

func TestAdminPermissionCatalog(t *testing.T) {
	r := newTestRouter(t)
	items := buildAdminPermissionCatalog(r)
	require.NotEmpty(t, items)

	index := make(map[string]string, len(items))
	for _, item := range items {
		index[item.Permission] = item.Module
	}
	assert.Equal(t, "orders", index["POST:/admin/orders/:id/pay"])
	assert.Equal(t, "products", index["POST:/admin/products/import"])
	assert.Equal(t, "grade-discounts", index["PUT:/admin/grade-discounts/:grade"])
	assert.Equal(t, "authz", index["GET:/admin/authz/roles"])
	_, hasLogin := index["POST:/admin/login"]
	assert.False(t, hasLogin)
}

func TestDeriveAdminPermissionModule(t *testing.T) {
	cases := map[string]string{
		"":                         "system",
		"/admin":                   "admin",
		"/admin/stats":             "stats",
		"/admin/authz/roles/:role": "authz",
		"/public/products":         "public",
	}
	for object, want := range cases {
		if got := deriveAdminPermissionModule(object); got != want {
			t.Fatalf("deriveAdminPermissionModule(%q) = %q, want %q", object, got, want)
		}
	}
}

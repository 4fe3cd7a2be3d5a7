package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akoudje/appfbo-backend/internal/authz"
	"github.com/akoudje/appfbo-backend/internal/config"
	"github.com/akoudje/appfbo-backend/internal/http/response"
	"github.com/akoudje/appfbo-backend/internal/models"
	"github.com/akoudje/appfbo-backend/internal/repository"
	"github.com/akoudje/appfbo-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": response.RequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

type authFixture struct {
	db    *gorm.DB
	auth  *service.AuthService
	authz *authz.Service
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	authzService, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	cfg := &config.Config{JWT: config.JWTConfig{SecretKey: "router-test-secret", ExpireHours: 1}}
	return &authFixture{
		db:    db,
		auth:  service.NewAuthService(cfg, repository.NewAdminRepository(db)),
		authz: authzService,
	}
}

func (f *authFixture) createAdmin(t *testing.T, username string, isSuper bool) (*models.Admin, string) {
	t.Helper()
	admin := &models.Admin{Username: username, PasswordHash: "x", IsSuper: isSuper}
	if err := f.db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	token, _, err := f.auth.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}
	return admin, token
}

func (f *authFixture) engine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/v1/admin", JWTAuthMiddleware("router-test-secret", f.auth), AdminRBACMiddleware(f.authz))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status_code": 0}) }
	g.GET("/orders", ok)
	g.POST("/products", ok)
	g.POST("/orders/:id/pay", ok)
	return r
}

func callStatusCode(t *testing.T, r http.Handler, method, path, token string) int {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode
}

func TestJWTAuthMiddlewareRevokedToken(t *testing.T) {
	f := newAuthFixture(t)
	admin, token := f.createAdmin(t, "root", true)
	r := f.engine()

	if code := callStatusCode(t, r, http.MethodGet, "/api/v1/admin/orders", token); code != 0 {
		t.Fatalf("valid token want 0 got %d", code)
	}
	if code := callStatusCode(t, r, http.MethodGet, "/api/v1/admin/orders", "garbage"); code != 401 {
		t.Fatalf("garbage token want 401 got %d", code)
	}

	if err := f.db.Model(&models.Admin{}).Where("id = ?", admin.ID).Update("token_version", 1).Error; err != nil {
		t.Fatalf("bump token version failed: %v", err)
	}
	if code := callStatusCode(t, r, http.MethodGet, "/api/v1/admin/orders", token); code != 401 {
		t.Fatalf("revoked token want 401 got %d", code)
	}
}

func TestAdminRBACMiddlewareRoles(t *testing.T) {
	f := newAuthFixture(t)
	auditor, auditorToken := f.createAdmin(t, "auditor", false)
	billing, billingToken := f.createAdmin(t, "billing", false)
	_, noRoleToken := f.createAdmin(t, "nobody", false)
	if err := f.authz.SetAdminRoles(auditor.ID, []string{"readonly_auditor"}); err != nil {
		t.Fatalf("set auditor roles failed: %v", err)
	}
	if err := f.authz.SetAdminRoles(billing.ID, []string{"billing_operator"}); err != nil {
		t.Fatalf("set billing roles failed: %v", err)
	}
	r := f.engine()

	cases := []struct {
		name   string
		token  string
		method string
		path   string
		want   int
	}{
		{"auditor reads orders", auditorToken, http.MethodGet, "/api/v1/admin/orders", 0},
		{"auditor cannot create product", auditorToken, http.MethodPost, "/api/v1/admin/products", 403},
		{"auditor cannot pay", auditorToken, http.MethodPost, "/api/v1/admin/orders/abc/pay", 403},
		{"billing pays", billingToken, http.MethodPost, "/api/v1/admin/orders/abc/pay", 0},
		{"billing cannot create product", billingToken, http.MethodPost, "/api/v1/admin/products", 403},
		{"no role denied", noRoleToken, http.MethodGet, "/api/v1/admin/orders", 403},
	}
	for _, tc := range cases {
		if got := callStatusCode(t, r, tc.method, tc.path, tc.token); got != tc.want {
			t.Fatalf("%s: want %d got %d", tc.name, tc.want, got)
		}
	}
}

package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akoudje/appfbo-backend/internal/config"
	"github.com/akoudje/appfbo-backend/internal/models"
	"github.com/akoudje/appfbo-backend/internal/provider"
	"github.com/akoudje/appfbo-backend/internal/queue"
	"github.com/akoudje/appfbo-backend/internal/repository"
	"github.com/akoudje/appfbo-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func newPublicTestEngine(t *testing.T, captcha config.CaptchaConfig) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:public_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
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

	cfg := &config.Config{
		Billing: config.BillingConfig{WhatsappNumbers: []string{"+2250506025071"}},
		Delivery: config.DeliveryConfig{
			FeeModes: []string{"LIVRAISON"},
			Tiers:    []config.DeliveryTier{{MaxWeightKg: "1", Fee: 1000}, {MaxWeightKg: "3", Fee: 2000}},
			AboveFee: 5000,
		},
		Captcha: captcha,
	}
	queueClient, _ := queue.NewClient(nil)
	preorderRepo := repository.NewPreorderRepository(db)
	productRepo := repository.NewProductRepository(db)
	discounts := service.NewDiscountService(repository.NewGradeDiscountRepository(db))
	pricing := service.NewPricingService(preorderRepo, discounts, cfg.Delivery)

	container := &provider.Container{
		Config:          cfg,
		QueueClient:     queueClient,
		PreorderRepo:    preorderRepo,
		ProductRepo:     productRepo,
		CaptchaService:  service.NewCaptchaService(cfg.Captcha),
		DiscountService: discounts,
		PricingService:  pricing,
		PreorderService: service.NewPreorderService(preorderRepo, productRepo, repository.NewFboRepository(db), pricing, queueClient, cfg.Billing.WhatsappNumbers, config.PreorderConfig{DraftTTLHours: 72, SweepBatchSize: 100, MaxLineQty: 50}),
		ProductService:  service.NewProductService(productRepo, 0),
	}
	h := New(container)

	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/public/products", h.ListProducts)
	api.GET("/public/products/:id", h.GetProduct)
	api.GET("/public/captcha", h.GetImageCaptcha)
	api.GET("/public/captcha/config", h.GetCaptchaConfig)
	api.POST("/preorders/draft", h.CreateDraft)
	api.PUT("/preorders/:id/items", h.SetItems)
	api.GET("/preorders/:id/summary", h.GetSummary)
	api.POST("/preorders/:id/submit", h.Submit)
	return r, db
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept-Language", "en")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s: unexpected http status %d", method, path, w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v, body=%s", err, w.Body.String())
	}
	return resp
}

func seedProduct(t *testing.T, db *gorm.DB, sku string, price int64, cc, weight string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		SKU:       sku,
		Name:      "Produit " + sku,
		BasePrice: price,
		CC:        models.MustDecimal3(cc),
		WeightKg:  models.MustDecimal3(weight),
		Active:    active,
		StockQty:  5,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

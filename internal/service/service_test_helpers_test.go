package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/akoudje/appfbo-backend/internal/config"
	"github.com/akoudje/appfbo-backend/internal/models"
	"github.com/akoudje/appfbo-backend/internal/queue"
	"github.com/akoudje/appfbo-backend/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var testBillingNumbers = []string{"+225 05 06 02 50 71", "+2250700000000"}

const testMaxLineQty = 500

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func defaultDeliveryConfig() config.DeliveryConfig {
	return config.DeliveryConfig{
		FeeModes: []string{"LIVRAISON"},
		Tiers: []config.DeliveryTier{
			{MaxWeightKg: "1", Fee: 1000},
			{MaxWeightKg: "3", Fee: 2000},
			{MaxWeightKg: "5", Fee: 3000},
		},
		AboveFee: 5000,
	}
}

type serviceFixture struct {
	db        *gorm.DB
	discounts *DiscountService
	pricing   *PricingService
	preorders *PreorderService
	products  *ProductService
	clock     time.Time
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	db := setupServiceTestDB(t)
	preorderRepo := repository.NewPreorderRepository(db)
	productRepo := repository.NewProductRepository(db)
	discounts := NewDiscountService(repository.NewGradeDiscountRepository(db))
	pricing := NewPricingService(preorderRepo, discounts, defaultDeliveryConfig())
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client: %v", err)
	}
	preorders := NewPreorderService(preorderRepo, productRepo, repository.NewFboRepository(db), pricing, queueClient, testBillingNumbers, config.PreorderConfig{
		DraftTTLHours:  72,
		SweepBatchSize: 2,
		MaxLineQty:     testMaxLineQty,
	})

	f := &serviceFixture{
		db:        db,
		discounts: discounts,
		pricing:   pricing,
		preorders: preorders,
		products:  NewProductService(productRepo, 0),
		clock:     time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
	preorders.now = func() time.Time { return f.clock }
	return f
}

func (f *serviceFixture) createProduct(t *testing.T, sku string, price int64, cc, weight string) *models.Product {
	t.Helper()
	product := &models.Product{
		SKU:       sku,
		Name:      "Produit " + sku,
		BasePrice: price,
		CC:        models.MustDecimal3(cc),
		WeightKg:  models.MustDecimal3(weight),
		Active:    true,
	}
	if err := f.db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func (f *serviceFixture) setDiscount(t *testing.T, grade string, percent string) {
	t.Helper()
	if _, err := f.discounts.Upsert(grade, decimal.RequireFromString(percent)); err != nil {
		t.Fatalf("upsert discount failed: %v", err)
	}
}

func (f *serviceFixture) createDraft(t *testing.T, number, grade, deliveryMode string) *models.Preorder {
	t.Helper()
	preorder, err := f.preorders.CreateDraft(CreateDraftInput{
		FboNumber:    number,
		FullName:     "Awa Kone",
		Grade:        grade,
		PointOfSale:  "Cocody",
		PaymentMode:  "MOBILE_MONEY",
		DeliveryMode: deliveryMode,
	})
	if err != nil {
		t.Fatalf("create draft failed: %v", err)
	}
	return preorder
}

func (f *serviceFixture) mustPercent(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("parse percent failed: %v", err)
	}
	return d
}

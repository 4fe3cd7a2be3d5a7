package repository

import (
	"testing"

	"github.com/akoudje/appfbo-backend/internal/models"
)

func TestProductRepositoryListPublicOnlyActive(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)

	aloe := createTestProduct(t, db, "ALOE-1", 12000, "0.081", "1.100")
	aloe.Category = "boissons"
	aloe.StockQty = 5
	if err := repo.Update(aloe); err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	hidden := createTestProduct(t, db, "ALOE-2", 9000, "0.050", "0.300")
	if err := db.Model(&models.Product{}).Where("id = ?", hidden.ID).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	createTestProduct(t, db, "BEE-1", 7000, "0.040", "0.200")

	items, total, err := repo.ListPublic(ProductPublicFilter{Page: 1, PageSize: 24, Search: "aloe"})
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].SKU != "ALOE-1" {
		t.Fatalf("unexpected search result total=%d items=%+v", total, items)
	}

	inStock := true
	items, total, err = repo.ListPublic(ProductPublicFilter{Page: 1, PageSize: 24, InStock: &inStock, Category: "boissons"})
	if err != nil || total != 1 || items[0].ID != aloe.ID {
		t.Fatalf("unexpected in-stock result total=%d err=%v", total, err)
	}

	outOfStock := false
	_, total, err = repo.ListPublic(ProductPublicFilter{Page: 1, PageSize: 24, InStock: &outOfStock})
	if err != nil || total != 1 {
		t.Fatalf("expected one active product out of stock, total=%d err=%v", total, err)
	}
}

func TestProductRepositoryListAdminOrdersActiveFirst(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)

	inactive := createTestProduct(t, db, "A-INACTIVE", 100, "0", "0")
	if err := db.Model(&models.Product{}).Where("id = ?", inactive.ID).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	createTestProduct(t, db, "Z-ACTIVE", 100, "0", "0")

	items, err := repo.ListAdmin(ProductAdminFilter{Take: 200})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if len(items) != 2 || items[0].SKU != "Z-ACTIVE" {
		t.Fatalf("expected active product first, got %+v", items)
	}

	active := false
	items, err = repo.ListAdmin(ProductAdminFilter{Active: &active, Take: 200})
	if err != nil || len(items) != 1 || items[0].ID != inactive.ID {
		t.Fatalf("unexpected active filter result: %+v err=%v", items, err)
	}
}

func TestProductRepositorySKUCountsAndReferences(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	product := createTestProduct(t, db, "SKU-DUP", 100, "0", "0")

	count, err := repo.CountBySKU("SKU-DUP", "")
	if err != nil || count != 1 {
		t.Fatalf("count by sku want 1 got %d err=%v", count, err)
	}
	count, err = repo.CountBySKU("SKU-DUP", product.ID)
	if err != nil || count != 0 {
		t.Fatalf("count excluding self want 0 got %d err=%v", count, err)
	}

	preorder := createTestPreorder(t, db, "999-000")
	if err := NewPreorderRepository(db).ReplaceItems(preorder.ID, []models.PreorderItem{{ProductID: product.ID, Qty: 1}}); err != nil {
		t.Fatalf("replace items failed: %v", err)
	}
	refs, err := repo.CountPreorderReferences(product.ID)
	if err != nil || refs != 1 {
		t.Fatalf("references want 1 got %d err=%v", refs, err)
	}
}

func TestFboRepositoryUpsertByNumber(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewFboRepository(db)

	first, err := repo.UpsertByNumber(&models.Fbo{Number: "225-01", FullName: "Awa", Grade: "ANIMATEUR", PointOfSale: "Cocody"})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	second, err := repo.UpsertByNumber(&models.Fbo{Number: "225-01", FullName: "Awa Kone", Grade: "MANAGER", PointOfSale: "Plateau"})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("upsert must keep the same id, first=%s second=%s", first.ID, second.ID)
	}
	if second.FullName != "Awa Kone" || second.Grade != "MANAGER" || second.PointOfSale != "Plateau" {
		t.Fatalf("upsert did not update identity: %+v", second)
	}
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akoudje/appfbo-backend/internal/constants"
	"github.com/akoudje/appfbo-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestIsDecimalLike(t *testing.T) {
	for _, raw := range []string{"0", "12", "0.125", "-1.5", " 3.25 "} {
		if !IsDecimalLike(raw) {
			t.Fatalf("expected %q to be decimal-like", raw)
		}
	}
	for _, raw := range []string{"", "1,5", ".5", "1.", "abc", "1e3"} {
		if IsDecimalLike(raw) {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestProductCreateValidatesInput(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.products.Create(ctx, ProductInput{Name: strPtr("Aloe"), BasePrice: int64Ptr(100), CC: strPtr("0.1"), WeightKg: strPtr("0.2")})
	assert.ErrorIs(t, err, ErrProductInvalid)

	_, err = f.products.Create(ctx, ProductInput{SKU: strPtr("A1"), Name: strPtr("Aloe"), BasePrice: int64Ptr(-1), CC: strPtr("0.1"), WeightKg: strPtr("0.2")})
	assert.ErrorIs(t, err, ErrProductInvalid)

	_, err = f.products.Create(ctx, ProductInput{SKU: strPtr("A1"), Name: strPtr("Aloe"), BasePrice: int64Ptr(100), CC: strPtr("0,1"), WeightKg: strPtr("0.2")})
	if err == nil || !strings.Contains(err.Error(), "cc invalid") {
		t.Fatalf("expected cc invalid, got %v", err)
	}

	product, err := f.products.Create(ctx, ProductInput{
		SKU:       strPtr(" A1 "),
		Name:      strPtr("Aloe Vera Gel"),
		BasePrice: int64Ptr(15000),
		CC:        strPtr("0.1234"),
		WeightKg:  strPtr("0.5"),
		Details:   strPtr("**Bio** <script>alert(1)</script>"),
	})
	require.NoError(t, err)
	assert.Equal(t, "A1", product.SKU)
	assert.True(t, product.Active)
	assert.Equal(t, "0.123", product.CC.String())
	assert.Contains(t, product.Details, "<strong>Bio</strong>")
	assert.NotContains(t, product.Details, "<script>")

	_, err = f.products.Create(ctx, ProductInput{SKU: strPtr("A1"), Name: strPtr("Copy"), BasePrice: int64Ptr(1), CC: strPtr("0"), WeightKg: strPtr("0")})
	assert.ErrorIs(t, err, ErrProductSKUConflict)
}

func TestProductUpdateIsPartial(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	aloe := f.createProduct(t, "ALOE", 10000, "0.125", "0.5")
	f.createProduct(t, "BEE", 4000, "0.05", "0.2")

	updated, err := f.products.Update(ctx, aloe.ID, ProductInput{BasePrice: int64Ptr(12000), Active: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, int64(12000), updated.BasePrice)
	assert.False(t, updated.Active)
	assert.Equal(t, "ALOE", updated.SKU)
	assert.Equal(t, "0.125", updated.CC.String())

	_, err = f.products.Update(ctx, aloe.ID, ProductInput{SKU: strPtr("BEE")})
	assert.ErrorIs(t, err, ErrProductSKUConflict)

	_, err = f.products.Update(ctx, "missing", ProductInput{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrProductNotFound)

	// 下架商品不出现在公共目录
	_, err = f.products.GetPublic(aloe.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	page, err := f.products.ListPublic(ctx, PublicProductListInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, constants.CatalogDefaultPageSize, page.PageSize)
	assert.Equal(t, "BEE", page.Items[0].SKU)

	all, err := f.products.ListAdmin("", nil, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "BEE", all[0].SKU)
}

func TestProductListPublicFilters(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	for _, sku := range []string{"ALOE-1", "ALOE-2", "BEE-1"} {
		f.createProduct(t, sku, 1000, "0.1", "0.1")
	}
	require.NoError(t, f.db.Model(&models.Product{}).Where("sku = ?", "ALOE-2").Update("stock_qty", 4).Error)

	page, err := f.products.ListPublic(ctx, PublicProductListInput{Search: "aloe"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = f.products.ListPublic(ctx, PublicProductListInput{InStock: "true"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "ALOE-2", page.Items[0].SKU)

	page, err = f.products.ListPublic(ctx, PublicProductListInput{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Page)
}

func TestProductDeleteRejectsReferencedProduct(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	used := f.createProduct(t, "USED", 1000, "0.1", "0.1")
	unused := f.createProduct(t, "FREE", 1000, "0.1", "0.1")
	preorder := f.createDraft(t, "225-070", "G1", constants.DeliveryModePickup)
	_, err := f.preorders.SetItems(preorder.ID, []CartLine{{ProductID: used.ID, Qty: 1}})
	require.NoError(t, err)

	err = f.products.Delete(ctx, used.ID)
	if !errors.Is(err, ErrProductInUse) {
		t.Fatalf("expected ErrProductInUse, got %v", err)
	}
	require.NoError(t, f.products.Delete(ctx, unused.ID))
	assert.ErrorIs(t, f.products.Delete(ctx, unused.ID), ErrProductNotFound)
}

func TestRenderProductDetails(t *testing.T) {
	html, err := RenderProductDetails("# Titre\n\n[lien](https://example.com) <img src=x onerror=alert(1)>")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Titre</h1>")
	assert.Contains(t, html, `rel="nofollow"`)
	assert.NotContains(t, html, "onerror")

	empty, err := RenderProductDetails("   ")
	require.NoError(t, err)
	assert.Equal(t, "", empty)
}

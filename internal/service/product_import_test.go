package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/akoudje/appfbo-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseProductCSVSemicolonWindows1252(t *testing.T) {
	raw := "SKU;Nom;PrixBaseFcfa;CC;PoidsKg;Actif;Categorie\n" +
		"ALOE;Gel d'Aloès;12500;0.125;0.5;oui;Boissons\n" +
		";;;;;;\n" +
		"BEE;Pollen;4000;0.05;0.2;non;\n"
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(raw))
	require.NoError(t, err)

	rows, err := ParseProductCSV(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Gel d'Aloès", rows[0].Name)
	assert.Equal(t, "12500", rows[0].BasePrice)
	assert.Equal(t, "Boissons", rows[0].Category)
	assert.Equal(t, "non", rows[1].Active)
}

func TestParseProductCSVCommaWithBOM(t *testing.T) {
	raw := "\xef\xbb\xbfsku,name,base_price,cc,weight_kg,stock_qty,unknown\nA1,Aloe,100,0.1,0.2,7,ignored\n"
	rows, err := ParseProductCSV(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A1", rows[0].SKU)
	assert.Equal(t, "7", rows[0].StockQty)

	_, err = ParseProductCSV(strings.NewReader("sku,name\n"))
	assert.ErrorIs(t, err, ErrProductImportEmpty)
}

func TestImportRowFromMap(t *testing.T) {
	row := ImportRowFromMap(map[string]interface{}{
		"SKU":        "A1",
		"nom":        "Aloe",
		"base_price": float64(1500),
		"cc":         0.125,
		"poids":      "0.4",
		"actif":      true,
		"extra":      "x",
	})
	assert.Equal(t, ProductImportRow{SKU: "A1", Name: "Aloe", BasePrice: "1500", CC: "0.125", WeightKg: "0.4", Active: "true"}, row)
}

func TestImportUpsertsBySKU(t *testing.T) {
	f := newServiceFixture(t)
	existing := f.createProduct(t, "ALOE", 10000, "0.1", "0.5")

	result, err := f.products.Import(context.Background(), []ProductImportRow{
		{SKU: "ALOE", Name: "Aloe v2", BasePrice: "11000", CC: "0.125", WeightKg: "0.5"},
		{SKU: "BEE", Name: "Pollen", BasePrice: "4000", CC: "0.05", WeightKg: "0.2", Active: "non", StockQty: "3"},
		{SKU: "BAD", Name: "", BasePrice: "12.5", CC: "x", WeightKg: "0.1"},
		{SKU: "BEE", Name: "Pollen bis", BasePrice: "4200", CC: "0.05", WeightKg: "0.2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalReceived)
	assert.Equal(t, 2, result.TotalValid)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Index)
	assert.ElementsMatch(t, []string{"name missing", "base_price invalid", "cc invalid"}, result.Errors[0].Errors)

	var aloe models.Product
	require.NoError(t, f.db.Where("id = ?", existing.ID).First(&aloe).Error)
	assert.Equal(t, "Aloe v2", aloe.Name)
	assert.Equal(t, int64(11000), aloe.BasePrice)

	var bee models.Product
	require.NoError(t, f.db.Where("sku = ?", "BEE").First(&bee).Error)
	assert.Equal(t, "Pollen bis", bee.Name)
	assert.True(t, bee.Active)
	assert.Equal(t, 0, bee.StockQty)
}

func TestImportWithoutValidRows(t *testing.T) {
	f := newServiceFixture(t)
	result, err := f.products.Import(context.Background(), []ProductImportRow{{SKU: "X"}})
	assert.ErrorIs(t, err, ErrProductImportEmpty)
	require.NotNil(t, result)
	assert.Len(t, result.Errors, 1)

	_, err = f.products.Import(context.Background(), nil)
	assert.ErrorIs(t, err, ErrProductImportEmpty)
}

package public

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/akoudje/appfbo-backend/internal/config"
	"github.com/akoudje/appfbo-backend/internal/http/response"
	"github.com/akoudje/appfbo-backend/internal/models"
	"github.com/akoudje/appfbo-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftBody(deliveryMode string) map[string]interface{} {
	return map[string]interface{}{
		"fbo_number":    "225-000-123",
		"full_name":     "Awa Kone",
		"grade":         "animateur",
		"point_of_sale": "Cocody",
		"payment_mode":  "MOBILE_MONEY",
		"delivery_mode": deliveryMode,
	}
}

func TestPreorderFlowThroughHandlers(t *testing.T) {
	r, db := newPublicTestEngine(t, config.CaptchaConfig{})
	product := seedProduct(t, db, "ALOE-1L", 10000, "0.125", "0.4", true)

	created := doJSON(t, r, http.MethodPost, "/api/v1/preorders/draft", draftBody("livraison"))
	require.Equal(t, response.CodeOK, created.StatusCode, created.Msg)
	var draft models.Preorder
	require.NoError(t, json.Unmarshal(created.Data, &draft))
	require.NotEmpty(t, draft.ID)
	assert.Equal(t, "DRAFT", draft.Status)

	items := doJSON(t, r, http.MethodPut, "/api/v1/preorders/"+draft.ID+"/items", map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": product.ID, "qty": 3}},
	})
	require.Equal(t, response.CodeOK, items.StatusCode, items.Msg)
	var summary SummaryResponse
	require.NoError(t, json.Unmarshal(items.Data, &summary))
	require.NotNil(t, summary.PreorderSummary)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, int64(30000), summary.Totals.TotalProducts)
	assert.Equal(t, "1.200", summary.Totals.TotalWeightKg.String())
	assert.Equal(t, int64(2000), summary.Totals.DeliveryFee)
	assert.Equal(t, int64(32000), summary.Totals.Total)
	assert.Equal(t, []string{"+2250506025071"}, summary.BillingWhatsapps)

	got := doJSON(t, r, http.MethodGet, "/api/v1/preorders/"+draft.ID+"/summary", nil)
	require.Equal(t, response.CodeOK, got.StatusCode)

	submitted := doJSON(t, r, http.MethodPost, "/api/v1/preorders/"+draft.ID+"/submit", nil)
	require.Equal(t, response.CodeOK, submitted.StatusCode, submitted.Msg)
	var result service.SubmitResult
	require.NoError(t, json.Unmarshal(submitted.Data, &result))
	assert.Equal(t, "SUBMITTED", result.Status)
	assert.Equal(t, int64(32000), result.Totals.Total)
	require.Len(t, result.Billing, 1)
	assert.True(t, strings.HasPrefix(result.Billing[0].Link, "https://wa.me/2250506025071?text="))

	// 冻结后不可再改购物车
	locked := doJSON(t, r, http.MethodPut, "/api/v1/preorders/"+draft.ID+"/items", map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": product.ID, "qty": 1}},
	})
	assert.Equal(t, response.CodeBadRequest, locked.StatusCode)
	assert.Equal(t, "Preorder can no longer be edited", locked.Msg)
}

func TestCreateDraftValidationMessage(t *testing.T) {
	r, _ := newPublicTestEngine(t, config.CaptchaConfig{})
	body := draftBody("RETRAIT")
	body["full_name"] = " "
	body["point_of_sale"] = ""

	resp := doJSON(t, r, http.MethodPost, "/api/v1/preorders/draft", body)
	assert.Equal(t, response.CodeBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields: full_name, point_of_sale", resp.Msg)

	body = draftBody("TELEPORT")
	resp = doJSON(t, r, http.MethodPost, "/api/v1/preorders/draft", body)
	assert.Equal(t, response.CodeBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid delivery mode (LIVRAISON or RETRAIT)", resp.Msg)
}

func TestSetItemsRejectsQuantityAboveLimit(t *testing.T) {
	r, db := newPublicTestEngine(t, config.CaptchaConfig{})
	product := seedProduct(t, db, "ALOE-1L", 10000, "0.125", "0.4", true)

	created := doJSON(t, r, http.MethodPost, "/api/v1/preorders/draft", draftBody("RETRAIT"))
	require.Equal(t, response.CodeOK, created.StatusCode, created.Msg)
	var draft models.Preorder
	require.NoError(t, json.Unmarshal(created.Data, &draft))

	for _, qty := range []int64{51, 1 << 62} {
		resp := doJSON(t, r, http.MethodPut, "/api/v1/preorders/"+draft.ID+"/items", map[string]interface{}{
			"items": []map[string]interface{}{{"product_id": product.ID, "qty": qty}},
		})
		assert.Equal(t, response.CodeBadRequest, resp.StatusCode, "qty %d", qty)
		assert.Equal(t, "Invalid items (maximum quantity per line exceeded)", resp.Msg)
	}

	ok := doJSON(t, r, http.MethodPut, "/api/v1/preorders/"+draft.ID+"/items", map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": product.ID, "qty": 50}},
	})
	require.Equal(t, response.CodeOK, ok.StatusCode, ok.Msg)
	var summary SummaryResponse
	require.NoError(t, json.Unmarshal(ok.Data, &summary))
	assert.Equal(t, int64(500000), summary.Totals.Total)
}

func TestPreorderNotFound(t *testing.T) {
	r, _ := newPublicTestEngine(t, config.CaptchaConfig{})
	resp := doJSON(t, r, http.MethodGet, "/api/v1/preorders/01HZZZZZZZZZZZZZZZZZZZZZZZ/summary", nil)
	assert.Equal(t, response.CodeNotFound, resp.StatusCode)
	assert.Equal(t, "Preorder not found", resp.Msg)
}

func TestSetItemsRejectsUnknownProduct(t *testing.T) {
	r, db := newPublicTestEngine(t, config.CaptchaConfig{})
	inactive := seedProduct(t, db, "OFF-1", 5000, "0.1", "0.2", false)

	created := doJSON(t, r, http.MethodPost, "/api/v1/preorders/draft", draftBody("RETRAIT"))
	require.Equal(t, response.CodeOK, created.StatusCode)
	var draft models.Preorder
	require.NoError(t, json.Unmarshal(created.Data, &draft))

	resp := doJSON(t, r, http.MethodPut, "/api/v1/preorders/"+draft.ID+"/items", map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": inactive.ID, "qty": 1}},
	})
	assert.NotEqual(t, response.CodeOK, resp.StatusCode)
}

func TestCreateDraftRequiresImageCaptcha(t *testing.T) {
	r, _ := newPublicTestEngine(t, config.CaptchaConfig{
		Provider: "image",
		Scenes:   config.CaptchaSceneConfig{CreateDraft: true},
		Image:    config.CaptchaImageConfig{Length: 4, Width: 120, Height: 40, ExpireSeconds: 300},
	})
	resp := doJSON(t, r, http.MethodPost, "/api/v1/preorders/draft", draftBody("RETRAIT"))
	assert.Equal(t, response.CodeBadRequest, resp.StatusCode)
	assert.Equal(t, "Captcha required", resp.Msg)
}

package public

import (
	"strings"

	"github.com/akoudje/appfbo-backend/internal/constants"
	handlershared "github.com/akoudje/appfbo-backend/internal/http/handlers/shared"
	"github.com/akoudje/appfbo-backend/internal/http/response"
	"github.com/akoudje/appfbo-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateDraftRequest 创建预订单草稿请求
type CreateDraftRequest struct {
	FboNumber    string `json:"fbo_number"`
	FullName     string `json:"full_name"`
	Grade        string `json:"grade"`
	PointOfSale  string `json:"point_of_sale"`
	PaymentMode  string `json:"payment_mode"`
	DeliveryMode string `json:"delivery_mode"`

	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// CartLineRequest 购物车行
type CartLineRequest struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// SetItemsRequest 整体替换购物车请求
type SetItemsRequest struct {
	Items []CartLineRequest `json:"items"`
}

// SubmitRequest 提交预订单请求
type SubmitRequest struct {
	WhatsappTo string `json:"whatsapp_to"`
}

// SummaryResponse 实时计价摘要响应
type SummaryResponse struct {
	*service.PreorderSummary
	BillingWhatsapps []string `json:"billing_whatsapps"`
}

// CreateDraft 创建预订单草稿
func (h *Handler) CreateDraft(c *gin.Context) {
	var req CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CaptchaService.Verify(constants.CaptchaSceneCreateDraft, req.CaptchaPayload.ToServicePayload()); err != nil {
		respondDraftCreateError(c, err)
		return
	}

	preorder, err := h.PreorderService.CreateDraft(service.CreateDraftInput{
		FboNumber:    req.FboNumber,
		FullName:     req.FullName,
		Grade:        req.Grade,
		PointOfSale:  req.PointOfSale,
		PaymentMode:  req.PaymentMode,
		DeliveryMode: req.DeliveryMode,
	})
	if err != nil {
		respondDraftCreateError(c, err)
		return
	}

	requestLog(c).Infow("preorder_draft_created",
		"preorder_id", preorder.ID,
		"fbo_number", preorder.FboNumber,
	)
	response.Success(c, preorder)
}

// SetItems 整体替换草稿购物车并返回实时计价
func (h *Handler) SetItems(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	var req SetItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	lines := make([]service.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, service.CartLine{ProductID: item.ProductID, Qty: item.Qty})
	}

	summary, err := h.PreorderService.SetItems(id, lines)
	if err != nil {
		respondPreorderError(c, err)
		return
	}
	response.Success(c, h.buildSummaryResponse(summary))
}

// GetSummary 按当前目录与折扣实时计价
func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.PreorderService.GetSummary(strings.TrimSpace(c.Param("id")))
	if err != nil {
		respondPreorderError(c, err)
		return
	}
	response.Success(c, h.buildSummaryResponse(summary))
}

// Submit 冻结预订单并返回开票消息
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	// 请求体可为空
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
	}

	result, err := h.PreorderService.Submit(strings.TrimSpace(c.Param("id")), req.WhatsappTo)
	if err != nil {
		respondPreorderError(c, err)
		return
	}

	requestLog(c).Infow("preorder_submitted",
		"preorder_id", result.PreorderID,
		"total", result.Totals.Total,
	)
	response.Success(c, result)
}

func (h *Handler) buildSummaryResponse(summary *service.PreorderSummary) SummaryResponse {
	return SummaryResponse{
		PreorderSummary:  summary,
		BillingWhatsapps: h.PreorderService.BillingNumbers(),
	}
}

package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akoudje/appfbo-backend/internal/config"
	"github.com/akoudje/appfbo-backend/internal/constants"
	"github.com/akoudje/appfbo-backend/internal/logger"
	"github.com/akoudje/appfbo-backend/internal/models"
	"github.com/akoudje/appfbo-backend/internal/queue"
	"github.com/akoudje/appfbo-backend/internal/repository"

	"gorm.io/gorm"
)

// DefaultMaxLineQty 单行数量上限默认值
const DefaultMaxLineQty = 9999

// PreorderService 预订单服务
type PreorderService struct {
	preorderRepo   repository.PreorderRepository
	productRepo    repository.ProductRepository
	fboRepo        repository.FboRepository
	pricing        *PricingService
	queueClient    *queue.Client
	billingNumbers []string
	draftTTL       time.Duration
	sweepBatchSize int
	maxLineQty     int
	now            func() time.Time
}

// NewPreorderService 创建预订单服务
func NewPreorderService(preorderRepo repository.PreorderRepository, productRepo repository.ProductRepository, fboRepo repository.FboRepository, pricing *PricingService, queueClient *queue.Client, billingNumbers []string, cfg config.PreorderConfig) *PreorderService {
	numbers := make([]string, 0, len(billingNumbers))
	for _, n := range billingNumbers {
		if n = strings.TrimSpace(n); n != "" {
			numbers = append(numbers, n)
		}
	}
	draftTTLHours := cfg.DraftTTLHours
	if draftTTLHours <= 0 {
		draftTTLHours = 72
	}
	sweepBatchSize := cfg.SweepBatchSize
	if sweepBatchSize <= 0 {
		sweepBatchSize = 200
	}
	maxLineQty := cfg.MaxLineQty
	if maxLineQty <= 0 {
		maxLineQty = DefaultMaxLineQty
	}
	return &PreorderService{
		preorderRepo:   preorderRepo,
		productRepo:    productRepo,
		fboRepo:        fboRepo,
		pricing:        pricing,
		queueClient:    queueClient,
		billingNumbers: numbers,
		draftTTL:       time.Duration(draftTTLHours) * time.Hour,
		sweepBatchSize: sweepBatchSize,
		maxLineQty:     maxLineQty,
		now:            time.Now,
	}
}

// BillingNumbers 开票 WhatsApp 号码列表
func (s *PreorderService) BillingNumbers() []string {
	out := make([]string, len(s.billingNumbers))
	copy(out, s.billingNumbers)
	return out
}

// CreateDraftInput 创建草稿输入
type CreateDraftInput struct {
	FboNumber    string
	FullName     string
	Grade        string
	PointOfSale  string
	PaymentMode  string
	DeliveryMode string
}

// PreorderValidationError 草稿字段校验失败，列出缺失字段
type PreorderValidationError struct {
	Fields []string
}

func (e *PreorderValidationError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrPreorderValidation.Error(), strings.Join(e.Fields, ", "))
}

// Is 匹配 ErrPreorderValidation
func (e *PreorderValidationError) Is(target error) bool {
	return target == ErrPreorderValidation
}

// CreateDraft 创建草稿预订单并同步 FBO 档案
func (s *PreorderService) CreateDraft(input CreateDraftInput) (*models.Preorder, error) {
	input.FboNumber = strings.TrimSpace(input.FboNumber)
	input.FullName = strings.TrimSpace(input.FullName)
	input.Grade = NormalizeGrade(input.Grade)
	input.PointOfSale = strings.TrimSpace(input.PointOfSale)
	input.PaymentMode = strings.TrimSpace(input.PaymentMode)
	input.DeliveryMode = strings.ToUpper(strings.TrimSpace(input.DeliveryMode))

	missing := make([]string, 0)
	for _, field := range []struct {
		name  string
		value string
	}{
		{"fbo_number", input.FboNumber},
		{"full_name", input.FullName},
		{"grade", input.Grade},
		{"point_of_sale", input.PointOfSale},
		{"payment_mode", input.PaymentMode},
		{"delivery_mode", input.DeliveryMode},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return nil, &PreorderValidationError{Fields: missing}
	}
	if !IsDeliveryModeSupported(input.DeliveryMode) {
		return nil, fmt.Errorf("%w: %s", ErrDeliveryModeInvalid, input.DeliveryMode)
	}

	var preorder *models.Preorder
	err := s.preorderRepo.Transaction(func(tx *gorm.DB) error {
		fbo, err := s.fboRepo.WithTx(tx).UpsertByNumber(&models.Fbo{
			Number:      input.FboNumber,
			FullName:    input.FullName,
			Grade:       input.Grade,
			PointOfSale: input.PointOfSale,
		})
		if err != nil {
			return err
		}
		preorder = &models.Preorder{
			FboID:        fbo.ID,
			FboNumber:    fbo.Number,
			FboFullName:  fbo.FullName,
			FboGrade:     fbo.Grade,
			PointOfSale:  fbo.PointOfSale,
			PaymentMode:  input.PaymentMode,
			DeliveryMode: input.DeliveryMode,
			Status:       constants.PreorderStatusDraft,
		}
		return s.preorderRepo.WithTx(tx).Create(preorder)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreorderUpdateFailed, err)
	}
	return preorder, nil
}

// CartLine 购物车行
type CartLine struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// IsDeliveryModeSupported 仅接受送货与自提两种方式（大小写已归一）
func IsDeliveryModeSupported(mode string) bool {
	return mode == constants.DeliveryModeDelivery || mode == constants.DeliveryModePickup
}

// NormalizeCartLines 丢弃数量不大于 0 的行，合并重复商品并保持首次出现顺序。
// 单行或合并后数量超过 maxQty 时返回 ErrPreorderItemsInvalid。
func NormalizeCartLines(lines []CartLine, maxQty int) ([]CartLine, error) {
	if maxQty <= 0 {
		maxQty = DefaultMaxLineQty
	}
	merged := make([]CartLine, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, line := range lines {
		productID := strings.TrimSpace(line.ProductID)
		if productID == "" || line.Qty <= 0 {
			continue
		}
		if line.Qty > maxQty {
			return nil, fmt.Errorf("%w: qty %d exceeds %d for %s", ErrPreorderItemsInvalid, line.Qty, maxQty, productID)
		}
		if pos, ok := index[productID]; ok {
			if merged[pos].Qty > maxQty-line.Qty {
				return nil, fmt.Errorf("%w: merged qty exceeds %d for %s", ErrPreorderItemsInvalid, maxQty, productID)
			}
			merged[pos].Qty += line.Qty
			continue
		}
		index[productID] = len(merged)
		merged = append(merged, CartLine{ProductID: productID, Qty: line.Qty})
	}
	return merged, nil
}

// SetItems 整体替换草稿购物车，返回实时摘要
func (s *PreorderService) SetItems(preorderID string, lines []CartLine) (*PreorderSummary, error) {
	normalized, err := NormalizeCartLines(lines, s.maxLineQty)
	if err != nil {
		return nil, err
	}
	err = s.preorderRepo.Transaction(func(tx *gorm.DB) error {
		preorderRepo := s.preorderRepo.WithTx(tx)
		preorder, err := preorderRepo.GetByIDForUpdate(preorderID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPreorderFetchFailed, err)
		}
		if preorder == nil {
			return ErrPreorderNotFound
		}
		if preorder.Status != constants.PreorderStatusDraft {
			return ErrPreorderNotEditable
		}
		if err := s.ensureProductsAvailable(s.productRepo.WithTx(tx), normalized); err != nil {
			return err
		}
		items := make([]models.PreorderItem, 0, len(normalized))
		for _, line := range normalized {
			items = append(items, models.PreorderItem{ProductID: line.ProductID, Qty: line.Qty})
		}
		if err := preorderRepo.ReplaceItems(preorder.ID, items); err != nil {
			return fmt.Errorf("%w: %v", ErrPreorderUpdateFailed, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.pricing.ComputeTotals(preorderID)
}

func (s *PreorderService) ensureProductsAvailable(productRepo repository.ProductRepository, lines []CartLine) error {
	if len(lines) == 0 {
		return nil
	}
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := productRepo.ListByIDs(ids)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPreorderFetchFailed, err)
	}
	active := make(map[string]bool, len(products))
	for _, p := range products {
		active[p.ID] = p.Active
	}
	for _, id := range ids {
		if !active[id] {
			return fmt.Errorf("%w: %s", ErrCartProductNotFound, id)
		}
	}
	return nil
}

// GetSummary 实时计价摘要，任何状态都重新计算
func (s *PreorderService) GetSummary(preorderID string) (*PreorderSummary, error) {
	return s.pricing.ComputeTotals(preorderID)
}

// BillingLink 开票号码与深链
type BillingLink struct {
	Phone string `json:"phone"`
	Link  string `json:"link"`
}

// SubmitResult 提交结果
type SubmitResult struct {
	PreorderID      string         `json:"preorder_id"`
	Status          string         `json:"status"`
	SubmittedAt     time.Time      `json:"submitted_at"`
	Totals          PreorderTotals `json:"totals"`
	WhatsappTo      string         `json:"whatsapp_to"`
	WhatsappMessage string         `json:"whatsapp_message"`
	Billing         []BillingLink  `json:"billing"`
}

// Submit 冻结草稿：计价、写入明细快照与合计、生成开票消息。
// 整个过程在单个事务内完成，状态已非草稿时返回 ErrPreorderNotEditable。
func (s *PreorderService) Submit(preorderID string, whatsappTo string) (*SubmitResult, error) {
	var result *SubmitResult
	err := s.preorderRepo.Transaction(func(tx *gorm.DB) error {
		preorderRepo := s.preorderRepo.WithTx(tx)
		preorder, err := preorderRepo.GetByIDForUpdate(preorderID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPreorderFetchFailed, err)
		}
		if preorder == nil {
			return ErrPreorderNotFound
		}
		if preorder.Status != constants.PreorderStatusDraft {
			return ErrPreorderNotEditable
		}

		summary, err := s.pricing.WithTx(tx).Summarize(preorder)
		if err != nil {
			return err
		}
		message := BuildWhatsAppMessage(preorder, summary.Items, summary.Totals)
		recipient := strings.TrimSpace(whatsappTo)
		if recipient == "" && len(s.billingNumbers) > 0 {
			recipient = s.billingNumbers[0]
		}
		submittedAt := s.now()

		frozen := repository.FrozenSubmission{
			Lines:           make([]repository.FrozenLine, 0, len(summary.Items)),
			TotalCC:         summary.Totals.TotalCC,
			TotalWeightKg:   summary.Totals.TotalWeightKg,
			TotalProducts:   summary.Totals.TotalProducts,
			DeliveryFee:     summary.Totals.DeliveryFee,
			Total:           summary.Totals.Total,
			WhatsappMessage: message,
			WhatsappTo:      recipient,
			SubmittedAt:     submittedAt,
		}
		for _, item := range summary.Items {
			frozen.Lines = append(frozen.Lines, repository.FrozenLine{
				ProductID:         item.ProductID,
				UnitPrice:         item.UnitPrice,
				UnitCC:            item.UnitCC,
				UnitWeightKg:      item.UnitWeightKg,
				LineTotal:         item.LineTotal,
				LineTotalCC:       item.LineTotalCC,
				LineTotalWeightKg: item.LineTotalWeightKg,
			})
		}
		applied, err := preorderRepo.FreezeSubmission(preorder.ID, frozen)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPreorderUpdateFailed, err)
		}
		if !applied {
			return ErrPreorderNotEditable
		}

		result = &SubmitResult{
			PreorderID:      preorder.ID,
			Status:          constants.PreorderStatusSubmitted,
			SubmittedAt:     submittedAt,
			Totals:          summary.Totals,
			WhatsappTo:      recipient,
			WhatsappMessage: message,
			Billing:         s.billingLinks(message),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.enqueueBillingNotify(result.PreorderID)
	return result, nil
}

func (s *PreorderService) billingLinks(message string) []BillingLink {
	links := make([]BillingLink, 0, len(s.billingNumbers))
	for _, phone := range s.billingNumbers {
		links = append(links, BillingLink{Phone: phone, Link: BuildWhatsAppLink(phone, message)})
	}
	return links
}

func (s *PreorderService) enqueueBillingNotify(preorderID string) {
	err := s.queueClient.EnqueuePreorderBillingNotify(queue.PreorderBillingNotifyPayload{PreorderID: preorderID})
	if err == nil {
		return
	}
	if errors.Is(err, queue.ErrQueueDisabled) {
		logger.Debugw("preorder_billing_notify_skipped", "preorder_id", preorderID, "reason", "queue_disabled")
		return
	}
	logger.Warnw("preorder_billing_notify_enqueue_failed", "preorder_id", preorderID, "error", err)
}

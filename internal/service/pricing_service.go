package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/akoudje/appfbo-backend/internal/config"
	"github.com/akoudje/appfbo-backend/internal/constants"
	"github.com/akoudje/appfbo-backend/internal/logger"
	"github.com/akoudje/appfbo-backend/internal/models"
	"github.com/akoudje/appfbo-backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DeliveryFeeTier 配送费阶梯，重量上界包含在内
type DeliveryFeeTier struct {
	MaxWeightKg decimal.Decimal
	Fee         int64
}

// DeliveryFeeSchedule 配送费规则
type DeliveryFeeSchedule struct {
	FeeModes []string
	Tiers    []DeliveryFeeTier
	AboveFee int64
	invalid  bool
}

// DefaultDeliveryFeeSchedule 默认阶梯：≤1kg 1000，≤3kg 2000，≤5kg 3000，其余 5000
func DefaultDeliveryFeeSchedule() DeliveryFeeSchedule {
	return DeliveryFeeSchedule{
		FeeModes: []string{constants.DeliveryModeDelivery},
		Tiers: []DeliveryFeeTier{
			{MaxWeightKg: decimal.NewFromInt(1), Fee: 1000},
			{MaxWeightKg: decimal.NewFromInt(3), Fee: 2000},
			{MaxWeightKg: decimal.NewFromInt(5), Fee: 3000},
		},
		AboveFee: 5000,
	}
}

// NewDeliveryFeeSchedule 从配置构建配送费规则。
// 阶梯为空、上界非严格递增或费用为负时返回 ErrConfigInvalid，返回的规则按免运费处理。
func NewDeliveryFeeSchedule(cfg config.DeliveryConfig) (DeliveryFeeSchedule, error) {
	schedule := DeliveryFeeSchedule{AboveFee: cfg.AboveFee}
	for _, mode := range cfg.FeeModes {
		mode = strings.ToUpper(strings.TrimSpace(mode))
		if mode != "" {
			schedule.FeeModes = append(schedule.FeeModes, mode)
		}
	}
	if len(cfg.Tiers) == 0 {
		schedule.invalid = true
		return schedule, fmt.Errorf("%w: delivery tiers empty", ErrConfigInvalid)
	}
	prev := decimal.Zero
	for i, tier := range cfg.Tiers {
		bound, err := decimal.NewFromString(strings.TrimSpace(tier.MaxWeightKg))
		if err != nil {
			schedule.invalid = true
			return schedule, fmt.Errorf("%w: delivery tier %d bound %q", ErrConfigInvalid, i, tier.MaxWeightKg)
		}
		if i > 0 && !bound.GreaterThan(prev) {
			schedule.invalid = true
			return schedule, fmt.Errorf("%w: delivery tier bounds must be strictly increasing", ErrConfigInvalid)
		}
		if tier.Fee < 0 {
			schedule.invalid = true
			return schedule, fmt.Errorf("%w: delivery tier %d fee negative", ErrConfigInvalid, i)
		}
		schedule.Tiers = append(schedule.Tiers, DeliveryFeeTier{MaxWeightKg: bound, Fee: tier.Fee})
		prev = bound
	}
	if cfg.AboveFee < 0 {
		schedule.invalid = true
		return schedule, fmt.Errorf("%w: delivery above fee negative", ErrConfigInvalid)
	}
	return schedule, nil
}

// Fee 计算配送费，非收费模式返回 0
func (s DeliveryFeeSchedule) Fee(deliveryMode string, weightKg decimal.Decimal) int64 {
	if s.invalid || !s.chargesMode(deliveryMode) {
		return 0
	}
	for _, tier := range s.Tiers {
		if weightKg.LessThanOrEqual(tier.MaxWeightKg) {
			return tier.Fee
		}
	}
	return s.AboveFee
}

func (s DeliveryFeeSchedule) chargesMode(mode string) bool {
	mode = strings.ToUpper(strings.TrimSpace(mode))
	for _, m := range s.FeeModes {
		if m == mode {
			return true
		}
	}
	return false
}

// ApplyDiscount 折后单价：四舍五入到整数，不低于 0
func ApplyDiscount(basePrice int64, percent decimal.Decimal) int64 {
	unit := decimal.NewFromInt(basePrice).
		Mul(hundred.Sub(percent)).
		Div(hundred).
		Round(0)
	if unit.IsNegative() {
		return 0
	}
	return unit.IntPart()
}

// Round3 保留 3 位小数
func Round3(d decimal.Decimal) models.Decimal3 {
	return models.NewDecimal3(d)
}

// PricingLine 计价输入行
type PricingLine struct {
	Product models.Product
	Qty     int
}

// PricedLine 计价结果行
type PricedLine struct {
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	ImageURL          string          `json:"image_url"`
	Qty               int             `json:"qty"`
	UnitPrice         int64           `json:"unit_price"`
	UnitCC            models.Decimal3 `json:"unit_cc"`
	UnitWeightKg      models.Decimal3 `json:"unit_weight_kg"`
	LineTotal         int64           `json:"line_total"`
	LineTotalCC       models.Decimal3 `json:"line_total_cc"`
	LineTotalWeightKg models.Decimal3 `json:"line_total_weight_kg"`
}

// PreorderTotals 预订单合计
type PreorderTotals struct {
	TotalCC       models.Decimal3 `json:"total_cc"`
	TotalWeightKg models.Decimal3 `json:"total_weight_kg"`
	TotalProducts int64           `json:"total_products"`
	DeliveryFee   int64           `json:"delivery_fee"`
	Total         int64           `json:"total"`
}

// 非负整数乘加，溢出时 ok 为 false
func mulAmount(a, b int64) (int64, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a != 0 && b > math.MaxInt64/a {
		return 0, false
	}
	return a * b, true
}

func addAmount(a, b int64) (int64, bool) {
	if a < 0 || b < 0 || a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}

// PriceLines 纯计价：逐行折后单价、行小计，再累加合计并计算配送费。
// 合计由未取整的行值累加后统一保留 3 位小数；金额超出 int64 时返回 ErrPreorderItemsInvalid。
func PriceLines(lines []PricingLine, percent decimal.Decimal, deliveryMode string, schedule DeliveryFeeSchedule) ([]PricedLine, PreorderTotals, error) {
	priced := make([]PricedLine, 0, len(lines))
	totalCC := decimal.Zero
	totalWeight := decimal.Zero
	var totalProducts int64
	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Qty))
		unitPrice := ApplyDiscount(line.Product.BasePrice, percent)
		lineTotal, ok := mulAmount(unitPrice, int64(line.Qty))
		if !ok {
			return nil, PreorderTotals{}, fmt.Errorf("%w: line total overflow for %s", ErrPreorderItemsInvalid, line.Product.SKU)
		}
		rawCC := line.Product.CC.Decimal.Mul(qty)
		rawWeight := line.Product.WeightKg.Decimal.Mul(qty)

		priced = append(priced, PricedLine{
			ProductID:         line.Product.ID,
			SKU:               line.Product.SKU,
			Name:              line.Product.Name,
			ImageURL:          line.Product.ImageURL,
			Qty:               line.Qty,
			UnitPrice:         unitPrice,
			UnitCC:            Round3(line.Product.CC.Decimal),
			UnitWeightKg:      Round3(line.Product.WeightKg.Decimal),
			LineTotal:         lineTotal,
			LineTotalCC:       Round3(rawCC),
			LineTotalWeightKg: Round3(rawWeight),
		})
		totalCC = totalCC.Add(rawCC)
		totalWeight = totalWeight.Add(rawWeight)
		if totalProducts, ok = addAmount(totalProducts, lineTotal); !ok {
			return nil, PreorderTotals{}, fmt.Errorf("%w: products total overflow", ErrPreorderItemsInvalid)
		}
	}

	weight := Round3(totalWeight)
	fee := schedule.Fee(deliveryMode, weight.Decimal)
	total, ok := addAmount(totalProducts, fee)
	if !ok {
		return nil, PreorderTotals{}, fmt.Errorf("%w: total overflow", ErrPreorderItemsInvalid)
	}
	return priced, PreorderTotals{
		TotalCC:       Round3(totalCC),
		TotalWeightKg: weight,
		TotalProducts: totalProducts,
		DeliveryFee:   fee,
		Total:         total,
	}, nil
}

// PreorderSummary 实时计价摘要
type PreorderSummary struct {
	PreorderID      string          `json:"preorder_id"`
	Status          string          `json:"status"`
	Grade           string          `json:"grade"`
	DeliveryMode    string          `json:"delivery_mode"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Items           []PricedLine    `json:"items"`
	Totals          PreorderTotals  `json:"totals"`
}

// PricingService 基于当前目录与折扣计价
type PricingService struct {
	preorderRepo repository.PreorderRepository
	discounts    *DiscountService
	schedule     DeliveryFeeSchedule
}

// NewPricingService 创建计价服务
func NewPricingService(preorderRepo repository.PreorderRepository, discounts *DiscountService, delivery config.DeliveryConfig) *PricingService {
	schedule, err := NewDeliveryFeeSchedule(delivery)
	if err != nil {
		logger.Warnw("delivery_fee_config_invalid", "error", err)
	}
	return &PricingService{
		preorderRepo: preorderRepo,
		discounts:    discounts,
		schedule:     schedule,
	}
}

// WithTx 绑定事务
func (s *PricingService) WithTx(tx *gorm.DB) *PricingService {
	if tx == nil {
		return s
	}
	return &PricingService{
		preorderRepo: s.preorderRepo.WithTx(tx),
		discounts:    s.discounts.WithTx(tx),
		schedule:     s.schedule,
	}
}

// Schedule 当前配送费规则
func (s *PricingService) Schedule() DeliveryFeeSchedule {
	return s.schedule
}

// ComputeTotals 读取预订单当前明细并实时计价，不写入任何数据
func (s *PricingService) ComputeTotals(preorderID string) (*PreorderSummary, error) {
	preorder, err := s.preorderRepo.GetByID(preorderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreorderFetchFailed, err)
	}
	if preorder == nil {
		return nil, ErrPreorderNotFound
	}
	return s.Summarize(preorder)
}

// Summarize 对已加载明细与商品的预订单计价
func (s *PricingService) Summarize(preorder *models.Preorder) (*PreorderSummary, error) {
	percent, err := s.discounts.ResolvePercent(preorder.FboGrade)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreorderFetchFailed, err)
	}
	lines := make([]PricingLine, 0, len(preorder.Items))
	for _, item := range preorder.Items {
		if item.Product == nil {
			return nil, fmt.Errorf("%w: %s", ErrCartProductNotFound, item.ProductID)
		}
		lines = append(lines, PricingLine{Product: *item.Product, Qty: item.Qty})
	}
	items, totals, err := PriceLines(lines, percent, preorder.DeliveryMode, s.schedule)
	if err != nil {
		return nil, err
	}
	return &PreorderSummary{
		PreorderID:      preorder.ID,
		Status:          preorder.Status,
		Grade:           preorder.FboGrade,
		DeliveryMode:    preorder.DeliveryMode,
		DiscountPercent: percent,
		Items:           items,
		Totals:          totals,
	}, nil
}

package service

import (
	"fmt"
	"strings"

	"github.com/akoudje/appfbo-backend/internal/logger"
	"github.com/akoudje/appfbo-backend/internal/models"
	"github.com/akoudje/appfbo-backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// DiscountService 等级折扣解析与维护
type DiscountService struct {
	repo repository.GradeDiscountRepository
}

// NewDiscountService 创建折扣服务
func NewDiscountService(repo repository.GradeDiscountRepository) *DiscountService {
	return &DiscountService{repo: repo}
}

// WithTx 绑定事务
func (s *DiscountService) WithTx(tx *gorm.DB) *DiscountService {
	if tx == nil {
		return s
	}
	return &DiscountService{repo: s.repo.WithTx(tx)}
}

// NormalizeGrade 统一等级写法
func NormalizeGrade(grade string) string {
	return strings.ToUpper(strings.TrimSpace(grade))
}

// ResolvePercent 返回等级对应折扣百分比。
// 未配置返回 0；配置值越界视为配置错误，同样按 0 处理。
func (s *DiscountService) ResolvePercent(grade string) (decimal.Decimal, error) {
	grade = NormalizeGrade(grade)
	if grade == "" {
		return decimal.Zero, nil
	}
	row, err := s.repo.GetByGrade(grade)
	if err != nil {
		return decimal.Zero, err
	}
	if row == nil {
		return decimal.Zero, nil
	}
	if !validPercent(row.DiscountPercent) {
		logger.Warnw("grade_discount_out_of_range",
			"grade", grade,
			"discount_percent", row.DiscountPercent.String(),
		)
		return decimal.Zero, nil
	}
	return row.DiscountPercent, nil
}

// List 列出全部等级折扣
func (s *DiscountService) List() ([]models.GradeDiscount, error) {
	return s.repo.List()
}

// Upsert 新增或更新等级折扣
func (s *DiscountService) Upsert(grade string, percent decimal.Decimal) (*models.GradeDiscount, error) {
	grade = NormalizeGrade(grade)
	if grade == "" {
		return nil, fmt.Errorf("%w: grade required", ErrGradeDiscountInvalid)
	}
	if !validPercent(percent) {
		return nil, fmt.Errorf("%w: percent must be within 0..100", ErrGradeDiscountInvalid)
	}
	row := &models.GradeDiscount{Grade: grade, DiscountPercent: percent.Round(2)}
	if err := s.repo.Upsert(row); err != nil {
		return nil, err
	}
	return s.repo.GetByGrade(grade)
}

// Delete 删除等级折扣
func (s *DiscountService) Delete(grade string) error {
	affected, err := s.repo.Delete(NormalizeGrade(grade))
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrGradeDiscountNotFound
	}
	return nil
}

func validPercent(percent decimal.Decimal) bool {
	return !percent.IsNegative() && percent.LessThanOrEqual(hundred)
}

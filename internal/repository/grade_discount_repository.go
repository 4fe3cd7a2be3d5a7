package repository

import (
	"errors"
	"strings"

	"github.com/akoudje/appfbo-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GradeDiscountRepository 等级折扣数据访问接口
type GradeDiscountRepository interface {
	GetByGrade(grade string) (*models.GradeDiscount, error)
	List() ([]models.GradeDiscount, error)
	Upsert(row *models.GradeDiscount) error
	Delete(grade string) (int64, error)
	WithTx(tx *gorm.DB) GradeDiscountRepository
}

// GormGradeDiscountRepository GORM 实现
type GormGradeDiscountRepository struct {
	db *gorm.DB
}

// NewGradeDiscountRepository 创建等级折扣仓库
func NewGradeDiscountRepository(db *gorm.DB) *GormGradeDiscountRepository {
	return &GormGradeDiscountRepository{db: db}
}

// WithTx 绑定事务
func (r *GormGradeDiscountRepository) WithTx(tx *gorm.DB) GradeDiscountRepository {
	if tx == nil {
		return r
	}
	return &GormGradeDiscountRepository{db: tx}
}

// GetByGrade 根据等级获取折扣，不存在返回 nil
func (r *GormGradeDiscountRepository) GetByGrade(grade string) (*models.GradeDiscount, error) {
	grade = strings.TrimSpace(grade)
	if grade == "" {
		return nil, nil
	}
	var row models.GradeDiscount
	if err := r.db.Where("grade = ?", grade).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// List 获取全部折扣配置
func (r *GormGradeDiscountRepository) List() ([]models.GradeDiscount, error) {
	rows := make([]models.GradeDiscount, 0)
	if err := r.db.Order("grade asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert 按等级新增或更新
func (r *GormGradeDiscountRepository) Upsert(row *models.GradeDiscount) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "grade"}},
		DoUpdates: clause.AssignmentColumns([]string{"discount_percent", "updated_at"}),
	}).Create(row).Error
}

// Delete 删除等级折扣
func (r *GormGradeDiscountRepository) Delete(grade string) (int64, error) {
	result := r.db.Where("grade = ?", strings.TrimSpace(grade)).Delete(&models.GradeDiscount{})
	return result.RowsAffected, result.Error
}

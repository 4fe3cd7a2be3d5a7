package repository

import (
	"errors"
	"strings"

	"github.com/akoudje/appfbo-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FboRepository FBO 档案数据访问接口
type FboRepository interface {
	GetByNumber(number string) (*models.Fbo, error)
	UpsertByNumber(fbo *models.Fbo) (*models.Fbo, error)
	WithTx(tx *gorm.DB) FboRepository
}

// GormFboRepository GORM 实现
type GormFboRepository struct {
	db *gorm.DB
}

// NewFboRepository 创建 FBO 仓库
func NewFboRepository(db *gorm.DB) *GormFboRepository {
	return &GormFboRepository{db: db}
}

// WithTx 绑定事务
func (r *GormFboRepository) WithTx(tx *gorm.DB) FboRepository {
	if tx == nil {
		return r
	}
	return &GormFboRepository{db: tx}
}

// GetByNumber 根据编号获取
func (r *GormFboRepository) GetByNumber(number string) (*models.Fbo, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, nil
	}
	var fbo models.Fbo
	if err := r.db.Where("number = ?", number).First(&fbo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fbo, nil
}

// UpsertByNumber 按编号新增或更新姓名、等级、门店，返回最新记录
func (r *GormFboRepository) UpsertByNumber(fbo *models.Fbo) (*models.Fbo, error) {
	if fbo == nil {
		return nil, errors.New("fbo is nil")
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "number"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "grade", "point_of_sale", "updated_at"}),
	}).Create(fbo).Error
	if err != nil {
		return nil, err
	}
	return r.GetByNumber(fbo.Number)
}

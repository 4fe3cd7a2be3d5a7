package service

import (
	"fmt"
	"strings"

	"github.com/akoudje/appfbo-backend/internal/constants"
	"github.com/akoudje/appfbo-backend/internal/models"
	"github.com/akoudje/appfbo-backend/internal/repository"
)

// AdminPreorderListInput 后台预订单列表查询
type AdminPreorderListInput struct {
	Page     int
	PageSize int
	Status   string
	Keyword  string
	DateFrom string
	DateTo   string
	SortBy   string
	SortDir  string
}

// ListForAdmin 后台分页列表
func (s *PreorderService) ListForAdmin(input AdminPreorderListInput) ([]repository.PreorderListRow, int64, int, int, error) {
	from, to, err := ResolveDateRange(DateRangeInput{DateFrom: input.DateFrom, DateTo: input.DateTo}, nil)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := clampPageSize(input.PageSize, constants.AdminOrderDefaultPageSize, constants.AdminOrderMinPageSize, constants.AdminOrderMaxPageSize)
	sortBy := constants.OrderSortCreatedAt
	if input.SortBy == constants.OrderSortTotal {
		sortBy = constants.OrderSortTotal
	}
	sortDir := constants.SortDirDesc
	if strings.EqualFold(input.SortDir, constants.SortDirAsc) {
		sortDir = constants.SortDirAsc
	}

	rows, total, err := s.preorderRepo.ListAdmin(repository.PreorderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      strings.ToUpper(strings.TrimSpace(input.Status)),
		Keyword:     input.Keyword,
		CreatedFrom: from,
		CreatedTo:   to,
		SortBy:      sortBy,
		SortDir:     sortDir,
	})
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("%w: %v", ErrPreorderFetchFailed, err)
	}
	return rows, total, page, pageSize, nil
}

// GetAdminDetail 后台详情（含明细、商品与 FBO 档案）
func (s *PreorderService) GetAdminDetail(id string) (*models.Preorder, error) {
	preorder, err := s.preorderRepo.GetDetail(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreorderFetchFailed, err)
	}
	if preorder == nil {
		return nil, ErrPreorderNotFound
	}
	return preorder, nil
}

func clampPageSize(value, fallback, min, max int) int {
	if value <= 0 {
		return fallback
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/akoudje/appfbo-backend/internal/cache"
	"github.com/akoudje/appfbo-backend/internal/constants"
	"github.com/akoudje/appfbo-backend/internal/logger"
	"github.com/akoudje/appfbo-backend/internal/repository"
)

const statsCacheTTL = 30 * time.Second

// StatsService 后台统计服务
type StatsService struct {
	repo repository.StatsRepository
}

// NewStatsService 创建统计服务
func NewStatsService(repo repository.StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// StatsResponse 统计结果
type StatsResponse struct {
	From         *time.Time                 `json:"from"`
	To           *time.Time                 `json:"to"`
	TotalOrders  int64                      `json:"total_orders"`
	TotalRevenue int64                      `json:"total_revenue"`
	ByStatus     []repository.StatusCount   `json:"by_status"`
	TopProducts  []repository.TopProductRow `json:"top_products"`
}

// GetStats 按日期范围聚合订单数、营收、状态分布与热销商品
func (s *StatsService) GetStats(ctx context.Context, input DateRangeInput) (*StatsResponse, error) {
	from, to, err := ResolveDateRange(input, nil)
	if err != nil {
		return nil, err
	}
	cacheKey := statsCacheKey(from, to)
	var cached StatsResponse
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		logger.Warnw("stats_cache_read_failed", "key", cacheKey, "error", err)
	} else if hit {
		return &cached, nil
	}

	filter := repository.StatsFilter{CreatedFrom: from, CreatedTo: to}
	overview, err := s.repo.GetOverview(filter)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.CountByStatus(filter)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.GetTopProducts(filter, constants.StatsTopProductsLimit)
	if err != nil {
		return nil, err
	}
	resp := &StatsResponse{
		From:         from,
		To:           to,
		TotalOrders:  overview.TotalOrders,
		TotalRevenue: overview.TotalRevenue,
		ByStatus:     byStatus,
		TopProducts:  top,
	}
	if err := cache.SetJSON(ctx, cacheKey, resp, statsCacheTTL); err != nil {
		logger.Warnw("stats_cache_write_failed", "key", cacheKey, "error", err)
	}
	return resp, nil
}

func statsCacheKey(from, to *time.Time) string {
	format := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return fmt.Sprintf("%d", t.Unix())
	}
	return fmt.Sprintf("stats:%s:%s", format(from), format(to))
}

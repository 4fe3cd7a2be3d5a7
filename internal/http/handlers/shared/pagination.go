package shared

import (
	"strconv"
	"strings"

	"github.com/akoudje/appfbo-backend/internal/http/response"
)

// QueryInt 解析整数查询参数，非法值回退为 fallback。
func QueryInt(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// BuildPagination 构造分页信息。
func BuildPagination(page, pageSize int, total int64) response.Pagination {
	return response.NewPagination(page, pageSize, total)
}

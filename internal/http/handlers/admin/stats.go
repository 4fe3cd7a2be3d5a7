package admin

import (
	handlershared "github.com/akoudje/appfbo-backend/internal/http/handlers/shared"
	"github.com/akoudje/appfbo-backend/internal/http/response"
	"github.com/akoudje/appfbo-backend/internal/service"

	"github.com/gin-gonic/gin"
)

var statsErrorRules = []handlershared.MappedError{
	{Target: service.ErrDateRangeInvalid, Code: response.CodeBadRequest, Key: "error.date_range_invalid"},
}

// GetStats 后台统计
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.StatsService.GetStats(c.Request.Context(), service.DateRangeInput{
		Date:     c.Query("date"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	})
	if err != nil {
		respondWithMappedError(c, err, statsErrorRules, response.CodeInternal, "error.stats_fetch_failed")
		return
	}
	response.Success(c, stats)
}

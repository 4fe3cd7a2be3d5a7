package service

import (
	"strings"
	"time"

	"github.com/akoudje/appfbo-backend/internal/constants"
	"github.com/akoudje/appfbo-backend/internal/models"
	"github.com/akoudje/appfbo-backend/internal/repository"
)

// AuditRecordInput 审计记录输入
type AuditRecordInput struct {
	OperatorAdminID  uint
	OperatorUsername string
	Action           string
	TargetType       string
	TargetID         string
	FromStatus       string
	ToStatus         string
	RequestID        string
	Detail           models.JSON
}

// AuditLogListInput 审计日志查询输入
type AuditLogListInput struct {
	Page            int
	PageSize        int
	OperatorAdminID uint
	Action          string
	TargetType      string
	TargetID        string
	DateFrom        string
	DateTo          string
}

// AuditService 后台操作审计服务
type AuditService struct {
	repo repository.AdminAuditLogRepository
	now  func() time.Time
}

// NewAuditService 创建审计服务
func NewAuditService(repo repository.AdminAuditLogRepository) *AuditService {
	return &AuditService{repo: repo, now: time.Now}
}

// Record 写入审计日志，缺少操作人或动作时忽略
func (s *AuditService) Record(input AuditRecordInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	if input.OperatorAdminID == 0 || strings.TrimSpace(input.Action) == "" {
		return nil
	}
	return s.repo.Create(&models.AdminAuditLog{
		OperatorAdminID:  input.OperatorAdminID,
		OperatorUsername: strings.TrimSpace(input.OperatorUsername),
		Action:           strings.TrimSpace(input.Action),
		TargetType:       strings.TrimSpace(input.TargetType),
		TargetID:         strings.TrimSpace(input.TargetID),
		FromStatus:       strings.TrimSpace(input.FromStatus),
		ToStatus:         strings.TrimSpace(input.ToStatus),
		RequestID:        strings.TrimSpace(input.RequestID),
		DetailJSON:       input.Detail,
		CreatedAt:        s.now(),
	})
}

// ListForAdmin 管理端分页查询
func (s *AuditService) ListForAdmin(input AuditLogListInput) ([]models.AdminAuditLog, int64, int, int, error) {
	from, to, err := ResolveDateRange(DateRangeInput{DateFrom: input.DateFrom, DateTo: input.DateTo}, nil)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := clampPageSize(input.PageSize, constants.AdminOrderDefaultPageSize, constants.AdminOrderMinPageSize, constants.AdminOrderMaxPageSize)
	if s == nil || s.repo == nil {
		return []models.AdminAuditLog{}, 0, page, pageSize, nil
	}
	rows, total, err := s.repo.ListAdmin(repository.AdminAuditLogListFilter{
		Page:            page,
		PageSize:        pageSize,
		OperatorAdminID: input.OperatorAdminID,
		Action:          strings.TrimSpace(input.Action),
		TargetType:      strings.TrimSpace(input.TargetType),
		TargetID:        strings.TrimSpace(input.TargetID),
		CreatedFrom:     from,
		CreatedTo:       to,
	})
	if err != nil {
		return nil, 0, 0, 0, err
	}
	return rows, total, page, pageSize, nil
}

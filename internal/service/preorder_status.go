package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/akoudje/appfbo-backend/internal/constants"
	"github.com/akoudje/appfbo-backend/internal/logger"
	"github.com/akoudje/appfbo-backend/internal/models"
)

// 受控流转表，提交由 Submit 单独处理
var preorderTransitions = map[string]map[string]bool{
	constants.PreorderStatusDraft: {
		constants.PreorderStatusSubmitted: true,
		constants.PreorderStatusCancelled: true,
	},
	constants.PreorderStatusSubmitted: {
		constants.PreorderStatusInvoiced:  true,
		constants.PreorderStatusPaid:      true,
		constants.PreorderStatusCancelled: true,
	},
	constants.PreorderStatusInvoiced: {
		constants.PreorderStatusInvoiced:  true,
		constants.PreorderStatusPaid:      true,
		constants.PreorderStatusCancelled: true,
	},
	constants.PreorderStatusPaid: {
		constants.PreorderStatusPaid: true,
	},
}

// 状态标签：大写字母开头，仅含大写字母、数字与下划线，长度不超过列宽 32
var statusLabelPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]{0,31}$`)

// CanTransition 判断受控流转是否允许
func CanTransition(from, to string) bool {
	next, ok := preorderTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

// BuildInvoiceReference 生成发票号 INV-YYYYMMDD-<FBO 编号去掉 '-'>，日期取提交时间（UTC）
func BuildInvoiceReference(submittedAt time.Time, fboNumber string) string {
	number := strings.TrimSpace(strings.ReplaceAll(fboNumber, "-", ""))
	return fmt.Sprintf("%s-%s-%s", constants.InvoiceReferencePrefix, submittedAt.UTC().Format("20060102"), number)
}

func (s *PreorderService) loadPreorder(id string) (*models.Preorder, error) {
	preorder, err := s.preorderRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreorderFetchFailed, err)
	}
	if preorder == nil {
		return nil, ErrPreorderNotFound
	}
	return preorder, nil
}

func (s *PreorderService) updateStatus(preorder *models.Preorder, status string, updates map[string]interface{}) (*models.Preorder, error) {
	if err := s.preorderRepo.UpdateStatus(preorder.ID, status, updates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreorderUpdateFailed, err)
	}
	logger.Infow("preorder_status_changed",
		"preorder_id", preorder.ID,
		"from", preorder.Status,
		"to", status,
	)
	return s.loadPreorder(preorder.ID)
}

// 按读取时的状态条件更新，状态已被并发修改时返回 false
func (s *PreorderService) advanceStatus(preorder *models.Preorder, status string, updates map[string]interface{}) (*models.Preorder, bool, error) {
	applied, err := s.preorderRepo.UpdateStatusFrom(preorder.ID, preorder.Status, status, updates)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrPreorderUpdateFailed, err)
	}
	if !applied {
		logger.Warnw("preorder_status_conflict",
			"preorder_id", preorder.ID,
			"expected", preorder.Status,
			"to", status,
		)
		return nil, false, nil
	}
	logger.Infow("preorder_status_changed",
		"preorder_id", preorder.ID,
		"from", preorder.Status,
		"to", status,
	)
	updated, err := s.loadPreorder(preorder.ID)
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

// Invoice 生成发票号并标记为已开票，可重复调用且发票号不变
func (s *PreorderService) Invoice(id string) (*models.Preorder, error) {
	preorder, err := s.loadPreorder(id)
	if err != nil {
		return nil, err
	}
	if preorder.SubmittedAt == nil {
		return nil, ErrPreorderNotFrozen
	}
	if !CanTransition(preorder.Status, constants.PreorderStatusInvoiced) {
		return nil, ErrPreorderStatusInvalid
	}
	ref := BuildInvoiceReference(*preorder.SubmittedAt, preorder.FboNumber)
	updated, applied, err := s.advanceStatus(preorder, constants.PreorderStatusInvoiced, map[string]interface{}{
		"invoice_reference": ref,
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrPreorderStatusInvalid
	}
	return updated, nil
}

// Pay 标记为已付款，已付款时直接返回，保留首次付款时间
func (s *PreorderService) Pay(id string) (*models.Preorder, error) {
	preorder, err := s.loadPreorder(id)
	if err != nil {
		return nil, err
	}
	if preorder.SubmittedAt == nil {
		return nil, ErrPreorderNotFrozen
	}
	if preorder.Status == constants.PreorderStatusPaid {
		return preorder, nil
	}
	if !CanTransition(preorder.Status, constants.PreorderStatusPaid) {
		return nil, ErrPreorderStatusInvalid
	}
	now := s.now()
	updated, applied, err := s.advanceStatus(preorder, constants.PreorderStatusPaid, map[string]interface{}{
		"paid_at": &now,
	})
	if err != nil {
		return nil, err
	}
	if applied {
		return updated, nil
	}
	// 并发付款已先完成
	current, err := s.loadPreorder(id)
	if err != nil {
		return nil, err
	}
	if current.Status == constants.PreorderStatusPaid {
		return current, nil
	}
	return nil, ErrPreorderStatusInvalid
}

// PatchStatus 后台直接改状态，不重新计价。
// SUBMITTED/INVOICED/PAID 需已冻结；DRAFT 仅在当前仍为草稿时接受；其它标签不限来源状态。
func (s *PreorderService) PatchStatus(id string, status string) (*models.Preorder, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !statusLabelPattern.MatchString(status) {
		return nil, ErrPreorderStatusInvalid
	}
	preorder, err := s.loadPreorder(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	now := s.now()
	switch status {
	case constants.PreorderStatusDraft:
		if preorder.Status != constants.PreorderStatusDraft {
			return nil, ErrPreorderStatusInvalid
		}
		return preorder, nil
	case constants.PreorderStatusSubmitted, constants.PreorderStatusInvoiced, constants.PreorderStatusPaid:
		if preorder.SubmittedAt == nil {
			return nil, ErrPreorderNotFrozen
		}
	}
	switch status {
	case constants.PreorderStatusInvoiced:
		if strings.TrimSpace(preorder.InvoiceReference) == "" {
			updates["invoice_reference"] = BuildInvoiceReference(*preorder.SubmittedAt, preorder.FboNumber)
		}
	case constants.PreorderStatusPaid:
		updates["paid_at"] = &now
	}
	return s.updateStatus(preorder, status, updates)
}

// ExpireStaleDrafts 将超过保留时长的草稿批量取消，返回处理数量
func (s *PreorderService) ExpireStaleDrafts(ctx context.Context) (int64, error) {
	before := s.now().Add(-s.draftTTL)
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		ids, err := s.preorderRepo.ListStaleDraftIDs(before, s.sweepBatchSize)
		if err != nil {
			return total, fmt.Errorf("%w: %v", ErrPreorderFetchFailed, err)
		}
		if len(ids) == 0 {
			return total, nil
		}
		affected, err := s.preorderRepo.CancelDrafts(ids, constants.PreorderStatusCancelled)
		if err != nil {
			return total, fmt.Errorf("%w: %v", ErrPreorderUpdateFailed, err)
		}
		total += affected
		if len(ids) < s.sweepBatchSize || affected == 0 {
			return total, nil
		}
	}
}

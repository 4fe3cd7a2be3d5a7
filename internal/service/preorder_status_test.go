package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/akoudje/appfbo-backend/internal/constants"
	"github.com/akoudje/appfbo-backend/internal/models"
	"github.com/akoudje/appfbo-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{constants.PreorderStatusDraft, constants.PreorderStatusSubmitted, true},
		{constants.PreorderStatusDraft, constants.PreorderStatusPaid, false},
		{constants.PreorderStatusSubmitted, constants.PreorderStatusInvoiced, true},
		{constants.PreorderStatusSubmitted, constants.PreorderStatusPaid, true},
		{constants.PreorderStatusInvoiced, constants.PreorderStatusInvoiced, true},
		{constants.PreorderStatusPaid, constants.PreorderStatusCancelled, false},
		{constants.PreorderStatusCancelled, constants.PreorderStatusPaid, false},
		{"UNKNOWN", constants.PreorderStatusPaid, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestBuildInvoiceReference(t *testing.T) {
	submitted := time.Date(2025, 3, 14, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*3600))
	got := BuildInvoiceReference(submitted, "225-000-123")
	if got != "INV-20250315-225000123" {
		t.Fatalf("unexpected reference: %s", got)
	}
}

func submittedPreorder(t *testing.T, f *serviceFixture, number string) *models.Preorder {
	t.Helper()
	preorder := f.createDraft(t, number, "G1", constants.DeliveryModePickup)
	if _, err := f.preorders.Submit(preorder.ID, ""); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	return preorder
}

func TestInvoiceAssignsStableReference(t *testing.T) {
	f := newServiceFixture(t)
	draft := f.createDraft(t, "225-020", "G1", constants.DeliveryModePickup)
	_, err := f.preorders.Invoice(draft.ID)
	assert.ErrorIs(t, err, ErrPreorderNotFrozen)

	preorder := submittedPreorder(t, f, "225-021")
	invoiced, err := f.preorders.Invoice(preorder.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.PreorderStatusInvoiced, invoiced.Status)
	assert.Equal(t, "INV-20250314-225021", invoiced.InvoiceReference)

	// 次日再次开票，发票号仍按提交日期生成
	f.clock = f.clock.Add(24 * time.Hour)
	again, err := f.preorders.Invoice(preorder.ID)
	require.NoError(t, err)
	assert.Equal(t, invoiced.InvoiceReference, again.InvoiceReference)

	_, err = f.preorders.Invoice("missing")
	assert.ErrorIs(t, err, ErrPreorderNotFound)
}

func TestPayIsIdempotent(t *testing.T) {
	f := newServiceFixture(t)
	preorder := submittedPreorder(t, f, "225-030")

	paid, err := f.preorders.Pay(preorder.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.PreorderStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	firstPaidAt := *paid.PaidAt

	f.clock = f.clock.Add(time.Hour)
	again, err := f.preorders.Pay(preorder.ID)
	require.NoError(t, err)
	require.NotNil(t, again.PaidAt)
	assert.True(t, again.PaidAt.Equal(firstPaidAt))

	_, err = f.preorders.Invoice(preorder.ID)
	assert.ErrorIs(t, err, ErrPreorderStatusInvalid)
}

// staleReadRepository 首次读取返回旧快照，模拟读取与写入之间的并发修改
type staleReadRepository struct {
	repository.PreorderRepository
	snapshot *models.Preorder
}

func (r *staleReadRepository) GetByID(id string) (*models.Preorder, error) {
	if r.snapshot != nil && r.snapshot.ID == id {
		stale := *r.snapshot
		r.snapshot = nil
		return &stale, nil
	}
	return r.PreorderRepository.GetByID(id)
}

func TestInvoiceAndPayDoNotOverwriteConcurrentChange(t *testing.T) {
	f := newServiceFixture(t)
	preorder := submittedPreorder(t, f, "225-032")
	snapshot, err := f.preorders.loadPreorder(preorder.ID)
	require.NoError(t, err)
	require.Equal(t, constants.PreorderStatusSubmitted, snapshot.Status)

	paid, err := f.preorders.Pay(preorder.ID)
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)
	firstPaidAt := *paid.PaidAt

	stale := &staleReadRepository{PreorderRepository: repository.NewPreorderRepository(f.db)}
	racing := *f.preorders
	racing.preorderRepo = stale

	stale.snapshot = snapshot
	_, err = racing.Invoice(preorder.ID)
	assert.ErrorIs(t, err, ErrPreorderStatusInvalid)

	current, err := f.preorders.loadPreorder(preorder.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.PreorderStatusPaid, current.Status)
	assert.Empty(t, current.InvoiceReference)

	// 并发付款后再次付款返回首次结果
	f.clock = f.clock.Add(time.Hour)
	stale.snapshot = snapshot
	again, err := racing.Pay(preorder.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.PreorderStatusPaid, again.Status)
	require.NotNil(t, again.PaidAt)
	assert.True(t, again.PaidAt.Equal(firstPaidAt))
}

func TestPayRejectsCancelled(t *testing.T) {
	f := newServiceFixture(t)
	preorder := submittedPreorder(t, f, "225-031")
	_, err := f.preorders.PatchStatus(preorder.ID, "cancelled")
	require.NoError(t, err)

	_, err = f.preorders.Pay(preorder.ID)
	assert.ErrorIs(t, err, ErrPreorderStatusInvalid)
}

func TestPatchStatusRules(t *testing.T) {
	f := newServiceFixture(t)
	draft := f.createDraft(t, "225-040", "G1", constants.DeliveryModePickup)

	_, err := f.preorders.PatchStatus(draft.ID, constants.PreorderStatusPaid)
	assert.ErrorIs(t, err, ErrPreorderNotFrozen)

	same, err := f.preorders.PatchStatus(draft.ID, "draft")
	require.NoError(t, err)
	assert.Equal(t, constants.PreorderStatusDraft, same.Status)

	for _, label := range []string{" ", "ON HOLD", "PAID;DROP", "on-hold", strings.Repeat("X", 33)} {
		_, err = f.preorders.PatchStatus(draft.ID, label)
		assert.ErrorIs(t, err, ErrPreorderStatusInvalid, "label %q", label)
	}

	preorder := submittedPreorder(t, f, "225-041")
	_, err = f.preorders.PatchStatus(preorder.ID, constants.PreorderStatusDraft)
	assert.ErrorIs(t, err, ErrPreorderStatusInvalid)

	invoiced, err := f.preorders.PatchStatus(preorder.ID, "INVOICED")
	require.NoError(t, err)
	assert.Equal(t, "INV-20250314-225041", invoiced.InvoiceReference)

	paid, err := f.preorders.PatchStatus(preorder.ID, "paid")
	require.NoError(t, err)
	assert.Equal(t, constants.PreorderStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, invoiced.InvoiceReference, paid.InvoiceReference)

	// 后台覆盖不重新计价
	assert.Equal(t, invoiced.Total, paid.Total)

	labelled, err := f.preorders.PatchStatus(preorder.ID, "on_hold")
	require.NoError(t, err)
	assert.Equal(t, "ON_HOLD", labelled.Status)

	longest, err := f.preorders.PatchStatus(preorder.ID, strings.Repeat("X", 32))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("X", 32), longest.Status)
}

func TestExpireStaleDrafts(t *testing.T) {
	f := newServiceFixture(t)
	old := f.clock.Add(-96 * time.Hour)
	stale := make([]string, 0, 3)
	for _, number := range []string{"225-050", "225-051", "225-052"} {
		stale = append(stale, f.createDraft(t, number, "G1", constants.DeliveryModePickup).ID)
	}
	fresh := f.createDraft(t, "225-053", "G1", constants.DeliveryModePickup)
	submitted := submittedPreorder(t, f, "225-054")

	require.NoError(t, f.db.Model(&models.Preorder{}).
		Where("id IN ?", append([]string{submitted.ID}, stale...)).
		UpdateColumn("created_at", old).Error)
	require.NoError(t, f.db.Model(&models.Preorder{}).
		Where("id = ?", fresh.ID).
		UpdateColumn("created_at", f.clock.Add(-time.Hour)).Error)

	count, err := f.preorders.ExpireStaleDrafts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	var statuses []string
	require.NoError(t, f.db.Model(&models.Preorder{}).Where("id IN ?", stale).Pluck("status", &statuses).Error)
	require.Len(t, statuses, 3)
	for _, status := range statuses {
		assert.Equal(t, constants.PreorderStatusCancelled, status)
	}
	var freshStatus, submittedStatus []string
	require.NoError(t, f.db.Model(&models.Preorder{}).Where("id = ?", fresh.ID).Pluck("status", &freshStatus).Error)
	require.NoError(t, f.db.Model(&models.Preorder{}).Where("id = ?", submitted.ID).Pluck("status", &submittedStatus).Error)
	assert.Equal(t, []string{constants.PreorderStatusDraft}, freshStatus)
	assert.Equal(t, []string{constants.PreorderStatusSubmitted}, submittedStatus)

	count, err = f.preorders.ExpireStaleDrafts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

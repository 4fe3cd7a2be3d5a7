package repository

import (
	"testing"
	"time"

	"github.com/akoudje/appfbo-backend/internal/constants"
	"github.com/akoudje/appfbo-backend/internal/models"
)

func TestStatsRepositoryAggregates(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewStatsRepository(db)
	preorders := NewPreorderRepository(db)

	aloe := createTestProduct(t, db, "ALOE", 10000, "0.100", "1.000")
	bee := createTestProduct(t, db, "BEE", 5000, "0.050", "0.500")

	paid := createTestPreorder(t, db, "100")
	draft := createTestPreorder(t, db, "200")
	if err := preorders.ReplaceItems(paid.ID, []models.PreorderItem{
		{ProductID: aloe.ID, Qty: 2, LineTotal: 20000},
		{ProductID: bee.ID, Qty: 1, LineTotal: 5000},
	}); err != nil {
		t.Fatalf("replace items failed: %v", err)
	}
	if err := preorders.ReplaceItems(draft.ID, []models.PreorderItem{{ProductID: bee.ID, Qty: 4, LineTotal: 20000}}); err != nil {
		t.Fatalf("replace items failed: %v", err)
	}
	if err := preorders.UpdateStatus(paid.ID, constants.PreorderStatusPaid, map[string]interface{}{"total": 25000}); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	overview, err := repo.GetOverview(StatsFilter{})
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if overview.TotalOrders != 2 || overview.TotalRevenue != 25000 {
		t.Fatalf("unexpected overview: %+v", overview)
	}

	byStatus, err := repo.CountByStatus(StatsFilter{})
	if err != nil {
		t.Fatalf("count by status failed: %v", err)
	}
	if len(byStatus) != 2 {
		t.Fatalf("expected 2 status groups, got %+v", byStatus)
	}

	top, err := repo.GetTopProducts(StatsFilter{}, 5)
	if err != nil {
		t.Fatalf("top products failed: %v", err)
	}
	if len(top) != 2 || top[0].SKU != "BEE" || top[0].Revenue != 25000 || top[0].Qty != 5 {
		t.Fatalf("unexpected top products: %+v", top)
	}

	future := time.Now().Add(24 * time.Hour)
	overview, err = repo.GetOverview(StatsFilter{CreatedFrom: &future})
	if err != nil || overview.TotalOrders != 0 {
		t.Fatalf("expected empty range, got %+v err=%v", overview, err)
	}
}

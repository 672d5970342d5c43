package sqlite

import (
	"context"
	"testing"

	"github.com/example/pm-timetracker/internal/persistence"
)

// seedReportData loads a small cross-manager dataset used by the report
// query tests.
func seedReportData(t *testing.T, pool *ConnectionPool) {
	t.Helper()
	repo := NewEntryRepository(pool)
	ctx := context.Background()

	entries := []persistence.TimeEntry{
		testEntry("r1", "Sandra Bergmann", "2026-03-02", "1111111", 6, "Werktag"),
		testEntry("r2", "Sandra Bergmann", "2026-03-03", "1111111", 2, "Werktag"),
		testEntry("r3", "Sandra Bergmann", "2026-03-07", "2222222", 3, "Samstag"),
		testEntry("r4", "Sandra Bergmann", "2026-03-04", "Absent", 8, "Werktag"),
		testEntry("r5", "Jonas Petersen", "2026-03-02", "1111111", 4, "Werktag"),
		testEntry("r6", "Jonas Petersen", "2026-03-03", "3333333", 5, "Werktag"),
	}
	for _, entry := range entries {
		if err := repo.InsertEntry(ctx, entry); err != nil {
			t.Fatalf("InsertEntry failed: %v", err)
		}
	}
}

func TestReportRepository_HoursByManager(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()
	seedReportData(t, pool)

	repo := NewReportRepository(pool)
	rows, err := repo.HoursByManager(context.Background(), persistence.ReportFilter{})
	if err != nil {
		t.Fatalf("HoursByManager failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 managers, got %d", len(rows))
	}
	if rows[0].ManagerName != "Sandra Bergmann" || rows[0].Hours != 19 {
		t.Errorf("Unexpected first row: %+v", rows[0])
	}
	if rows[1].ManagerName != "Jonas Petersen" || rows[1].Hours != 9 {
		t.Errorf("Unexpected second row: %+v", rows[1])
	}
}

func TestReportRepository_HoursByManager_ExcludesAbsence(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()
	seedReportData(t, pool)

	repo := NewReportRepository(pool)
	rows, err := repo.HoursByManager(context.Background(), persistence.ReportFilter{
		ExcludeOrders: []string{"Absent"},
	})
	if err != nil {
		t.Fatalf("HoursByManager failed: %v", err)
	}
	for _, row := range rows {
		if row.ManagerName == "Sandra Bergmann" && row.Hours != 11 {
			t.Errorf("Expected 11 billable hours for Sandra Bergmann, got %v", row.Hours)
		}
	}
}

func TestReportRepository_TopOrders(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()
	seedReportData(t, pool)

	repo := NewReportRepository(pool)
	rows, err := repo.TopOrders(context.Background(), persistence.ReportFilter{}, 2)
	if err != nil {
		t.Fatalf("TopOrders failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected limit of 2 orders, got %d", len(rows))
	}
	if rows[0].OrderNr != "1111111" || rows[0].Hours != 12 {
		t.Errorf("Unexpected top order: %+v", rows[0])
	}
	// Absence rows must never surface as an order.
	for _, row := range rows {
		if row.OrderNr == "Absent" {
			t.Error("Absence sentinel appeared in top orders")
		}
	}
}

func TestReportRepository_OrderDistribution(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()
	seedReportData(t, pool)

	repo := NewReportRepository(pool)
	ctx := context.Background()

	all, err := repo.OrderDistribution(ctx, "", persistence.ReportFilter{})
	if err != nil {
		t.Fatalf("OrderDistribution failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 orders across all managers, got %d", len(all))
	}

	scoped, err := repo.OrderDistribution(ctx, "Jonas Petersen", persistence.ReportFilter{})
	if err != nil {
		t.Fatalf("OrderDistribution failed: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("Expected 2 orders for Jonas Petersen, got %d", len(scoped))
	}
	if scoped[0].OrderNr != "3333333" || scoped[0].Hours != 5 {
		t.Errorf("Unexpected scoped row: %+v", scoped[0])
	}
}

func TestReportRepository_BillableSplit(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()
	seedReportData(t, pool)

	repo := NewReportRepository(pool)
	rows, err := repo.BillableSplit(context.Background(), persistence.ReportFilter{})
	if err != nil {
		t.Fatalf("BillableSplit failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 managers, got %d", len(rows))
	}
	// Ordered by manager name.
	if rows[1].ManagerName != "Sandra Bergmann" || rows[1].Billable != 11 || rows[1].Absent != 8 {
		t.Errorf("Unexpected split for Sandra Bergmann: %+v", rows[1])
	}
	if rows[0].ManagerName != "Jonas Petersen" || rows[0].Billable != 9 || rows[0].Absent != 0 {
		t.Errorf("Unexpected split for Jonas Petersen: %+v", rows[0])
	}
}

func TestReportRepository_WeekendShare(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()
	seedReportData(t, pool)

	// Sunday rows cannot be created through the service, but imported data
	// may carry them and they still count as weekend hours.
	entryRepo := NewEntryRepository(pool)
	sunday := testEntry("sun1", "Jonas Petersen", "2026-03-08", "3333333", 2, "Sonntag")
	if err := entryRepo.InsertEntry(context.Background(), sunday); err != nil {
		t.Fatalf("InsertEntry failed: %v", err)
	}

	repo := NewReportRepository(pool)
	rows, err := repo.WeekendShare(context.Background(), persistence.ReportFilter{})
	if err != nil {
		t.Fatalf("WeekendShare failed: %v", err)
	}
	for _, row := range rows {
		switch row.ManagerName {
		case "Sandra Bergmann":
			if row.WeekendHours != 3 || row.TotalHours != 19 {
				t.Errorf("Unexpected weekend share: %+v", row)
			}
		case "Jonas Petersen":
			if row.WeekendHours != 2 || row.TotalHours != 11 {
				t.Errorf("Unexpected weekend share: %+v", row)
			}
		}
	}
}

func TestReportRepository_OrderManagerBreakdown(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()
	seedReportData(t, pool)

	repo := NewReportRepository(pool)
	rows, err := repo.OrderManagerBreakdown(context.Background(), "1111111", persistence.ReportFilter{})
	if err != nil {
		t.Fatalf("OrderManagerBreakdown failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 managers on order 1111111, got %d", len(rows))
	}
	if rows[0].ManagerName != "Sandra Bergmann" || rows[0].Hours != 8 {
		t.Errorf("Unexpected first row: %+v", rows[0])
	}
	if rows[1].ManagerName != "Jonas Petersen" || rows[1].Hours != 4 {
		t.Errorf("Unexpected second row: %+v", rows[1])
	}
}

func TestReportRepository_TotalsPerDate(t *testing.T) {
	pool, cleanup := setupTestPool(t)
	defer cleanup()
	seedReportData(t, pool)

	repo := NewReportRepository(pool)
	rows, err := repo.TotalsPerDate(context.Background(), persistence.ReportFilter{
		From: "2026-03-02",
		To:   "2026-03-03",
	})
	if err != nil {
		t.Fatalf("TotalsPerDate failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 dates, got %d", len(rows))
	}
	if rows[0].Date != "2026-03-02" || rows[0].Hours != 10 {
		t.Errorf("Unexpected first row: %+v", rows[0])
	}
	if rows[1].Date != "2026-03-03" || rows[1].Hours != 7 {
		t.Errorf("Unexpected second row: %+v", rows[1])
	}
}

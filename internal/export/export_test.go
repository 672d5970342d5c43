package export

import (
	"testing"
	"time"
)

func TestBuildWorkbook_HeaderAndRows(t *testing.T) {
	rows := []Row{
		{Date: "2026-03-02", OrderNr: "1234567", Duration: 7.5, DayType: "Werktag", Comment: "Review", ManagerName: "Sandra Bergmann"},
		{Date: "2026-03-07", OrderNr: "Absent", Duration: 8, DayType: "Samstag", ManagerName: "Sandra Bergmann"},
	}

	f, err := BuildWorkbook(rows)
	if err != nil {
		t.Fatalf("BuildWorkbook failed: %v", err)
	}
	defer f.Close()

	header, err := f.GetCellValue(SheetName, "A1")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if header != "Datum" {
		t.Errorf("Expected header 'Datum', got '%s'", header)
	}
	lastHeader, err := f.GetCellValue(SheetName, "H1")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if lastHeader != "User" {
		t.Errorf("Expected header 'User', got '%s'", lastHeader)
	}

	// 2026-03-02 is a Monday in ISO week 10.
	week, err := f.GetCellValue(SheetName, "B2")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if week != "10" {
		t.Errorf("Expected week 10, got '%s'", week)
	}
	weekday, err := f.GetCellValue(SheetName, "C2")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if weekday != "Mo." {
		t.Errorf("Expected weekday 'Mo.', got '%s'", weekday)
	}

	order, err := f.GetCellValue(SheetName, "E3")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if order != "Absent" {
		t.Errorf("Expected absence sentinel in order column, got '%s'", order)
	}
}

func TestBuildWorkbook_RejectsMalformedDate(t *testing.T) {
	_, err := BuildWorkbook([]Row{{Date: "02.03.2026"}})
	if err == nil {
		t.Fatal("Expected error for malformed date, got nil")
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	global := Filename("", now)
	if global != "zeiterfassung_alle_2026-03-02.xlsx" {
		t.Errorf("Unexpected global filename: %s", global)
	}

	scoped := Filename("Sandra Bergmann", now)
	if scoped != "zeiterfassung_Sandra_Bergmann_2026-03-02.xlsx" {
		t.Errorf("Unexpected scoped filename: %s", scoped)
	}
}

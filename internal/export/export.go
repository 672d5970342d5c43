// Package export renders time entries into xlsx workbooks.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/pm-timetracker/internal/calendar"
)

// SheetName is the single worksheet all exports write to.
const SheetName = "Zeiterfassung"

// Row is one exported time entry. OrderNr carries the absence sentinel
// for absences, mirroring the stored representation.
type Row struct {
	Date        string
	OrderNr     string
	Duration    float64
	DayType     string
	Comment     string
	ManagerName string
}

var headers = []string{
	"Datum",
	"KW",
	"Wochentag",
	"Tagesart",
	"Auftragsnr",
	"Investierte Zeit (h)",
	"Kommentar",
	"User",
}

// BuildWorkbook renders the rows into a workbook with a bold header row
// and derived week number and weekday columns.
func BuildWorkbook(rows []Row) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range rows {
		day, err := calendar.ParseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d has malformed date %q: %w", i+1, row.Date, err)
		}
		_, week := calendar.ISOWeek(day)
		values := []any{
			row.Date,
			week,
			calendar.WeekdayName(day),
			row.DayType,
			row.OrderNr,
			row.Duration,
			row.Comment,
			row.ManagerName,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	return f, nil
}

// Filename derives the attachment name for an export, scoped to the
// manager when one is given.
func Filename(managerName string, now time.Time) string {
	stamp := now.Format("2006-01-02")
	if managerName == "" {
		return fmt.Sprintf("zeiterfassung_alle_%s.xlsx", stamp)
	}
	return fmt.Sprintf("zeiterfassung_%s_%s.xlsx", sanitize(managerName), stamp)
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ', r == '-', r == '_':
			out = append(out, '_')
		}
	}
	return string(out)
}

package application

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/pm-timetracker/internal/export"
	"github.com/example/pm-timetracker/internal/persistence"
)

// ExportResult is a rendered workbook ready to be served as an attachment.
type ExportResult struct {
	Filename string
	Content  []byte
}

// ExportService renders entry listings into xlsx workbooks.
type ExportService struct {
	entries EntryStore
	now     func() time.Time
	logger  *slog.Logger
}

// NewExportService wires dependencies for the export service.
func NewExportService(entries EntryStore, now func() time.Time, logger *slog.Logger) *ExportService {
	if now == nil {
		now = time.Now
	}
	return &ExportService{entries: entries, now: now, logger: defaultLogger(logger)}
}

// Export renders the matching entries into a workbook. An empty manager
// name exports all managers and requires an admin principal. Exports with
// no matching rows fail with ErrNoExportRows.
func (s *ExportService) Export(ctx context.Context, params ExportParams) (ExportResult, error) {
	if s == nil {
		return ExportResult{}, fmt.Errorf("ExportService is nil")
	}
	if s.entries == nil {
		return ExportResult{}, fmt.Errorf("entry store not configured")
	}

	managerName := params.ManagerName
	if !params.Principal.IsAdmin {
		if managerName == "" || managerName == params.Principal.ManagerName {
			managerName = params.Principal.ManagerName
		} else {
			return ExportResult{}, ErrUnauthorized
		}
	}

	logger := serviceLogger(ctx, s.logger, "ExportService", "Export",
		"manager", managerName,
		"from", params.From,
		"to", params.To,
	)

	stored, err := s.entries.ListEntries(ctx, persistence.EntryFilter{
		ManagerName: managerName,
		From:        params.From,
		To:          params.To,
	})
	if err != nil {
		return ExportResult{}, mapRepoError(err)
	}
	if len(stored) == 0 {
		return ExportResult{}, ErrNoExportRows
	}

	rows := make([]export.Row, 0, len(stored))
	for _, entry := range stored {
		rows = append(rows, export.Row{
			Date:        entry.Date,
			OrderNr:     entry.OrderNr,
			Duration:    entry.Duration,
			DayType:     entry.DayType,
			Comment:     entry.Comment,
			ManagerName: entry.ManagerName,
		})
	}

	workbook, err := export.BuildWorkbook(rows)
	if err != nil {
		logger.ErrorContext(ctx, "workbook rendering failed", "error", err, "error_kind", ErrorKind(err))
		return ExportResult{}, err
	}
	defer workbook.Close()

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		return ExportResult{}, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	logger.With("row_count", len(rows)).InfoContext(ctx, "export rendered")
	return ExportResult{
		Filename: export.Filename(managerName, s.now()),
		Content:  buf.Bytes(),
	}, nil
}

// Package export serializes canonical tables to downloadable workbooks.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vallesalud/cartera/internal/canonical"
)

const defaultSheet = "Procesado"

// Service writes XLSX bytes for processed batches.
type Service struct {
	sheet  string
	logger *slog.Logger
}

func NewService(logger *slog.Logger, sheet string) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sheet == "" {
		sheet = defaultSheet
	}
	return &Service{sheet: sheet, logger: logger}
}

// Workbook returns an XLSX workbook (as bytes) for the table: header row in
// canonical column order, one row per canonical row, no index column. An
// empty table still produces the header row so downstream consumers always
// see the full shape.
func (s *Service) Workbook(table *canonical.Table) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(s.sheet); err != nil {
		return nil, err
	}
	if s.sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, err
		}
	}
	index, err := f.GetSheetIndex(s.sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	for i, h := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(s.sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := row.Record()
		if err := f.SetSheetRow(s.sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("export.workbook.ok", "rows", len(table.Rows), "duration", time.Since(start))
	return buf.Bytes(), nil
}

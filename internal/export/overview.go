// Package export renders overview listings as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/time-service/internal/domain"
	"github.com/spec-kit/time-service/internal/reporting"
)

// SheetName is the worksheet holding the overview rows.
const SheetName = "Oversigt"

var overviewHeader = []any{"Dato", "Bruger", "Brugernavn", "Afdeling", "Minutter", "Udført", "Bemærkninger"}

// WriteOverview writes entries in the given order followed by a totals row.
func WriteOverview(w io.Writer, entries []domain.TimeEntry, totals reporting.Totals) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}

	if err := sw.SetRow("A1", overviewHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, e := range entries {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		performed := ""
		if e.PerformedDate != nil {
			performed = e.PerformedDate.Format("2006-01-02")
		}
		row := []any{
			e.Date.Format("2006-01-02 15:04"),
			e.FullName,
			e.Username,
			e.Department,
			e.Minutes,
			performed,
			e.Remarks,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	// The totals row follows the header columns: count under Bruger, the
	// minute sum under Minutter and the readable duration under Bemærkninger.
	totalCell, _ := excelize.CoordinatesToCellName(1, len(entries)+3)
	summary := []any{
		"Total",
		fmt.Sprintf("%d registreringer", totals.Count),
		"",
		"",
		totals.TotalMinutes,
		"",
		fmt.Sprintf("%dt %dm (%.1f timer)", totals.Hours, totals.Minutes, totals.DecimalHours),
	}
	if err := sw.SetRow(totalCell, summary); err != nil {
		return fmt.Errorf("write totals: %w", err)
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

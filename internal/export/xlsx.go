package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gym_backend/internal/models"
)

// SheetName is the worksheet holding the revenue report.
const SheetName = "Reporte"

// ErrNoRows is returned when the report has nothing to export.
var ErrNoRows = errors.New("no hay datos para exportar")

var incomeHeader = []interface{}{"Fecha", "Cliente", "Tipo", "Monto", "Medio de pago"}

// IncomeReportFileName names the workbook after the day it was produced.
func IncomeReportFileName(day models.Date) string {
	return fmt.Sprintf("reporte_ingresos_%s.xlsx", day.String())
}

// WriteIncomeReport writes the report rows, followed by a total line, as an xlsx workbook.
func WriteIncomeReport(w io.Writer, report *models.IncomeReport) error {
	if report == nil || len(report.Detalle) == 0 {
		return ErrNoRows
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &incomeHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for _, r := range report.Detalle {
		excelRow := []interface{}{r.Fecha.String(), r.Cliente, r.Tipo, r.Monto, r.MedioPago}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", row, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &excelRow); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
		row++
	}

	totalRow := []interface{}{"Total", nil, nil, report.Total}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for total: %w", err)
	}
	if err := f.SetSheetRow(SheetName, cell, &totalRow); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

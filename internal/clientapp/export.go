package clientapp

import (
	"fmt"
	"os"
	"path/filepath"

	"gym_backend/internal/export"
	"gym_backend/internal/models"
)

// ExportReport writes the report into dir as reporte_ingresos_<today>.xlsx and returns the path.
// An empty report yields export.ErrNoRows and no file.
func ExportReport(report *models.IncomeReport, dir string, today models.Date) (string, error) {
	if report == nil || len(report.Detalle) == 0 {
		return "", export.ErrNoRows
	}

	path := filepath.Join(dir, export.IncomeReportFileName(today))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := export.WriteIncomeReport(f, report); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}

package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"gym_backend/internal/export"
	"gym_backend/internal/models"
	"gym_backend/internal/services"
	"gym_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the revenue report, its export and the dashboard.
type ReportHandler struct {
	reportService services.ReportService
	clock         services.Clock
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService, clock services.Clock) *ReportHandler {
	return &ReportHandler{reportService: rs, clock: clock}
}

func (h *ReportHandler) loadIncomeReport(c *gin.Context) (*models.IncomeReport, bool) {
	filter, err := services.ParseIncomeFilter(c.Query("dia"), c.Query("mes"), c.Query("anio"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Filtro de reporte inválido", err.Error()))
		return nil, false
	}

	report, err := h.reportService.GetIncomeReport(c.Request.Context(), filter)
	if err != nil {
		utils.LogError(err, "GetIncomeReport: Error from reportService.GetIncomeReport")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Error al generar reporte", err.Error()).WithCause(err))
		return nil, false
	}
	return report, true
}

// GetIncomeReport handles GET /reporte-ingresos?dia&mes&anio.
func (h *ReportHandler) GetIncomeReport(c *gin.Context) {
	report, ok := h.loadIncomeReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportIncomeReport handles GET /reporte-ingresos/excel with the same filters.
func (h *ReportHandler) ExportIncomeReport(c *gin.Context) {
	report, ok := h.loadIncomeReport(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteIncomeReport(&buf, report); err != nil {
		if errors.Is(err, export.ErrNoRows) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No hay datos para exportar", ""))
			return
		}
		utils.LogError(err, "ExportIncomeReport: Failed to build workbook")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Error al generar reporte", err.Error()).WithCause(err))
		return
	}

	fileName := export.IncomeReportFileName(models.NewDate(h.clock.Now()))
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GetDashboard handles GET /dashboard.
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	summary, err := h.reportService.GetDashboardSummary(c.Request.Context())
	if err != nil {
		utils.LogError(err, "GetDashboard: Error from reportService.GetDashboardSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Error al cargar dashboard", err.Error()).WithCause(err))
		return
	}
	c.JSON(http.StatusOK, summary)
}

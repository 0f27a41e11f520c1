package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gym_backend/internal/models"
	"gym_backend/internal/repositories"
	"gym_backend/pkg/utils"
)

var ErrReportFilter = errors.New("invalid report filter")

// ParseIncomeFilter builds a filter from the dia, mes and anio query values.
// Blank values leave the corresponding predicate unset.
func ParseIncomeFilter(dia, mes, anio string) (models.IncomeFilter, error) {
	var filter models.IncomeFilter

	y, err := utils.StrToOptionalInt(anio)
	if err != nil || (y != nil && *y < 1) {
		return filter, fmt.Errorf("%w: anio must be a positive year, got %q", ErrReportFilter, anio)
	}
	filter.Anio = y

	m, err := utils.StrToOptionalInt(mes)
	if err != nil || (m != nil && (*m < 1 || *m > 12)) {
		return filter, fmt.Errorf("%w: mes must be between 1 and 12, got %q", ErrReportFilter, mes)
	}
	filter.Mes = m

	if s := strings.TrimSpace(dia); s != "" {
		d, err := models.ParseDate(s)
		if err != nil {
			return filter, fmt.Errorf("%w: %v", ErrReportFilter, err)
		}
		filter.Dia = &d
	}
	return filter, nil
}

type ReportService interface {
	GetIncomeReport(ctx context.Context, filter models.IncomeFilter) (*models.IncomeReport, error)
	GetDashboardSummary(ctx context.Context) (*models.DashboardSummary, error)
}

type reportService struct {
	reportRepo repositories.ReportRepository
	clientRepo repositories.ClientRepository
	clock      Clock
	rules      MembershipRules
}

// NewReportService creates a new instance of ReportService.
func NewReportService(reportRepo repositories.ReportRepository, clientRepo repositories.ClientRepository, clock Clock, rules MembershipRules) ReportService {
	return &reportService{reportRepo: reportRepo, clientRepo: clientRepo, clock: clock, rules: rules}
}

// GetIncomeReport returns the matching payments, newest first, and their total.
func (s *reportService) GetIncomeReport(ctx context.Context, filter models.IncomeFilter) (*models.IncomeReport, error) {
	detail, err := s.reportRepo.GetIncomeDetail(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get income detail: %w", err)
	}
	total, err := s.reportRepo.GetIncomeTotal(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get income total: %w", err)
	}
	return &models.IncomeReport{Detalle: detail, Total: total}, nil
}

// GetDashboardSummary counts clients and overdue members and sums this month's and this year's income.
func (s *reportService) GetDashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	now := today(s.clock)
	year, month := now.Year(), int(now.Month())

	totalClientes, err := s.clientRepo.CountClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}
	morosos, err := s.clientRepo.CountOverdueClients(ctx, now, s.rules.DiasDashboard)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue clients: %w", err)
	}
	ingresosMes, err := s.reportRepo.GetIncomeTotal(ctx, models.IncomeFilter{Anio: &year, Mes: &month})
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly income: %w", err)
	}
	ingresosAnio, err := s.reportRepo.GetIncomeTotal(ctx, models.IncomeFilter{Anio: &year})
	if err != nil {
		return nil, fmt.Errorf("failed to sum yearly income: %w", err)
	}

	return &models.DashboardSummary{
		TotalClientes:   totalClientes,
		ClientesMorosos: morosos,
		IngresosMes:     ingresosMes,
		IngresosAnio:    ingresosAnio,
	}, nil
}

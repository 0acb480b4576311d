package services

import (
	"errors"
	"fmt"

	"storecrm_backend/internal/models"
	"storecrm_backend/internal/repositories"
	"storecrm_backend/pkg/format"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// recentRecordLimit is how many recent records the dashboard shows per entity.
const recentRecordLimit = 5

// --- ReportService Interface ---
type ReportService interface {
	GetDashboardSummary() (*models.DashboardSummary, error)
	ExportMonthlyRevenues(storeID int64, year, month int) (*excelize.File, string, error)
}

// --- reportService Implementation ---
type reportService struct {
	customerRepo    repositories.CustomerRepository
	storeRepo       repositories.StoreRepository
	reservationRepo repositories.ReservationRepository
	revenueRepo     repositories.RevenueRepository
	targetRepo      repositories.TargetRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	customerRepo repositories.CustomerRepository,
	storeRepo repositories.StoreRepository,
	reservationRepo repositories.ReservationRepository,
	revenueRepo repositories.RevenueRepository,
	targetRepo repositories.TargetRepository,
) ReportService {
	return &reportService{
		customerRepo:    customerRepo,
		storeRepo:       storeRepo,
		reservationRepo: reservationRepo,
		revenueRepo:     revenueRepo,
		targetRepo:      targetRepo,
	}
}

// GetDashboardSummary gathers entity totals and the most recent records.
func (s *reportService) GetDashboardSummary() (*models.DashboardSummary, error) {
	summary := &models.DashboardSummary{}
	var err error

	if summary.TotalCustomers, err = s.customerRepo.CountCustomers(); err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	if summary.TotalStores, err = s.storeRepo.CountStores(); err != nil {
		return nil, fmt.Errorf("failed to count stores: %w", err)
	}
	if summary.TotalReservations, err = s.reservationRepo.CountReservations(); err != nil {
		return nil, fmt.Errorf("failed to count reservations: %w", err)
	}
	if summary.TotalRevenues, err = s.revenueRepo.CountRevenues(); err != nil {
		return nil, fmt.Errorf("failed to count revenues: %w", err)
	}

	if summary.RecentCustomers, err = s.customerRepo.GetRecentCustomers(recentRecordLimit); err != nil {
		return nil, fmt.Errorf("failed to list recent customers: %w", err)
	}
	if summary.RecentStores, err = s.storeRepo.GetRecentStores(recentRecordLimit); err != nil {
		return nil, fmt.Errorf("failed to list recent stores: %w", err)
	}
	if summary.RecentReservations, err = s.reservationRepo.GetRecentReservations(recentRecordLimit); err != nil {
		return nil, fmt.Errorf("failed to list recent reservations: %w", err)
	}
	if summary.RecentRevenues, err = s.revenueRepo.GetRecentRevenues(recentRecordLimit); err != nil {
		return nil, fmt.Errorf("failed to list recent revenues: %w", err)
	}
	return summary, nil
}

// ExportMonthlyRevenues builds an XLSX workbook of a store's revenue records
// for a month, one row per record with totals, plus a summary row against
// the monthly target. Returns the workbook and a suggested filename.
func (s *reportService) ExportMonthlyRevenues(storeID int64, year, month int) (*excelize.File, string, error) {
	if month < 1 || month > 12 {
		return nil, "", fmt.Errorf("%w: month must be between 1 and 12", ErrTargetValidation)
	}

	store, err := s.storeRepo.GetStoreByID(storeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrStoreNotFound
		}
		return nil, "", fmt.Errorf("failed to retrieve store: %w", err)
	}

	revenues, err := s.revenueRepo.GetRevenuesForMonth(storeID, year, month)
	if err != nil {
		return nil, "", fmt.Errorf("failed to retrieve revenues: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Revenues"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Guests", "Additions", "Deductions", "Net Revenue", "Notes"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	monthAdditions := decimal.Zero
	monthDeductions := decimal.Zero
	row := 2
	for _, revenue := range revenues {
		totals, err := s.revenueRepo.GetRevenueTotals(revenue.ID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to total revenue %d: %w", revenue.ID, err)
		}
		monthAdditions = monthAdditions.Add(totals.TotalAdditions)
		monthDeductions = monthDeductions.Add(totals.TotalDeductions)

		guests := 0
		if revenue.Guests != nil {
			guests = *revenue.Guests
		}
		notes := ""
		if revenue.Notes != nil {
			notes = *revenue.Notes
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), revenue.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), guests)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), format.NumberID(totals.TotalAdditions, 2))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), format.NumberID(totals.TotalDeductions, 2))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), format.NumberID(totals.NetRevenue, 2))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), notes)
		row++
	}

	net := monthAdditions.Sub(monthDeductions)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Monthly Total")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), format.NumberID(monthAdditions, 2))
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), format.NumberID(monthDeductions, 2))
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), format.NumberID(net, 2))

	target, err := s.targetRepo.GetTargetByStoreAndDate(storeID, year, month)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to retrieve target: %w", err)
	}
	achievement := ComputeAchievement(target, net)
	if achievement.Target != nil {
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Target")
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), format.NumberID(achievement.Target.Amount, 2))
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Achievement")
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), achievement.AchievementPercentage.StringFixed(2)+"%")
	}

	filename := fmt.Sprintf("revenues_%s_%d_%02d.xlsx", sanitizeFilename(store.Name), year, month)
	return f, filename, nil
}

func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ', r == '-', r == '_':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "store"
	}
	return string(out)
}

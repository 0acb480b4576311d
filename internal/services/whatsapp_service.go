package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storecrm_backend/internal/models"
	"storecrm_backend/internal/repositories"
	"storecrm_backend/pkg/fonnte"
	"storecrm_backend/pkg/format"
	"storecrm_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// WhatsAppStatus reports the outcome of a single WhatsApp send attempt.
// A failed send is reported here, never as an operation error.
type WhatsAppStatus struct {
	Sent   bool   `json:"sent"`
	Reason string `json:"reason,omitempty"`
}

// MessageSender sends a WhatsApp message to a phone number. Satisfied by
// *fonnte.Client.
type MessageSender interface {
	Send(ctx context.Context, token, target, message string) (*fonnte.SendResult, error)
}

// --- WhatsAppService Interface ---
type WhatsAppService interface {
	SendReservationConfirmation(reservation *models.Reservation) *WhatsAppStatus
	SendDailyRevenueReport(revenueID int64) (*WhatsAppStatus, error)
}

// --- whatsappService Implementation ---
type whatsappService struct {
	sender          MessageSender
	settingRepo     repositories.SettingRepository
	customerRepo    repositories.CustomerRepository
	storeRepo       repositories.StoreRepository
	reservationRepo repositories.ReservationRepository
	revenueRepo     repositories.RevenueRepository
	targetRepo      repositories.TargetRepository
	sendTimeout     time.Duration
}

// NewWhatsAppService creates a new instance of WhatsAppService.
func NewWhatsAppService(
	sender MessageSender,
	settingRepo repositories.SettingRepository,
	customerRepo repositories.CustomerRepository,
	storeRepo repositories.StoreRepository,
	reservationRepo repositories.ReservationRepository,
	revenueRepo repositories.RevenueRepository,
	targetRepo repositories.TargetRepository,
) WhatsAppService {
	return &whatsappService{
		sender:          sender,
		settingRepo:     settingRepo,
		customerRepo:    customerRepo,
		storeRepo:       storeRepo,
		reservationRepo: reservationRepo,
		revenueRepo:     revenueRepo,
		targetRepo:      targetRepo,
		sendTimeout:     10 * time.Second,
	}
}

func notSent(reason string) *WhatsAppStatus {
	return &WhatsAppStatus{Sent: false, Reason: reason}
}

func (s *whatsappService) send(target, message string) *WhatsAppStatus {
	token, err := s.settingRepo.GetSettingValue(models.SettingKeyWhatsAppToken)
	if err != nil {
		utils.LogError(err, "failed to load WhatsApp token setting")
		return notSent("failed to load WhatsApp token")
	}
	if token == "" {
		return notSent("WhatsApp API token is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
	defer cancel()

	result, err := s.sender.Send(ctx, token, target, message)
	if err != nil {
		utils.LogError(err, "WhatsApp send failed")
		return notSent(fmt.Sprintf("send failed: %v", err))
	}
	if !result.Status {
		reason := result.Reason
		if reason == "" {
			reason = "rejected by gateway"
		}
		return notSent(reason)
	}
	return &WhatsAppStatus{Sent: true}
}

// BuildReservationMessage renders the booking confirmation sent to the
// store's WhatsApp number, with the rest of the month's reservations listed
// underneath.
func BuildReservationMessage(reservation *models.Reservation, customerPhone string, upcoming []models.Reservation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reservasi Baru di %s\n\n", reservation.StoreName)
	fmt.Fprintf(&b, "Nama: %s\n", reservation.CustomerName)
	if customerPhone != "" {
		fmt.Fprintf(&b, "Telepon: %s\n", customerPhone)
	}
	fmt.Fprintf(&b, "Kode Booking: %s\n", reservation.Code)
	fmt.Fprintf(&b, "Tanggal: %s\n", reservation.Datetime.Format("02 January 2006"))
	fmt.Fprintf(&b, "Jam: %s\n", reservation.Datetime.Format("15:04"))
	fmt.Fprintf(&b, "Status: %s\n", reservation.Status)
	if reservation.Event != nil && *reservation.Event != "" {
		fmt.Fprintf(&b, "Acara: %s\n", *reservation.Event)
	}
	if reservation.Room != nil && *reservation.Room != "" {
		fmt.Fprintf(&b, "Ruangan: %s\n", *reservation.Room)
	}
	if reservation.Guests != nil {
		fmt.Fprintf(&b, "Jumlah Tamu: %d\n", *reservation.Guests)
	}
	if reservation.Notes != nil && *reservation.Notes != "" {
		fmt.Fprintf(&b, "Catatan: %s\n", *reservation.Notes)
	}

	if len(upcoming) > 0 {
		b.WriteString("\nReservasi Lain Bulan Ini:\n")
		for _, other := range upcoming {
			fmt.Fprintf(&b, "- %s %s (%s) %s\n",
				other.Datetime.Format("02 January 2006"),
				other.Datetime.Format("15:04"),
				other.Code,
				other.CustomerName)
		}
		if len(upcoming) >= upcomingConfirmationLimit {
			b.WriteString("Masih ada reservasi lain yang tidak ditampilkan.\n")
		}
	} else {
		b.WriteString("\nBelum ada reservasi lain bulan ini.\n")
	}

	b.WriteString("\nTerima kasih.")
	return b.String()
}

// upcomingConfirmationLimit caps the reservation list appended to a booking
// confirmation.
const upcomingConfirmationLimit = 30

// SendReservationConfirmation sends the booking confirmation to the store's
// WhatsApp number.
func (s *whatsappService) SendReservationConfirmation(reservation *models.Reservation) *WhatsAppStatus {
	store, err := s.storeRepo.GetStoreByID(reservation.StoreID)
	if err != nil {
		utils.LogError(err, "failed to load store for WhatsApp confirmation")
		return notSent("failed to load store")
	}
	if store.WhatsApp == nil || strings.TrimSpace(*store.WhatsApp) == "" {
		return notSent("store has no WhatsApp number")
	}

	var customerPhone string
	if customer, err := s.customerRepo.GetCustomerByID(reservation.CustomerID); err == nil {
		if customer.Telephone != nil {
			customerPhone = *customer.Telephone
		}
	} else {
		utils.LogError(err, "failed to load customer for WhatsApp confirmation")
	}

	// From the reservation date through the end of its month.
	start := reservation.Datetime
	endOfMonth := time.Date(start.Year(), start.Month()+1, 0, 23, 59, 59, 0, start.Location())
	upcoming, err := s.reservationRepo.GetReservationsByStoreAndDateRange(
		reservation.StoreID, start, endOfMonth, upcomingConfirmationLimit+1)
	if err != nil {
		utils.LogError(err, "failed to load upcoming reservations for confirmation")
		upcoming = nil
	}
	others := make([]models.Reservation, 0, len(upcoming))
	for _, other := range upcoming {
		if other.ID == reservation.ID {
			continue
		}
		others = append(others, other)
	}
	if len(others) > upcomingConfirmationLimit {
		others = others[:upcomingConfirmationLimit]
	}

	return s.send(*store.WhatsApp, BuildReservationMessage(reservation, customerPhone, others))
}

// ComputeAchievement compares an accumulated net revenue to a monthly target.
// Without a target, or with a non-positive target amount, the percentage is zero.
func ComputeAchievement(target *models.StoreRevenueTarget, accumulated decimal.Decimal) models.TargetAchievement {
	achievement := models.TargetAchievement{
		Target:                target,
		AccumulatedNetRevenue: accumulated,
		AchievementPercentage: decimal.Zero,
	}
	if target != nil && target.Amount.IsPositive() {
		achievement.AchievementPercentage = accumulated.Div(target.Amount).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return achievement
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// BuildPerformanceNotes summarizes the gap to the monthly target as of the
// revenue date: the amount still needed and the daily average required for
// the rest of the month. Once the target is reached it congratulates instead.
func BuildPerformanceNotes(achievement models.TargetAchievement, revenueDate time.Time) string {
	if achievement.Target == nil {
		return "Belum ada target pendapatan untuk bulan ini."
	}

	remaining := achievement.Target.Amount.Sub(achievement.AccumulatedNetRevenue)
	if !remaining.IsPositive() {
		return "Target bulan ini sudah tercapai. Pertahankan!"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Kekurangan target: %s\n", format.CurrencyID(remaining))

	daysLeft := daysInMonth(revenueDate.Year(), int(revenueDate.Month())) - revenueDate.Day()
	if daysLeft > 0 {
		requiredDaily := remaining.Div(decimal.NewFromInt(int64(daysLeft))).Round(2)
		fmt.Fprintf(&b, "Rata-rata harian yang dibutuhkan (%d hari tersisa): %s", daysLeft, format.CurrencyID(requiredDaily))

		// Warn when the month-to-date pace trails the required daily rate.
		currentDaily := achievement.AccumulatedNetRevenue.Div(decimal.NewFromInt(int64(revenueDate.Day()))).Round(2)
		if requiredDaily.GreaterThan(currentDaily) {
			gap := requiredDaily.Sub(currentDaily)
			fmt.Fprintf(&b, "\nPerhatian: laju harian saat ini tertinggal %s dari yang dibutuhkan.", format.CurrencyID(gap))
		}
	} else {
		b.WriteString("Hari terakhir bulan ini, target belum tercapai.")
	}
	return b.String()
}

// BuildRevenueReportMessage renders the daily revenue report sent to a store.
func BuildRevenueReportMessage(
	revenue *models.Revenue,
	items []models.RevenueItem,
	compliments []models.RevenueCompliment,
	totals *models.RevenueTotals,
	achievement models.TargetAchievement,
	upcoming []models.Reservation,
) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Laporan Pendapatan %s\n", revenue.StoreName)
	fmt.Fprintf(&b, "Tanggal: %s\n", revenue.Date.Format("02-01-2006"))
	if revenue.Guests != nil {
		fmt.Fprintf(&b, "Jumlah Tamu: %d\n", *revenue.Guests)
	}

	b.WriteString("\nRincian:\n")
	if len(items) == 0 {
		b.WriteString("- (tidak ada item)\n")
	}
	for _, item := range items {
		sign := "+"
		if item.TypeCategory == models.CategoryDeduction {
			sign = "-"
		}
		fmt.Fprintf(&b, "- %s: %s%s\n", item.TypeName, sign, format.CurrencyID(item.Amount))
	}

	fmt.Fprintf(&b, "\nTotal Penambahan: %s\n", format.CurrencyID(totals.TotalAdditions))
	fmt.Fprintf(&b, "Total Pengurangan: %s\n", format.CurrencyID(totals.TotalDeductions))
	fmt.Fprintf(&b, "Pendapatan Bersih: %s\n", format.CurrencyID(totals.NetRevenue))

	if len(compliments) > 0 {
		b.WriteString("\nKomplimen:\n")
		for _, compliment := range compliments {
			if compliment.For != nil && *compliment.For != "" {
				fmt.Fprintf(&b, "- %s (untuk %s)\n", compliment.Description, *compliment.For)
			} else {
				fmt.Fprintf(&b, "- %s\n", compliment.Description)
			}
		}
	}

	b.WriteString("\nPencapaian Bulan Ini:\n")
	fmt.Fprintf(&b, "Akumulasi: %s\n", format.CurrencyID(achievement.AccumulatedNetRevenue))
	if achievement.Target != nil {
		fmt.Fprintf(&b, "Target: %s\n", format.CurrencyID(achievement.Target.Amount))
		fmt.Fprintf(&b, "Pencapaian: %s%%\n", achievement.AchievementPercentage.StringFixed(2))
	}
	b.WriteString(BuildPerformanceNotes(achievement, revenue.Date))

	if len(upcoming) > 0 {
		b.WriteString("\n\nReservasi Mendatang:\n")
		for _, reservation := range upcoming {
			fmt.Fprintf(&b, "- %s %s (%s) %s\n",
				reservation.Datetime.Format("02-01-2006"),
				reservation.Datetime.Format("15:04"),
				reservation.Code,
				reservation.CustomerName)
		}
	}
	return b.String()
}

// upcomingReservationWindow is how many days ahead the revenue report looks
// for reservations, and the most it lists.
const (
	upcomingReservationDays  = 7
	upcomingReservationLimit = 10
)

// SendDailyRevenueReport builds and sends the full report for a revenue
// record to its store's WhatsApp number.
func (s *whatsappService) SendDailyRevenueReport(revenueID int64) (*WhatsAppStatus, error) {
	revenue, err := s.revenueRepo.GetRevenueByID(revenueID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRevenueNotFound
		}
		return nil, fmt.Errorf("failed to retrieve revenue: %w", err)
	}

	store, err := s.storeRepo.GetStoreByID(revenue.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve store: %w", err)
	}
	if store.WhatsApp == nil || strings.TrimSpace(*store.WhatsApp) == "" {
		return notSent("store has no WhatsApp number"), nil
	}

	items, err := s.revenueRepo.GetRevenueItems(revenueID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve revenue items: %w", err)
	}
	compliments, err := s.revenueRepo.GetRevenueCompliments(revenueID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve revenue compliments: %w", err)
	}
	totals, err := s.revenueRepo.GetRevenueTotals(revenueID)
	if err != nil {
		return nil, fmt.Errorf("failed to total revenue: %w", err)
	}

	year, month := revenue.Date.Year(), int(revenue.Date.Month())
	accumulated, err := s.revenueRepo.GetMonthlyNetRevenue(revenue.StoreID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly net revenue: %w", err)
	}

	target, err := s.targetRepo.GetTargetByStoreAndDate(revenue.StoreID, year, month)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to retrieve target: %w", err)
	}
	achievement := ComputeAchievement(target, accumulated)

	start := revenue.Date
	end := start.AddDate(0, 0, upcomingReservationDays)
	upcoming, err := s.reservationRepo.GetReservationsByStoreAndDateRange(revenue.StoreID, start, end, upcomingReservationLimit)
	if err != nil {
		utils.LogError(err, "failed to load upcoming reservations for revenue report")
		upcoming = nil
	}

	message := BuildRevenueReportMessage(revenue, items, compliments, totals, achievement, upcoming)
	return s.send(*store.WhatsApp, message), nil
}

package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"storecrm_backend/internal/models"
	"storecrm_backend/internal/services"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestComputeAchievement(t *testing.T) {
	target := &models.StoreRevenueTarget{Amount: dec(t, "10000000")}

	got := services.ComputeAchievement(target, dec(t, "2500000"))
	if want := "25"; !got.AchievementPercentage.Equal(dec(t, want)) {
		t.Errorf("AchievementPercentage = %s, want %s", got.AchievementPercentage, want)
	}

	got = services.ComputeAchievement(target, dec(t, "12000000"))
	if want := "120"; !got.AchievementPercentage.Equal(dec(t, want)) {
		t.Errorf("AchievementPercentage over target = %s, want %s", got.AchievementPercentage, want)
	}
}

func TestComputeAchievementRounds(t *testing.T) {
	target := &models.StoreRevenueTarget{Amount: dec(t, "3000000")}
	got := services.ComputeAchievement(target, dec(t, "1000000"))
	if want := "33.33"; got.AchievementPercentage.String() != want {
		t.Errorf("AchievementPercentage = %s, want %s", got.AchievementPercentage, want)
	}
}

func TestComputeAchievementWithoutTarget(t *testing.T) {
	got := services.ComputeAchievement(nil, dec(t, "500000"))
	if !got.AchievementPercentage.IsZero() {
		t.Errorf("AchievementPercentage without target = %s, want 0", got.AchievementPercentage)
	}

	zeroTarget := &models.StoreRevenueTarget{Amount: decimal.Zero}
	got = services.ComputeAchievement(zeroTarget, dec(t, "500000"))
	if !got.AchievementPercentage.IsZero() {
		t.Errorf("AchievementPercentage with zero target = %s, want 0", got.AchievementPercentage)
	}
}

func TestBuildReservationMessage(t *testing.T) {
	reservation := &models.Reservation{
		Code:         "ABCD070326",
		Datetime:     time.Date(2026, time.March, 7, 19, 30, 0, 0, time.UTC),
		Status:       models.ReservationConfirmed,
		Room:         strPtr("Ballroom A"),
		Event:        strPtr("Ulang Tahun"),
		Guests:       intPtr(25),
		CustomerName: "Budi Santoso",
		StoreName:    "Toko Merdeka",
	}

	upcoming := []models.Reservation{
		{
			Code:         "GHJK150326",
			Datetime:     time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC),
			CustomerName: "Siti Rahma",
		},
	}
	msg := services.BuildReservationMessage(reservation, "081234567890", upcoming)

	for _, want := range []string{
		"Reservasi Baru di Toko Merdeka",
		"Nama: Budi Santoso",
		"Telepon: 081234567890",
		"Kode Booking: ABCD070326",
		"Tanggal: 07 March 2026",
		"Jam: 19:30",
		"Status: Confirmed",
		"Ruangan: Ballroom A",
		"Acara: Ulang Tahun",
		"Jumlah Tamu: 25",
		"Reservasi Lain Bulan Ini:",
		"15 March 2026 12:00 (GHJK150326) Siti Rahma",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildReservationMessageOmitsEmptyFields(t *testing.T) {
	reservation := &models.Reservation{
		Code:         "WXYZ010126",
		Datetime:     time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC),
		Status:       models.ReservationPending,
		CustomerName: "Siti",
		StoreName:    "Toko Merdeka",
	}

	msg := services.BuildReservationMessage(reservation, "", nil)
	for _, unwanted := range []string{"Telepon:", "Ruangan:", "Acara:", "Jumlah Tamu:", "Catatan:", "Reservasi Lain Bulan Ini:"} {
		if strings.Contains(msg, unwanted) {
			t.Errorf("message should not contain %q when the field is unset:\n%s", unwanted, msg)
		}
	}
	if !strings.Contains(msg, "Belum ada reservasi lain bulan ini.") {
		t.Errorf("message should note the empty upcoming list:\n%s", msg)
	}
}

func TestBuildReservationMessageHintsAtTruncatedList(t *testing.T) {
	reservation := &models.Reservation{
		Code:         "WXYZ010126",
		Datetime:     time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC),
		Status:       models.ReservationPending,
		CustomerName: "Siti",
		StoreName:    "Toko Merdeka",
	}

	upcoming := make([]models.Reservation, 30)
	for i := range upcoming {
		upcoming[i] = models.Reservation{
			Code:         "AAAA020126",
			Datetime:     time.Date(2026, time.January, 2+i%28, 10, 0, 0, 0, time.UTC),
			CustomerName: "Pelanggan",
		}
	}

	msg := services.BuildReservationMessage(reservation, "", upcoming)
	if !strings.Contains(msg, "Masih ada reservasi lain yang tidak ditampilkan.") {
		t.Errorf("message should hint at the truncated list when 30 reservations are shown:\n%s", msg)
	}

	msg = services.BuildReservationMessage(reservation, "", upcoming[:5])
	if strings.Contains(msg, "Masih ada reservasi lain") {
		t.Errorf("message should not hint at truncation for a short list:\n%s", msg)
	}
}

func TestBuildPerformanceNotes(t *testing.T) {
	target := &models.StoreRevenueTarget{Amount: dec(t, "30000000")}

	t.Run("shortfall mid-month", func(t *testing.T) {
		achievement := services.ComputeAchievement(target, dec(t, "10000000"))
		// June 20th leaves ten days and a 20M gap.
		notes := services.BuildPerformanceNotes(achievement, time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC))
		if !strings.Contains(notes, "Kekurangan target: Rp 20.000.000,00") {
			t.Errorf("notes missing shortfall:\n%s", notes)
		}
		if !strings.Contains(notes, "10 hari tersisa") {
			t.Errorf("notes missing remaining days:\n%s", notes)
		}
		if !strings.Contains(notes, "Rp 2.000.000,00") {
			t.Errorf("notes missing required daily average:\n%s", notes)
		}
		// 10M over 20 days is 500k/day against a required 2M/day.
		if !strings.Contains(notes, "tertinggal Rp 1.500.000,00") {
			t.Errorf("notes missing pace gap warning:\n%s", notes)
		}
	})

	t.Run("pace ahead of target", func(t *testing.T) {
		achievement := services.ComputeAchievement(target, dec(t, "10000000"))
		// 10M within two days outruns the required daily rate.
		notes := services.BuildPerformanceNotes(achievement, time.Date(2026, time.June, 2, 0, 0, 0, 0, time.UTC))
		if strings.Contains(notes, "tertinggal") {
			t.Errorf("notes should not warn when the current pace exceeds the required rate:\n%s", notes)
		}
	})

	t.Run("target reached", func(t *testing.T) {
		achievement := services.ComputeAchievement(target, dec(t, "30000000"))
		notes := services.BuildPerformanceNotes(achievement, time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC))
		if !strings.Contains(notes, "sudah tercapai") {
			t.Errorf("notes should congratulate when the target is reached:\n%s", notes)
		}
	})

	t.Run("last day of month", func(t *testing.T) {
		achievement := services.ComputeAchievement(target, dec(t, "10000000"))
		notes := services.BuildPerformanceNotes(achievement, time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC))
		if !strings.Contains(notes, "Hari terakhir bulan ini") {
			t.Errorf("notes should flag the last day of the month:\n%s", notes)
		}
	})

	t.Run("no target", func(t *testing.T) {
		achievement := services.ComputeAchievement(nil, dec(t, "10000000"))
		notes := services.BuildPerformanceNotes(achievement, time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC))
		if !strings.Contains(notes, "Belum ada target") {
			t.Errorf("notes should mention the missing target:\n%s", notes)
		}
	})
}

func TestBuildRevenueReportMessage(t *testing.T) {
	revenue := &models.Revenue{
		Date:      time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC),
		Guests:    intPtr(120),
		StoreName: "Toko Merdeka",
	}
	items := []models.RevenueItem{
		{TypeName: "Penjualan Makanan", TypeCategory: models.CategoryAddition, Amount: dec(t, "5000000")},
		{TypeName: "Refund", TypeCategory: models.CategoryDeduction, Amount: dec(t, "500000")},
	}
	compliments := []models.RevenueCompliment{
		{Description: "Voucher makan", For: strPtr("Keluarga Wijaya")},
	}
	totals := &models.RevenueTotals{
		TotalAdditions:  dec(t, "5000000"),
		TotalDeductions: dec(t, "500000"),
		NetRevenue:      dec(t, "4500000"),
	}
	target := &models.StoreRevenueTarget{Amount: dec(t, "30000000")}
	achievement := services.ComputeAchievement(target, dec(t, "10000000"))
	upcoming := []models.Reservation{
		{
			Code:         "ABCD210626",
			Datetime:     time.Date(2026, time.June, 21, 18, 0, 0, 0, time.UTC),
			CustomerName: "Budi Santoso",
		},
	}

	msg := services.BuildRevenueReportMessage(revenue, items, compliments, totals, achievement, upcoming)

	for _, want := range []string{
		"Laporan Pendapatan Toko Merdeka",
		"Tanggal: 20-06-2026",
		"Jumlah Tamu: 120",
		"- Penjualan Makanan: +Rp 5.000.000,00",
		"- Refund: -Rp 500.000,00",
		"Total Penambahan: Rp 5.000.000,00",
		"Total Pengurangan: Rp 500.000,00",
		"Pendapatan Bersih: Rp 4.500.000,00",
		"Voucher makan (untuk Keluarga Wijaya)",
		"Akumulasi: Rp 10.000.000,00",
		"Target: Rp 30.000.000,00",
		"Pencapaian: 33.33%",
		"Reservasi Mendatang:",
		"21-06-2026 18:00 (ABCD210626) Budi Santoso",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("report missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildRevenueReportMessageWithoutItems(t *testing.T) {
	revenue := &models.Revenue{
		Date:      time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC),
		StoreName: "Toko Merdeka",
	}
	totals := &models.RevenueTotals{
		TotalAdditions:  decimal.Zero,
		TotalDeductions: decimal.Zero,
		NetRevenue:      decimal.Zero,
	}
	achievement := services.ComputeAchievement(nil, decimal.Zero)

	msg := services.BuildRevenueReportMessage(revenue, nil, nil, totals, achievement, nil)
	if !strings.Contains(msg, "(tidak ada item)") {
		t.Errorf("report should note the empty item list:\n%s", msg)
	}
	if strings.Contains(msg, "Komplimen:") {
		t.Errorf("report should omit the compliment section when empty:\n%s", msg)
	}
	if strings.Contains(msg, "Reservasi Mendatang:") {
		t.Errorf("report should omit upcoming reservations when empty:\n%s", msg)
	}
}

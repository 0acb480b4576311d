package services_test

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"storecrm_backend/internal/services"
)

func TestGenerateReservationCodeFormat(t *testing.T) {
	datetime := time.Date(2026, time.March, 7, 19, 30, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^[A-Z]{4}070326$`)

	for i := 0; i < 20; i++ {
		code := services.GenerateReservationCode(datetime)
		if !pattern.MatchString(code) {
			t.Fatalf("GenerateReservationCode = %q, want four uppercase letters followed by 070326", code)
		}
	}
}

func TestGenerateReservationCodeUsesReservationDate(t *testing.T) {
	cases := []struct {
		datetime time.Time
		suffix   string
	}{
		{time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), "010126"},
		{time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC), "311225"},
		{time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC), "151026"},
	}
	for _, tc := range cases {
		code := services.GenerateReservationCode(tc.datetime)
		if !strings.HasSuffix(code, tc.suffix) {
			t.Errorf("GenerateReservationCode(%s) = %q, want suffix %q", tc.datetime.Format("2006-01-02"), code, tc.suffix)
		}
		if len(code) != 10 {
			t.Errorf("GenerateReservationCode(%s) = %q, want length 10", tc.datetime.Format("2006-01-02"), code)
		}
	}
}

func TestGenerateReservationCodeVaries(t *testing.T) {
	datetime := time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[services.GenerateReservationCode(datetime)] = true
	}
	if len(seen) < 2 {
		t.Errorf("expected varying letter prefixes across 50 codes, got %d distinct", len(seen))
	}
}

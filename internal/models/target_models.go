package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreRevenueTarget is a monthly monetary goal for a store.
// Unique per (store_id, target_year, target_month).
type StoreRevenueTarget struct {
	ID        int64           `json:"id" db:"target_id"`
	StoreID   int64           `json:"store_id" db:"store_id"`
	Month     int             `json:"target_month" db:"target_month"`
	Year      int             `json:"target_year" db:"target_year"`
	Amount    decimal.Decimal `json:"target_amount" db:"target_amount"`
	CreatedBy *int64          `json:"created_by,omitempty" db:"created_by"`
	UpdatedBy *int64          `json:"updated_by,omitempty" db:"updated_by"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

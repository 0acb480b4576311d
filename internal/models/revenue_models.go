package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Revenue type categories.
const (
	CategoryAddition  = "Addition"
	CategoryDeduction = "Deduction"
)

// IsValidRevenueCategory reports whether category is Addition or Deduction.
func IsValidRevenueCategory(category string) bool {
	return category == CategoryAddition || category == CategoryDeduction
}

// RevenueType is a dynamic classification for revenue line items.
type RevenueType struct {
	ID        int64     `json:"id" db:"revenue_type_id"`
	Name      string    `json:"revenue_type_name" db:"revenue_type_name"`
	Category  string    `json:"revenue_type_category" db:"revenue_type_category"`
	CreatedBy *int64    `json:"created_by,omitempty" db:"created_by"`
	UpdatedBy *int64    `json:"updated_by,omitempty" db:"updated_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Revenue is a daily revenue record for a store. Line items and compliments
// hang off it.
type Revenue struct {
	ID        int64     `json:"id" db:"revenue_id"`
	StoreID   int64     `json:"store_id" db:"store_id"`
	Date      time.Time `json:"revenue_date" db:"revenue_date"`
	Guests    *int      `json:"revenue_guests,omitempty" db:"revenue_guests"`
	Notes     *string   `json:"revenue_notes,omitempty" db:"revenue_notes"`
	StoreName string    `json:"store_name,omitempty" db:"-"`
	CreatedBy *int64    `json:"created_by,omitempty" db:"created_by"`
	UpdatedBy *int64    `json:"updated_by,omitempty" db:"updated_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RevenueItem is a typed addition or deduction line on a revenue record.
// TypeName and TypeCategory are joined from revenue_types on reads.
type RevenueItem struct {
	ID            int64           `json:"id" db:"revenue_item_id"`
	RevenueID     int64           `json:"revenue_id" db:"revenue_id"`
	RevenueTypeID int64           `json:"revenue_type_id" db:"revenue_type_id"`
	Amount        decimal.Decimal `json:"revenue_item_amount" db:"revenue_item_amount"`
	TypeName      string          `json:"revenue_type_name,omitempty" db:"-"`
	TypeCategory  string          `json:"revenue_type_category,omitempty" db:"-"`
	CreatedBy     *int64          `json:"created_by,omitempty" db:"created_by"`
	UpdatedBy     *int64          `json:"updated_by,omitempty" db:"updated_by"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// RevenueCompliment is a non-monetary courtesy note on a revenue record.
type RevenueCompliment struct {
	ID          int64     `json:"id" db:"revenue_compliment_id"`
	RevenueID   int64     `json:"revenue_id" db:"revenue_id"`
	Description string    `json:"revenue_compliment_description" db:"revenue_compliment_description"`
	For         *string   `json:"revenue_compliment_for,omitempty" db:"revenue_compliment_for"`
	CreatedBy   *int64    `json:"created_by,omitempty" db:"created_by"`
	UpdatedBy   *int64    `json:"updated_by,omitempty" db:"updated_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// RevenueTotals aggregates the line items of a single revenue record.
type RevenueTotals struct {
	TotalAdditions  decimal.Decimal `json:"total_additions"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetRevenue      decimal.Decimal `json:"net_revenue"`
}

// TargetAchievement compares a month's accumulated net revenue against the
// store's target for that month.
type TargetAchievement struct {
	Target                *StoreRevenueTarget `json:"target,omitempty"`
	AccumulatedNetRevenue decimal.Decimal     `json:"accumulated_net_revenue"`
	AchievementPercentage decimal.Decimal     `json:"achievement_percentage"`
}

package models

import "time"

// Reservation statuses.
const (
	ReservationPending   = "Pending"
	ReservationConfirmed = "Confirmed"
	ReservationCancelled = "Cancelled"
	ReservationCompleted = "Completed"
)

// ReservationStatuses lists every valid reservation status.
var ReservationStatuses = []string{ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted}

// IsValidReservationStatus reports whether status is a known reservation status.
func IsValidReservationStatus(status string) bool {
	for _, s := range ReservationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Reservation is a booking of a customer at a store.
// CustomerName and StoreName are populated from joins on list/detail reads.
type Reservation struct {
	ID           int64     `json:"id" db:"reservation_id"`
	CustomerID   int64     `json:"customer_id" db:"customer_id"`
	StoreID      int64     `json:"store_id" db:"store_id"`
	Datetime     time.Time `json:"reservation_datetime" db:"reservation_datetime"`
	Status       string    `json:"reservation_status" db:"reservation_status"`
	Notes        *string   `json:"reservation_notes,omitempty" db:"reservation_notes"`
	Event        *string   `json:"reservation_event,omitempty" db:"reservation_event"`
	Room         *string   `json:"reservation_room,omitempty" db:"reservation_room"`
	Guests       *int      `json:"reservation_guests,omitempty" db:"reservation_guests"`
	Code         string    `json:"reservation_code" db:"reservation_code"`
	CustomerName string    `json:"customer_name,omitempty" db:"-"`
	StoreName    string    `json:"store_name,omitempty" db:"-"`
	CreatedBy    *int64    `json:"created_by,omitempty" db:"created_by"`
	UpdatedBy    *int64    `json:"updated_by,omitempty" db:"updated_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

package models

import "time"

// Store represents a business location with contact details.
type Store struct {
	ID        int64     `json:"id" db:"store_id"`
	Name      string    `json:"store_name" db:"store_name"`
	Telephone *string   `json:"store_telephone,omitempty" db:"store_telephone"`
	Email     *string   `json:"store_email,omitempty" db:"store_email"`
	Address   *string   `json:"store_address,omitempty" db:"store_address"`
	WhatsApp  *string   `json:"store_whatsapp,omitempty" db:"store_whatsapp"`
	CreatedBy *int64    `json:"created_by,omitempty" db:"created_by"`
	UpdatedBy *int64    `json:"updated_by,omitempty" db:"updated_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

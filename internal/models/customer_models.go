package models

import "time"

// Customer represents a client, optionally linked to stores.
type Customer struct {
	ID           int64     `json:"id" db:"customer_id"`
	Name         string    `json:"customer_name" db:"customer_name"`
	Code         *string   `json:"customer_code,omitempty" db:"customer_code"`
	IsMember     bool      `json:"customer_is_member" db:"customer_is_member"`
	Organization *string   `json:"customer_organization,omitempty" db:"customer_organization"`
	Telephone    *string   `json:"customer_telephone,omitempty" db:"customer_telephone"`
	Email        *string   `json:"customer_email,omitempty" db:"customer_email"`
	Address      *string   `json:"customer_address,omitempty" db:"customer_address"`
	WhatsApp     *string   `json:"customer_whatsapp,omitempty" db:"customer_whatsapp"`
	CreatedBy    *int64    `json:"created_by,omitempty" db:"created_by"`
	UpdatedBy    *int64    `json:"updated_by,omitempty" db:"updated_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CustomerSummary is the compact shape returned by the autocomplete search.
type CustomerSummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Telephone string `json:"telephone"`
}

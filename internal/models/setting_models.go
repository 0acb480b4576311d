package models

import "time"

// SettingKeyWhatsAppToken holds the Fonnte API token.
const SettingKeyWhatsAppToken = "whatsapp_api_token"

// Setting is a key-value pair of application configuration stored in the database.
type Setting struct {
	Key       string    `json:"setting_key" db:"setting_key" binding:"required"`
	Value     *string   `json:"setting_value,omitempty" db:"setting_value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

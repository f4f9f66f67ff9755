package models

import (
	"time"

	_ "github.com/lib/pq"
)

type User struct {
	ID        int       `json:"id" example:"1"`
	Email     string    `json:"email" example:"manager@example.com"`
	Password  string    `json:"password" example:""`
	FirstName string    `json:"first_name" example:"Stepan"`
	LastName  string    `json:"last_name" example:"Volkov"`
	IsAdmin   bool      `json:"is_admin" example:"false"`
	Suspended bool      `json:"suspended" example:"false"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

type Session struct {
	UserID                int       `json:"user_id" example:"1"`
	SessionID             string    `json:"session_id" example:""`
	HostName              string    `json:"host_name" example:"manager@example.com"`
	IPAddress             string    `json:"ip_address" example:"192.168.1.10"`
	Timestamp             time.Time `json:"timestp" example:"2024-01-15T10:30:00Z"`
	ExpiresAt             time.Time `json:"expires_at" example:"2024-01-15T10:45:00Z"`
	RefreshToken          string    `json:"refresh_token,omitempty" example:""`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at,omitempty" example:"2024-01-30T10:30:00Z"`
}

// SavedEstimate is a persisted proposal: the reference number handed to the
// customer plus the full calculation payload as JSON.
type SavedEstimate struct {
	ID             int       `json:"id" example:"1"`
	Reference      string    `json:"reference" example:"KP48291"`
	ProfileID      string    `json:"profile_id" example:"kp1"`
	CustomerName   string    `json:"customer_name" example:"Иванов Иван"`
	CustomerPhone  string    `json:"customer_phone" example:"+7 900 000-00-00"`
	CustomerEmail  string    `json:"customer_email" example:"ivanov@example.com"`
	Address        string    `json:"address" example:"Московская обл., д. Лесная, 12"`
	TotalCost      float64   `json:"total_cost" example:"2899664"`
	Payload        string    `json:"payload,omitempty"`
	GenerationDate string    `json:"generation_date" example:"15.01.2024"`
	CreatedAt      time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

// PriceOverride replaces a single unit price of a profile. Managed through
// the admin API and applied on top of the built-in price tables.
type PriceOverride struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID string    `json:"profile_id" gorm:"size:16;index:idx_price_override,unique"`
	Category  string    `json:"category" gorm:"size:16;index:idx_price_override,unique"`
	Key       string    `json:"key" gorm:"size:64;index:idx_price_override,unique"`
	Price     float64   `json:"price"`
	UpdatedBy string    `json:"updated_by" gorm:"size:128"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the override table name stable across migrations.
func (PriceOverride) TableName() string {
	return "price_overrides"
}

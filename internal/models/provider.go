package models

import (
	"time"

	"gorm.io/gorm"
)

// Provider is a professional offering services on the marketplace.
// Latitude/Longitude are optional; providers without coordinates are only
// reachable through text search.
type Provider struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"size:100;not null" json:"name"`
	Profession      string         `gorm:"size:100" json:"profession"`
	Experience      string         `gorm:"size:100" json:"experience"`
	ServiceCategory string         `gorm:"type:text;index" json:"service_category"` // comma-separated, e.g. "plumbing,gardening"
	DeliveryType    string         `gorm:"size:10;default:'LOCAL';index" json:"delivery_type"` // LOCAL | REMOTE | HYBRID
	Pricing         string         `gorm:"size:255" json:"pricing"`
	Address         string         `gorm:"size:255" json:"address"`
	City            string         `gorm:"size:100;index" json:"city"`
	Pincode         string         `gorm:"size:20" json:"pincode"`
	Latitude        *float64       `json:"latitude"`
	Longitude       *float64       `json:"longitude"`
	ProfilePhotoURL string         `gorm:"size:512" json:"profile_photo_url"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Provider) TableName() string {
	return "providers"
}

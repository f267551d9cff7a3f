package models

import (
	"time"

	"gorm.io/gorm"
)

// Offer carries a snapshot of provider details at creation time so listing
// pages never join back to the provider table.
type Offer struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProviderID  uint       `gorm:"not null;index" json:"provider_id"`
	Title       string     `gorm:"size:150;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Type        string     `gorm:"size:20;not null" json:"type"` // PERCENTAGE, FLAT, BUY_X_GET_Y, CONDITIONAL, CUSTOM
	Value       string     `gorm:"size:100" json:"value"`        // e.g. "10", "500", "Buy 2 Get 1"
	Conditions  string     `gorm:"type:text" json:"conditions"`  // JSON, for CONDITIONAL types
	MinTier     string     `gorm:"size:20;default:'NOT_VERIFIED'" json:"min_tier"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsActive    bool       `gorm:"default:true;index" json:"is_active"`
	Featured    bool       `gorm:"default:false" json:"featured"`

	// Provider snapshot
	ProviderName         string `gorm:"size:100" json:"provider_name"`
	ProviderProfilePhoto string `gorm:"size:512" json:"provider_profile_photo"`
	ServiceCategory      string `gorm:"type:text" json:"service_category"`
	Location             string `gorm:"size:100" json:"location"`
	DeliveryType         string `gorm:"size:10;default:'LOCAL'" json:"delivery_type"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Provider Provider `gorm:"foreignKey:ProviderID" json:"-"`
}

func (Offer) TableName() string {
	return "offers"
}

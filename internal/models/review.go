package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is immutable once created; there is no update path.
type Review struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ProviderID   uint           `gorm:"not null;index" json:"provider_id"`
	ProviderName string         `gorm:"size:100" json:"provider_name"`
	CustomerID   uint           `gorm:"not null;index" json:"customer_id"`
	CustomerName string         `gorm:"size:100" json:"customer_name"`
	Rating       int            `gorm:"not null" json:"rating"` // 1-5
	Text         string         `gorm:"type:text" json:"text"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Provider Provider `gorm:"foreignKey:ProviderID" json:"-"`
	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}

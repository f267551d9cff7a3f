package models

import (
	"time"

	"gorm.io/gorm"
)

// Transaction tracks a service payment between a customer and a provider.
// Billed is only ever set by the settlement engine, and only for COMPLETED
// transactions; a transaction is billed at most once.
type Transaction struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Reference       string         `gorm:"size:64;uniqueIndex" json:"reference"`
	ProviderID      uint           `gorm:"not null;index" json:"provider_id"`
	ProviderName    string         `gorm:"size:100" json:"provider_name"`
	CustomerID      uint           `gorm:"not null;index" json:"customer_id"`
	CustomerName    string         `gorm:"size:100" json:"customer_name"`
	Amount          float64        `gorm:"not null" json:"amount"`
	Status          string         `gorm:"size:20;not null;index" json:"status"` // INITIATED, CUSTOMER_CONFIRMED, COMPLETED, REJECTED
	Progress        int            `gorm:"default:0" json:"progress"`            // 0-100, for the customer progress bar
	RejectionReason string         `gorm:"size:255" json:"rejection_reason,omitempty"`
	Note            string         `gorm:"size:255" json:"note,omitempty"`
	Billed          bool           `gorm:"default:false;index" json:"billed"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Provider Provider `gorm:"foreignKey:ProviderID" json:"-"`
	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}

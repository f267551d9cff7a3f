package models

import (
	"time"

	"gorm.io/gorm"
)

// Statement is a monthly commission statement for one provider. Created only
// by the settlement engine; immutable afterwards except the PAID transition.
type Statement struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	ProviderID           uint           `gorm:"not null;index:idx_statements_provider_month" json:"provider_id"`
	BillingMonth         string         `gorm:"size:7;not null;index:idx_statements_provider_month" json:"billing_month"` // YYYY-MM
	BillingStartDate     time.Time      `json:"billing_start_date"`
	BillingEndDate       time.Time      `json:"billing_end_date"`
	ConfirmedTotal       float64        `gorm:"not null" json:"confirmed_total"`
	CommissionPercentage float64        `gorm:"not null" json:"commission_percentage"`
	CommissionAmount     float64        `gorm:"not null" json:"commission_amount"`
	Status               string         `gorm:"size:10;not null;index" json:"status"` // UNPAID, PAID, WAIVED
	GeneratedAt          time.Time      `json:"generated_at"`
	GeneratedBy          string         `gorm:"size:20" json:"generated_by"` // SYSTEM or ADMIN
	PaidAt               *time.Time     `json:"paid_at,omitempty"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	Provider Provider `gorm:"foreignKey:ProviderID" json:"-"`
}

func (Statement) TableName() string {
	return "commission_statements"
}

package models

import "time"

// ProfileView logs one visit to a provider profile. SessionID deduplicates
// repeat views within the insights dashboard.
type ProfileView struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProviderID uint      `gorm:"not null;index" json:"provider_id"`
	SessionID  string    `gorm:"size:64;not null" json:"session_id"`
	Timestamp  time.Time `gorm:"index" json:"timestamp"`
}

func (ProfileView) TableName() string {
	return "profile_views"
}

// LeadEvent records a contact attempt (phone, WhatsApp, email) from a
// customer to a provider.
type LeadEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProviderID    uint      `gorm:"not null;index" json:"provider_id"`
	CustomerID    uint      `gorm:"index" json:"customer_id"`
	CustomerName  string    `gorm:"size:100" json:"customer_name"`
	ContactMethod string    `gorm:"size:20" json:"contact_method"`
	Timestamp     time.Time `gorm:"index" json:"timestamp"`
}

func (LeadEvent) TableName() string {
	return "lead_events"
}

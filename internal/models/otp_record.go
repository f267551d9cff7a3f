package models

import "time"

// OtpRecord stores the current one-time code for an email address. Only the
// bcrypt hash of the code is persisted. One live record per email; each new
// issuance replaces the previous record.
type OtpRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	HashedOtp    string    `gorm:"size:255;not null" json:"-"`
	ExpiryTime   time.Time `gorm:"not null" json:"expiry_time"`
	AttemptCount int       `gorm:"default:0" json:"attempt_count"`
	DailyCount   int       `gorm:"default:0" json:"daily_count"`
	LastSentAt   time.Time `json:"last_sent_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (OtpRecord) TableName() string {
	return "otp_records"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"size:100;not null" json:"name"`
	Email           string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash    string         `gorm:"size:255" json:"-"`
	ProfilePhotoURL string         `gorm:"size:512" json:"profile_photo_url"`
	City            string         `gorm:"size:100;index" json:"city"`
	Role            string         `gorm:"size:20;default:'CUSTOMER'" json:"role"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

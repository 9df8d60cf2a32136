package model

import "time"

// Service is a purchasable add-on from the hotel catalog.
type Service struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Price       int       `gorm:"not null" json:"price"`
	Description string    `gorm:"size:512" json:"description"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

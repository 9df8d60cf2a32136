package model

import "time"

// DayState is the persisted operational day of the hotel. A single row
// (ID = 1) survives restarts so that the day counter never runs backwards.
type DayState struct {
	ID         int       `gorm:"primaryKey;autoIncrement:false"`
	CurrentDay time.Time `gorm:"not null"`
	UpdatedAt  time.Time
}

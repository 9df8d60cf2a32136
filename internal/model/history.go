package model

import "time"

// GuestHistoryEntry is an append-only snapshot of a guest at checkout time.
// GroupID is scoped per room and strictly increasing; every guest who checked
// out of a room together shares the same group id.
type GuestHistoryEntry struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	GuestID    string    `gorm:"size:64;not null" json:"guestId"`
	FirstName  string    `gorm:"size:128;not null" json:"firstName"`
	LastName   string    `gorm:"size:128;not null" json:"lastName"`
	RoomNumber int       `gorm:"index;not null" json:"roomNumber"`
	GroupID    int       `gorm:"not null" json:"groupId"`
	CreatedAt  time.Time `json:"-"`
}

// HistoryFromGuest snapshots a departing guest under the given group id.
func HistoryFromGuest(g *Guest, roomNumber, groupID int) GuestHistoryEntry {
	return GuestHistoryEntry{
		GuestID:    g.ID,
		FirstName:  g.FirstName,
		LastName:   g.LastName,
		RoomNumber: roomNumber,
		GroupID:    groupID,
	}
}

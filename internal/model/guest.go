package model

import "time"

// Guest is a person currently checked in (or a draft about to be). The ID is
// assigned by the store on first save unless the caller brings one, as bulk
// imports do. RoomNumber is 0 while the guest is not checked in.
type Guest struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	FirstName  string    `gorm:"size:128;not null" json:"firstName"`
	LastName   string    `gorm:"size:128;not null" json:"lastName"`
	RoomNumber int       `gorm:"index;not null" json:"roomNumber"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`

	// Associations
	ServiceUsages []ServiceUsage `gorm:"foreignKey:GuestID" json:"serviceUsages,omitempty"`
}

// FullName returns "First Last".
func (g *Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}

// ServiceUsage records one purchase of a catalog service by a guest.
// Immutable once created.
type ServiceUsage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	GuestID   string    `gorm:"index;size:64;not null" json:"guestId"`
	ServiceID string    `gorm:"size:64;not null" json:"serviceId"`
	UsedOn    time.Time `gorm:"not null" json:"usedOn"`
	CreatedAt time.Time `json:"-"`

	// Associations
	Service Service `gorm:"foreignKey:ServiceID" json:"service"`
}

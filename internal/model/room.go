package model

import "time"

// RoomStatus is the lifecycle state of a room.
type RoomStatus string

const (
	StatusAvailable   RoomStatus = "AVAILABLE"
	StatusOccupied    RoomStatus = "OCCUPIED"
	StatusCleaning    RoomStatus = "CLEANING"
	StatusMaintenance RoomStatus = "MAINTENANCE"
)

// RoomType is the comfort class of a room.
type RoomType string

const (
	TypeEconomy      RoomType = "ECONOMY"
	TypeStandard     RoomType = "STANDARD"
	TypeLuxury       RoomType = "LUXURY"
	TypePresidential RoomType = "PRESIDENTIAL"
)

// ValidRoomType reports whether s names a known room type.
func ValidRoomType(s string) bool {
	switch RoomType(s) {
	case TypeEconomy, TypeStandard, TypeLuxury, TypePresidential:
		return true
	}
	return false
}

// Room is a single unit of hotel inventory. The room number is the upstream
// identifier, never reassigned.
type Room struct {
	Number          int        `gorm:"primaryKey;autoIncrement:false" json:"number"`
	Type            RoomType   `gorm:"size:32;not null" json:"type"`
	Price           int        `gorm:"not null" json:"price"`
	Capacity        int        `gorm:"not null" json:"capacity"`
	Status          RoomStatus `gorm:"size:32;not null" json:"status"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	DaysUnderStatus int        `gorm:"not null" json:"daysUnderStatus"`
	CreatedAt       time.Time  `json:"-"`
	UpdatedAt       time.Time  `json:"-"`

	// Associations. Never cascaded on room saves; guests are persisted through
	// their own store operations.
	Guests []Guest `gorm:"foreignKey:RoomNumber;references:Number" json:"guests,omitempty"`
}

// NewRoom returns a fresh Available room.
func NewRoom(number int, roomType RoomType, price, capacity int) *Room {
	return &Room{
		Number:   number,
		Type:     roomType,
		Price:    price,
		Capacity: capacity,
		Status:   StatusAvailable,
	}
}

// CheckIn applies the occupancy transition for guestCount guests staying the
// given number of days. It reports false, without mutating the room, when the
// room is not Available or the group does not fit.
func (r *Room) CheckIn(guestCount int, today time.Time, days int) bool {
	if r.Status != StatusAvailable {
		return false
	}
	if guestCount < 1 || guestCount > r.Capacity {
		return false
	}

	r.setStatusDates(today, days)
	r.Status = StatusOccupied
	return true
}

// CheckOut releases an occupied room. The caller is responsible for moving the
// departing guests to the history ledger before calling this.
func (r *Room) CheckOut() bool {
	if r.Status != StatusOccupied {
		return false
	}

	r.Status = StatusAvailable
	r.EndDate = nil
	r.DaysUnderStatus = 0
	return true
}

// Cost is the price of the current stay, days under status times the per-day
// price. Meaningful only while the room is Occupied.
func (r *Room) Cost() int {
	return r.DaysUnderStatus * r.Price
}

// SetCleaning schedules a one-day cleaning ending tomorrow.
func (r *Room) SetCleaning(today time.Time) bool {
	if r.Status == StatusOccupied {
		return false
	}

	r.setStatusDates(today, 1)
	r.Status = StatusCleaning
	return true
}

// SetUnderMaintenance takes the room out of service for the given number of days.
func (r *Room) SetUnderMaintenance(today time.Time, days int) bool {
	if r.Status == StatusOccupied || days < 0 {
		return false
	}

	r.setStatusDates(today, days)
	r.Status = StatusMaintenance
	return true
}

// SetAvailable returns the room to inventory.
func (r *Room) SetAvailable() bool {
	if r.Status == StatusOccupied {
		return false
	}

	r.Status = StatusAvailable
	r.EndDate = nil
	r.DaysUnderStatus = 0
	return true
}

// UpdatePrice changes the per-day price. Rejected while the room is Occupied.
func (r *Room) UpdatePrice(price int) bool {
	if r.Status == StatusOccupied {
		return false
	}

	r.Price = price
	return true
}

// EndsOn reports whether the current status is scheduled to end on the given day.
func (r *Room) EndsOn(day time.Time) bool {
	return r.EndDate != nil && r.EndDate.Equal(day)
}

func (r *Room) setStatusDates(startDate time.Time, days int) {
	end := startDate.AddDate(0, 0, days)
	r.EndDate = &end
	r.DaysUnderStatus = days
}

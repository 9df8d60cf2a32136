package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var day = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestRoom_CheckIn(t *testing.T) {
	testCases := []struct {
		name       string
		status     RoomStatus
		guestCount int
		days       int
		expectOK   bool
	}{
		{"available room takes a fitting group", StatusAvailable, 2, 3, true},
		{"single guest fits", StatusAvailable, 1, 1, true},
		{"group at capacity fits", StatusAvailable, 3, 2, true},
		{"group over capacity is refused", StatusAvailable, 4, 2, false},
		{"empty group is refused", StatusAvailable, 0, 2, false},
		{"occupied room is refused", StatusOccupied, 1, 2, false},
		{"cleaning room is refused", StatusCleaning, 1, 2, false},
		{"maintenance room is refused", StatusMaintenance, 1, 2, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			room := NewRoom(101, TypeStandard, 1000, 3)
			room.Status = tc.status

			ok := room.CheckIn(tc.guestCount, day, tc.days)

			assert.Equal(t, tc.expectOK, ok)
			if tc.expectOK {
				assert.Equal(t, StatusOccupied, room.Status)
				assert.Equal(t, tc.days, room.DaysUnderStatus)
				expectedEnd := day.AddDate(0, 0, tc.days)
				assert.NotNil(t, room.EndDate)
				assert.True(t, room.EndDate.Equal(expectedEnd))
			} else {
				// A refused check-in must leave the room untouched.
				assert.Equal(t, tc.status, room.Status)
				assert.Nil(t, room.EndDate)
				assert.Zero(t, room.DaysUnderStatus)
			}
		})
	}
}

func TestRoom_CheckOut(t *testing.T) {
	room := NewRoom(101, TypeLuxury, 2500, 2)
	assert.True(t, room.CheckIn(2, day, 4))
	assert.Equal(t, 10000, room.Cost())

	assert.True(t, room.CheckOut())
	assert.Equal(t, StatusAvailable, room.Status)
	assert.Nil(t, room.EndDate)
	assert.Zero(t, room.DaysUnderStatus)

	// A second checkout is a no-op failure.
	assert.False(t, room.CheckOut())
}

func TestRoom_SetCleaning(t *testing.T) {
	room := NewRoom(102, TypeEconomy, 500, 1)

	assert.True(t, room.SetCleaning(day))
	assert.Equal(t, StatusCleaning, room.Status)
	assert.Equal(t, 1, room.DaysUnderStatus)
	assert.True(t, room.EndDate.Equal(day.AddDate(0, 0, 1)))

	room = NewRoom(102, TypeEconomy, 500, 1)
	room.CheckIn(1, day, 2)
	assert.False(t, room.SetCleaning(day), "occupied room cannot go to cleaning")
	assert.Equal(t, StatusOccupied, room.Status)
}

func TestRoom_SetUnderMaintenance(t *testing.T) {
	room := NewRoom(103, TypeStandard, 800, 2)

	assert.True(t, room.SetUnderMaintenance(day, 5))
	assert.Equal(t, StatusMaintenance, room.Status)
	assert.True(t, room.EndDate.Equal(day.AddDate(0, 0, 5)))

	// Maintenance can be extended while already under maintenance.
	assert.True(t, room.SetUnderMaintenance(day, 10))
	assert.True(t, room.EndDate.Equal(day.AddDate(0, 0, 10)))

	assert.False(t, room.SetUnderMaintenance(day, -1), "negative duration is refused")

	room = NewRoom(103, TypeStandard, 800, 2)
	room.CheckIn(1, day, 2)
	assert.False(t, room.SetUnderMaintenance(day, 3))
}

func TestRoom_SetAvailable(t *testing.T) {
	room := NewRoom(104, TypeStandard, 800, 2)
	room.SetUnderMaintenance(day, 3)

	assert.True(t, room.SetAvailable())
	assert.Equal(t, StatusAvailable, room.Status)
	assert.Nil(t, room.EndDate)

	room = NewRoom(104, TypeStandard, 800, 2)
	room.CheckIn(1, day, 2)
	assert.False(t, room.SetAvailable(), "occupied room must go through checkout")
}

func TestRoom_UpdatePrice(t *testing.T) {
	room := NewRoom(105, TypePresidential, 9000, 4)

	assert.True(t, room.UpdatePrice(9500))
	assert.Equal(t, 9500, room.Price)

	room.CheckIn(2, day, 3)
	assert.False(t, room.UpdatePrice(100), "price is frozen while occupied")
	assert.Equal(t, 9500, room.Price)
	assert.Equal(t, 3*9500, room.Cost())
}

func TestRoom_EndsOn(t *testing.T) {
	room := NewRoom(106, TypeEconomy, 400, 1)
	assert.False(t, room.EndsOn(day), "fresh room has no scheduled end")

	room.CheckIn(1, day, 2)
	assert.False(t, room.EndsOn(day.AddDate(0, 0, 1)))
	assert.True(t, room.EndsOn(day.AddDate(0, 0, 2)))
}

func TestValidRoomType(t *testing.T) {
	for _, valid := range []string{"ECONOMY", "STANDARD", "LUXURY", "PRESIDENTIAL"} {
		assert.True(t, ValidRoomType(valid), valid)
	}
	assert.False(t, ValidRoomType("SUITE"))
	assert.False(t, ValidRoomType("economy"))
	assert.False(t, ValidRoomType(""))
}

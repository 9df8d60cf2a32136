package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hotel-management-backend/internal/db"
	"hotel-management-backend/internal/model"
)

// newTestStore opens a private in-memory database with the full schema.
func newTestStore(t *testing.T) Store {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	})

	require.NoError(t, db.Migrate(gormDB))
	return NewGormStore(gormDB)
}

func TestGormStore_RoomNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.FindRoom(ctx, 999)
	assert.True(t, errors.Is(err, ErrRoomNotFound))
}

func TestGormStore_SaveGuest_AssignsID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved, err := s.SaveGuest(ctx, &model.Guest{FirstName: "Ada", LastName: "Lovelace", RoomNumber: 101})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID, "a fresh guest gets an id on first save")

	// An id supplied by the caller survives.
	supplied, err := s.SaveGuest(ctx, &model.Guest{ID: "g-1", FirstName: "Alan", LastName: "Turing", RoomNumber: 101})
	require.NoError(t, err)
	assert.Equal(t, "g-1", supplied.ID)

	guests, err := s.FindGuestsByRoom(ctx, 101)
	require.NoError(t, err)
	assert.Len(t, guests, 2)
}

func TestGormStore_NextHistoryGroupID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.NextHistoryGroupID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 1, id, "first group of a room is 1")

	require.NoError(t, s.AppendHistory(ctx, []model.GuestHistoryEntry{
		{GuestID: "g-1", FirstName: "Ada", LastName: "Lovelace", RoomNumber: 101, GroupID: id},
	}))

	id, err = s.NextHistoryGroupID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 2, id, "group ids are strictly increasing per room")

	// Another room keeps its own sequence.
	id, err = s.NextHistoryGroupID(ctx, 202)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestGormStore_HistoryGroups(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for group := 1; group <= 4; group++ {
		entries := []model.GuestHistoryEntry{
			{GuestID: fmt.Sprintf("g-%d-a", group), FirstName: "First", LastName: "Guest", RoomNumber: 101, GroupID: group},
			{GuestID: fmt.Sprintf("g-%d-b", group), FirstName: "Second", LastName: "Guest", RoomNumber: 101, GroupID: group},
		}
		require.NoError(t, s.AppendHistory(ctx, entries))
	}

	groups, err := s.HistoryGroups(ctx, 101, 3)
	require.NoError(t, err)
	require.Len(t, groups, 3, "limit caps the number of returned groups")

	assert.Equal(t, 4, groups[0][0].GroupID, "most recent group comes first")
	assert.Equal(t, 3, groups[1][0].GroupID)
	assert.Equal(t, 2, groups[2][0].GroupID)
	for _, group := range groups {
		assert.Len(t, group, 2, "groups keep all their members")
	}

	empty, err := s.HistoryGroups(ctx, 999, 3)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormStore_DayState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, ok, err := s.LoadCurrentDay(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "fresh database has no persisted day")

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveCurrentDay(ctx, day))

	loaded, ok, err := s.LoadCurrentDay(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, loaded.Equal(day))

	// Saving again overwrites the single row.
	next := day.AddDate(0, 0, 1)
	require.NoError(t, s.SaveCurrentDay(ctx, next))
	loaded, ok, err = s.LoadCurrentDay(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, loaded.Equal(next))
}

func TestGormStore_TransactionRollback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := s.Transaction(ctx, func(tx Store) error {
		if err := tx.SaveRoom(ctx, model.NewRoom(101, model.TypeStandard, 1000, 2)); err != nil {
			return err
		}
		return sentinel
	})
	assert.True(t, errors.Is(err, sentinel))

	_, err = s.FindRoom(ctx, 101)
	assert.True(t, errors.Is(err, ErrRoomNotFound), "failed transaction leaves nothing behind")
}

func TestGormStore_ServiceUsages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	svc, err := s.SaveService(ctx, &model.Service{Name: "Breakfast", Price: 200})
	require.NoError(t, err)
	require.NotEmpty(t, svc.ID)

	guest, err := s.SaveGuest(ctx, &model.Guest{FirstName: "Ada", LastName: "Lovelace", RoomNumber: 101})
	require.NoError(t, err)

	day := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.AddServiceUsage(ctx, &model.ServiceUsage{GuestID: guest.ID, ServiceID: svc.ID, UsedOn: day}))
	require.NoError(t, s.AddServiceUsage(ctx, &model.ServiceUsage{GuestID: guest.ID, ServiceID: svc.ID, UsedOn: day.AddDate(0, 0, -1)}))

	usages, err := s.ServiceUsagesOfGuest(ctx, guest.ID)
	require.NoError(t, err)
	require.Len(t, usages, 2)
	assert.True(t, usages[0].UsedOn.Before(usages[1].UsedOn), "usages come back date-ordered")
	assert.Equal(t, "Breakfast", usages[0].Service.Name, "the service is preloaded")
}

func TestGormStore_ReplaceServiceUsages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	guest, err := s.SaveGuest(ctx, &model.Guest{FirstName: "Ada", LastName: "Lovelace", RoomNumber: 101})
	require.NoError(t, err)

	day := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.AddServiceUsage(ctx, &model.ServiceUsage{GuestID: guest.ID, ServiceID: "svc-old", UsedOn: day}))

	replacement := []model.ServiceUsage{
		{ServiceID: "svc-new", UsedOn: day},
		{ServiceID: "svc-new", UsedOn: day.AddDate(0, 0, 1)},
	}
	require.NoError(t, s.ReplaceServiceUsages(ctx, guest.ID, replacement))

	usages, err := s.ServiceUsagesOfGuest(ctx, guest.ID)
	require.NoError(t, err)
	require.Len(t, usages, 2, "the old set is gone, not merged")
	for _, u := range usages {
		assert.Equal(t, "svc-new", u.ServiceID)
		assert.Equal(t, guest.ID, u.GuestID)
	}

	// Replacing with the same slice again must not duplicate or collide.
	require.NoError(t, s.ReplaceServiceUsages(ctx, guest.ID, replacement))
	usages, err = s.ServiceUsagesOfGuest(ctx, guest.ID)
	require.NoError(t, err)
	assert.Len(t, usages, 2)

	// An empty set clears everything.
	require.NoError(t, s.ReplaceServiceUsages(ctx, guest.ID, nil))
	usages, err = s.ServiceUsagesOfGuest(ctx, guest.ID)
	require.NoError(t, err)
	assert.Empty(t, usages)

	require.NoError(t, s.DeleteServiceUsagesOfGuest(ctx, guest.ID), "deleting with nothing left is fine")
}

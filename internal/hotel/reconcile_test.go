package hotel

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-management-backend/internal/model"
	"hotel-management-backend/internal/transfer"
)

func TestEngine_ImportGuests_AvailableRooms(t *testing.T) {
	e, s, _ := newTestEngine(t, nil)
	ctx := context.Background()
	addRoom(t, e, 101, 1000, 2)
	addRoom(t, e, 102, 800, 1)

	require.NoError(t, e.ImportServices(ctx, []model.Service{
		{ID: "svc-1", Name: "Breakfast", Price: 200},
	}))

	usedOn := time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)
	imported := []model.Guest{
		{ID: "g-1", FirstName: "Ada", LastName: "Lovelace", RoomNumber: 101,
			ServiceUsages: []model.ServiceUsage{{ServiceID: "svc-1", UsedOn: usedOn}}},
		{ID: "g-2", FirstName: "Alan", LastName: "Turing", RoomNumber: 101},
		{ID: "g-3", FirstName: "Grace", LastName: "Hopper", RoomNumber: 102},
	}
	require.NoError(t, e.ImportGuests(ctx, imported))

	room, err := s.FindRoom(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOccupied, room.Status)

	guests, err := s.FindGuestsByRoom(ctx, 101)
	require.NoError(t, err)
	assert.Len(t, guests, 2)
	guests, err = s.FindGuestsByRoom(ctx, 102)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "g-3", guests[0].ID, "imported ids are kept")

	// Usage records carried by the import survive it.
	usages, err := s.ServiceUsagesOfGuest(ctx, "g-1")
	require.NoError(t, err)
	require.Len(t, usages, 1)
	assert.Equal(t, "svc-1", usages[0].ServiceID)
	assert.True(t, usages[0].UsedOn.Equal(usedOn))
}

func TestEngine_ImportGuests_OccupiedRoomMatching(t *testing.T) {
	e, s, _ := newTestEngine(t, nil)
	ctx := context.Background()
	addRoom(t, e, 101, 1000, 2)

	require.NoError(t, e.ImportGuests(ctx, []model.Guest{
		{ID: "g-a", FirstName: "Ada", LastName: "Lovelace", RoomNumber: 101},
		{ID: "g-b", FirstName: "Alan", LastName: "Turing", RoomNumber: 101},
	}))

	// Same id set, updated names and usages: records are refreshed in place.
	usedOn := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	batch := []model.Guest{
		{ID: "g-b", FirstName: "Alan", LastName: "Turing-Updated", RoomNumber: 101,
			ServiceUsages: []model.ServiceUsage{{ServiceID: "svc-9", UsedOn: usedOn}}},
		{ID: "g-a", FirstName: "Ada", LastName: "Lovelace", RoomNumber: 101},
	}
	require.NoError(t, e.ImportGuests(ctx, batch))

	guest, err := s.FindGuest(ctx, "g-b")
	require.NoError(t, err)
	assert.Equal(t, "Turing-Updated", guest.LastName)

	usages, err := s.ServiceUsagesOfGuest(ctx, "g-b")
	require.NoError(t, err)
	require.Len(t, usages, 1)
	assert.Equal(t, "svc-9", usages[0].ServiceID)

	// Replaying the same batch replaces the usage set instead of doubling it.
	require.NoError(t, e.ImportGuests(ctx, batch))
	usages, err = s.ServiceUsagesOfGuest(ctx, "g-b")
	require.NoError(t, err)
	assert.Len(t, usages, 1)
}

func TestEngine_ImportGuests_PartialFailure(t *testing.T) {
	e, s, _ := newTestEngine(t, nil)
	ctx := context.Background()
	addRoom(t, e, 101, 1000, 2)
	addRoom(t, e, 102, 800, 1)
	addRoom(t, e, 103, 600, 1)

	// Occupy 101 with {g-a, g-b}.
	require.NoError(t, e.ImportGuests(ctx, []model.Guest{
		{ID: "g-a", FirstName: "Ada", LastName: "Lovelace", RoomNumber: 101},
		{ID: "g-b", FirstName: "Alan", LastName: "Turing", RoomNumber: 101},
	}))
	// Put 103 out of reach.
	ok, err := e.SetRoomUnderMaintenance(ctx, 103, 5)
	require.NoError(t, err)
	require.True(t, ok)

	err = e.ImportGuests(ctx, []model.Guest{
		// Mismatched id set for the occupied room: {g-a, g-c} vs {g-a, g-b}.
		{ID: "g-a", FirstName: "Ada", LastName: "Lovelace", RoomNumber: 101},
		{ID: "g-c", FirstName: "Grace", LastName: "Hopper", RoomNumber: 101},
		// Fine: 102 is available.
		{ID: "g-d", FirstName: "Edsger", LastName: "Dijkstra", RoomNumber: 102},
		// Unknown room.
		{ID: "g-e", FirstName: "Donald", LastName: "Knuth", RoomNumber: 999},
		// Room under maintenance.
		{ID: "g-f", FirstName: "Barbara", LastName: "Liskov", RoomNumber: 103},
	})

	var reconcileErr *ReconcileError
	require.True(t, errors.As(err, &reconcileErr))
	assert.Equal(t, []int{101, 103, 999}, reconcileErr.Rooms)

	// The clean room committed despite the surrounding failures.
	guests, err := s.FindGuestsByRoom(ctx, 102)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "g-d", guests[0].ID)

	// The mismatched room kept its original occupants.
	guests, err = s.FindGuestsByRoom(ctx, 101)
	require.NoError(t, err)
	require.Len(t, guests, 2)
	for _, g := range guests {
		assert.NotEqual(t, "g-c", g.ID)
	}
}

func TestEngine_ImportGuests_IgnoresUnassigned(t *testing.T) {
	e, s, _ := newTestEngine(t, nil)
	ctx := context.Background()
	addRoom(t, e, 101, 1000, 2)

	require.NoError(t, e.ImportGuests(ctx, []model.Guest{
		{ID: "g-x", FirstName: "No", LastName: "Room", RoomNumber: 0},
	}))
	guests, err := s.AllGuests(ctx)
	require.NoError(t, err)
	assert.Empty(t, guests)
}

func TestEngine_ImportServices(t *testing.T) {
	e, _, _ := newTestEngine(t, nil)
	ctx := context.Background()

	require.NoError(t, e.ImportServices(ctx, []model.Service{
		{ID: "svc-1", Name: "Breakfast", Price: 200},
		{ID: "svc-2", Name: "Spa", Price: 500, Description: "Full day"},
	}))

	services, err := e.Services(ctx)
	require.NoError(t, err)
	require.Len(t, services, 2)

	// Importing again with a changed price upserts.
	require.NoError(t, e.ImportServices(ctx, []model.Service{
		{ID: "svc-1", Name: "Breakfast", Price: 250},
	}))
	services, err = e.Services(ctx)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, 250, services[0].Price)
}

// TestExportImportRoundTrip exports a populated hotel and replays it into an
// empty one, expecting identical occupancy on the other side.
func TestExportImportRoundTrip(t *testing.T) {
	source, srcStore, _ := newTestEngine(t, nil)
	ctx := context.Background()
	addRoom(t, source, 101, 1000, 2)
	addRoom(t, source, 102, 800, 1)

	in, err := source.CheckIn(ctx, 101, drafts("Ada", "Alan"), 3)
	require.NoError(t, err)
	require.True(t, in.OK)

	svc, err := source.AddService(ctx, "Breakfast", 200, "")
	require.NoError(t, err)
	adaID := in.Guests[0].ID
	require.NoError(t, source.AddServiceToGuest(ctx, adaID, svc.ID, time.Time{}))

	// Export rooms with their embedded guests and usages.
	rooms, err := source.Rooms(ctx, RoomSortNumber, Asc)
	require.NoError(t, err)
	for i := range rooms {
		guests, err := srcStore.FindGuestsByRoom(ctx, rooms[i].Number)
		require.NoError(t, err)
		for j := range guests {
			usages, err := srcStore.ServiceUsagesOfGuest(ctx, guests[j].ID)
			require.NoError(t, err)
			guests[j].ServiceUsages = usages
		}
		rooms[i].Guests = guests
	}
	var buf bytes.Buffer
	require.NoError(t, transfer.Export(&buf, rooms, transfer.RoomCodec{}))

	// Replay into a fresh hotel.
	target, dstStore, _ := newTestEngine(t, nil)
	imported, err := transfer.Import(bytes.NewReader(buf.Bytes()), transfer.RoomCodec{})
	require.NoError(t, err)
	require.NoError(t, target.ImportRooms(ctx, imported))

	room, err := dstStore.FindRoom(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOccupied, room.Status)
	assert.Equal(t, 3, room.DaysUnderStatus)
	require.NotNil(t, room.EndDate)
	assert.True(t, room.EndDate.Equal(testDay.AddDate(0, 0, 3)))

	guests, err := dstStore.FindGuestsByRoom(ctx, 101)
	require.NoError(t, err)
	require.Len(t, guests, 2)

	// Service usages cross the round trip with their guest.
	usages, err := dstStore.ServiceUsagesOfGuest(ctx, adaID)
	require.NoError(t, err)
	require.Len(t, usages, 1)
	assert.Equal(t, svc.ID, usages[0].ServiceID)
	assert.True(t, usages[0].UsedOn.Equal(testDay))

	// A guest import with the same id set now reconciles cleanly.
	guestExport, err := transfer.Import(bytes.NewReader(buf.Bytes()), transfer.RoomCodec{})
	require.NoError(t, err)
	var batch []model.Guest
	for _, r := range guestExport {
		batch = append(batch, r.Guests...)
	}
	require.NoError(t, target.ImportGuests(ctx, batch))
}

func TestReconcileError_Message(t *testing.T) {
	err := &ReconcileError{Rooms: []int{101, 203}}
	assert.Equal(t, "unable to place imported guests, rooms: 101 203", err.Error())
}

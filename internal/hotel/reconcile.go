package hotel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"hotel-management-backend/internal/model"
	"hotel-management-backend/internal/store"
)

// ReconcileError aggregates every room an imported guest batch could not be
// placed into. Rooms that reconciled cleanly stay committed; this batch policy
// is deliberately best-effort, not all-or-nothing.
type ReconcileError struct {
	Rooms []int
}

func (e *ReconcileError) Error() string {
	parts := make([]string, len(e.Rooms))
	for i, n := range e.Rooms {
		parts[i] = strconv.Itoa(n)
	}
	return "unable to place imported guests, rooms: " + strings.Join(parts, " ")
}

// ImportGuests reconciles an externally supplied guest batch against current
// occupancy, room by room:
//   - unknown room: failure for that room
//   - Available room: fresh check-in of the whole group for the configured
//     stay duration
//   - Occupied room: if the imported id-set matches the current occupants
//     exactly, guest records are updated in place; otherwise failure
//   - Cleaning/Maintenance: failure
//
// Failures are collected and reported together as one ReconcileError.
func (e *Engine) ImportGuests(ctx context.Context, imported []model.Guest) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	byRoom := make(map[int][]model.Guest)
	for _, g := range imported {
		if g.RoomNumber > 0 {
			byRoom[g.RoomNumber] = append(byRoom[g.RoomNumber], g)
		}
	}

	numbers := make([]int, 0, len(byRoom))
	for n := range byRoom {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	var failed []int
	for _, n := range numbers {
		ok, err := e.reconcileRoom(ctx, n, byRoom[n])
		if err != nil {
			return fmt.Errorf("reconciliation of room %d hit a storage fault: %w", n, err)
		}
		if !ok {
			failed = append(failed, n)
		}
	}

	if len(failed) > 0 {
		return &ReconcileError{Rooms: failed}
	}
	return nil
}

// reconcileRoom applies one room's group in its own transaction. A false
// return is a business conflict; an error is a storage fault.
func (e *Engine) reconcileRoom(ctx context.Context, roomNumber int, group []model.Guest) (bool, error) {
	ok := true
	err := e.store.Transaction(ctx, func(s store.Store) error {
		room, err := s.FindRoom(ctx, roomNumber)
		if errors.Is(err, store.ErrRoomNotFound) {
			ok = false
			return nil
		}
		if err != nil {
			return err
		}

		switch room.Status {
		case model.StatusAvailable:
			placed, _, err := e.placeGuests(ctx, s, room, group, e.cfg.ReconcileStayDays)
			if err != nil {
				return err
			}
			ok = placed

		case model.StatusOccupied:
			current, err := s.FindGuestsByRoom(ctx, roomNumber)
			if err != nil {
				return err
			}
			if !sameGuestIDs(group, current) {
				ok = false
				return nil
			}
			for i := range group {
				group[i].RoomNumber = roomNumber
				if _, err := s.SaveGuest(ctx, &group[i]); err != nil {
					return err
				}
				// The imported record is authoritative for its usages.
				if err := s.ReplaceServiceUsages(ctx, group[i].ID, group[i].ServiceUsages); err != nil {
					return err
				}
			}

		default:
			ok = false
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

// sameGuestIDs compares two guest groups as id sets: order is irrelevant,
// size must match exactly.
func sameGuestIDs(a, b []model.Guest) bool {
	if len(a) != len(b) {
		return false
	}
	ids := make(map[string]struct{}, len(a))
	for _, g := range a {
		ids[g.ID] = struct{}{}
	}
	if len(ids) != len(b) {
		return false
	}
	for _, g := range b {
		if _, found := ids[g.ID]; !found {
			return false
		}
	}
	return true
}

// ImportRooms upserts externally supplied rooms, including any embedded
// current guests and their service usages, so that an exported hotel can be
// reproduced elsewhere.
func (e *Engine) ImportRooms(ctx context.Context, rooms []model.Room) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range rooms {
		room := rooms[i]
		err := e.store.Transaction(ctx, func(s store.Store) error {
			guests := room.Guests
			room.Guests = nil
			if err := s.SaveRoom(ctx, &room); err != nil {
				return err
			}
			for j := range guests {
				guests[j].RoomNumber = room.Number
				if _, err := s.SaveGuest(ctx, &guests[j]); err != nil {
					return err
				}
				if len(guests[j].ServiceUsages) > 0 {
					if err := s.ReplaceServiceUsages(ctx, guests[j].ID, guests[j].ServiceUsages); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to import room %d: %w", room.Number, err)
		}
	}
	return nil
}

// ImportServices upserts externally supplied catalog services.
func (e *Engine) ImportServices(ctx context.Context, services []model.Service) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range services {
		if _, err := e.store.SaveService(ctx, &services[i]); err != nil {
			return fmt.Errorf("failed to import service %s: %w", services[i].ID, err)
		}
	}
	return nil
}

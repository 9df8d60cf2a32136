package hotel

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"hotel-management-backend/config"
	"hotel-management-backend/internal/model"
	"hotel-management-backend/internal/store"
)

var (
	ErrRoomExists   = errors.New("room already exists")
	ErrInvalidRoom  = errors.New("invalid room")
	ErrInvalidGuest = errors.New("invalid guest")
)

// RoomNotifier is told when a room returns to inventory. Implemented by the
// notification worker pool; nil disables notifications.
type RoomNotifier interface {
	RoomAvailable(roomNumber int)
}

// GuestDraft is a guest as supplied by a caller: name only. Identity is
// assigned at check-in.
type GuestDraft struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

// CheckInOutcome reports a check-in attempt. OK is false on guard failure
// (room not available, group too large); nothing was mutated in that case.
type CheckInOutcome struct {
	OK     bool
	Guests []model.Guest
}

// CheckOutOutcome reports a checkout. TotalCost is days under status times the
// per-day price, computed before any mutation. OK is false when the room was
// not occupied.
type CheckOutOutcome struct {
	OK        bool
	TotalCost int
	GroupID   int
	Departed  []model.Guest
}

// Engine orchestrates every room/guest state transition. Compound operations
// are serialized behind a mutex and run inside store transactions, so a
// storage fault mid-operation never leaves partial state behind.
type Engine struct {
	mu       sync.Mutex
	store    store.Store
	clock    *DayClock
	cfg      *config.HotelConfig
	notifier RoomNotifier
}

// NewEngine wires the occupancy engine. notifier may be nil.
func NewEngine(s store.Store, clock *DayClock, cfg *config.HotelConfig, notifier RoomNotifier) *Engine {
	return &Engine{store: s, clock: clock, cfg: cfg, notifier: notifier}
}

// CurrentDay returns the operational day.
func (e *Engine) CurrentDay() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Current()
}

// AddRoom creates a new Available room. Fails with ErrRoomExists when the
// number is already taken.
func (e *Engine) AddRoom(ctx context.Context, number int, roomType model.RoomType, price, capacity int) (*model.Room, error) {
	if number <= 0 || price < 0 || capacity < 1 || !model.ValidRoomType(string(roomType)) {
		return nil, fmt.Errorf("%w: number=%d price=%d capacity=%d type=%s", ErrInvalidRoom, number, price, capacity, roomType)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.store.FindRoom(ctx, number); err == nil {
		return nil, fmt.Errorf("%w: %d", ErrRoomExists, number)
	} else if !errors.Is(err, store.ErrRoomNotFound) {
		return nil, err
	}

	room := model.NewRoom(number, roomType, price, capacity)
	if err := e.store.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// AddService adds a purchasable service to the catalog.
func (e *Engine) AddService(ctx context.Context, name string, price int, description string) (*model.Service, error) {
	if name == "" || price < 0 {
		return nil, fmt.Errorf("invalid service: name=%q price=%d", name, price)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.SaveService(ctx, &model.Service{Name: name, Price: price, Description: description})
}

// CheckIn places the drafted guests into the room for the given number of
// days. Room absence is a typed error, reported even when the stay length is
// bad; a failed guard is a negative outcome with no state change.
func (e *Engine) CheckIn(ctx context.Context, roomNumber int, drafts []GuestDraft, days int) (CheckInOutcome, error) {
	for _, d := range drafts {
		if d.FirstName == "" || d.LastName == "" {
			return CheckInOutcome{}, fmt.Errorf("%w: first and last name required", ErrInvalidGuest)
		}
	}

	guests := make([]model.Guest, len(drafts))
	for i, d := range drafts {
		guests[i] = model.Guest{FirstName: d.FirstName, LastName: d.LastName}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var out CheckInOutcome
	err := e.store.Transaction(ctx, func(s store.Store) error {
		room, err := s.FindRoom(ctx, roomNumber)
		if err != nil {
			return err
		}
		if days < 1 {
			return nil
		}
		ok, placed, err := e.placeGuests(ctx, s, room, guests, days)
		if err != nil {
			return err
		}
		out = CheckInOutcome{OK: ok, Guests: placed}
		return nil
	})
	if err != nil {
		return CheckInOutcome{}, err
	}
	return out, nil
}

// placeGuests applies the room's check-in guard and persists guests and room.
// Guests may already carry ids and service usages (bulk import); fresh drafts
// get an id from the store. Must run inside a transaction.
func (e *Engine) placeGuests(ctx context.Context, s store.Store, room *model.Room, guests []model.Guest, days int) (bool, []model.Guest, error) {
	if !room.CheckIn(len(guests), e.clock.Current(), days) {
		return false, nil, nil
	}

	placed := make([]model.Guest, 0, len(guests))
	for i := range guests {
		guests[i].RoomNumber = room.Number
		saved, err := s.SaveGuest(ctx, &guests[i])
		if err != nil {
			return false, nil, err
		}
		if len(guests[i].ServiceUsages) > 0 {
			if err := s.ReplaceServiceUsages(ctx, saved.ID, guests[i].ServiceUsages); err != nil {
				return false, nil, err
			}
		}
		placed = append(placed, *saved)
	}

	if err := s.SaveRoom(ctx, room); err != nil {
		return false, nil, err
	}
	return true, placed, nil
}

// CheckOut settles and releases an occupied room: total cost computed up
// front, guests snapshotted to the history ledger under a fresh group id and
// removed from live storage, room returned to inventory (or to a one-day
// cleaning, per configuration).
func (e *Engine) CheckOut(ctx context.Context, roomNumber int) (CheckOutOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	out, freed, err := e.checkOutTx(ctx, roomNumber)
	if err != nil {
		return CheckOutOutcome{}, err
	}
	if freed {
		e.notifyAvailable(roomNumber)
	}
	return out, nil
}

// checkOutTx runs one checkout in its own transaction. The second return
// reports whether the room ended up Available. Caller holds the lock.
func (e *Engine) checkOutTx(ctx context.Context, roomNumber int) (CheckOutOutcome, bool, error) {
	var out CheckOutOutcome
	var freed bool
	err := e.store.Transaction(ctx, func(s store.Store) error {
		room, err := s.FindRoom(ctx, roomNumber)
		if err != nil {
			return err
		}
		if room.Status != model.StatusOccupied {
			return nil
		}

		cost := room.Cost()

		guests, err := s.FindGuestsByRoom(ctx, roomNumber)
		if err != nil {
			return err
		}
		groupID, err := s.NextHistoryGroupID(ctx, roomNumber)
		if err != nil {
			return err
		}

		entries := make([]model.GuestHistoryEntry, len(guests))
		for i := range guests {
			entries[i] = model.HistoryFromGuest(&guests[i], roomNumber, groupID)
		}
		if err := s.AppendHistory(ctx, entries); err != nil {
			return err
		}
		for _, g := range guests {
			if err := s.DeleteServiceUsagesOfGuest(ctx, g.ID); err != nil {
				return err
			}
			if err := s.DeleteGuest(ctx, g.ID); err != nil {
				return err
			}
		}

		room.CheckOut()
		if e.cfg.PostCheckoutStatus == "cleaning" {
			room.SetCleaning(e.clock.Current())
		}
		if err := s.SaveRoom(ctx, room); err != nil {
			return err
		}

		out = CheckOutOutcome{OK: true, TotalCost: cost, GroupID: groupID, Departed: guests}
		freed = room.Status == model.StatusAvailable
		return nil
	})
	if err != nil {
		return CheckOutOutcome{}, false, err
	}
	return out, freed, nil
}

// AddServiceToGuest attaches a service usage to a checked-in guest. Unknown
// guest or service ids are typed failures. A zero usedOn defaults to the
// current day.
func (e *Engine) AddServiceToGuest(ctx context.Context, guestID, serviceID string, usedOn time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if usedOn.IsZero() {
		usedOn = e.clock.Current()
	}

	return e.store.Transaction(ctx, func(s store.Store) error {
		guest, err := s.FindGuest(ctx, guestID)
		if err != nil {
			return err
		}
		svc, err := s.FindService(ctx, serviceID)
		if err != nil {
			return err
		}
		return s.AddServiceUsage(ctx, &model.ServiceUsage{
			GuestID:   guest.ID,
			ServiceID: svc.ID,
			UsedOn:    usedOn,
		})
	})
}

// SetRoomCleaning schedules a one-day cleaning. False when the room is
// occupied or manual status changes are disabled.
func (e *Engine) SetRoomCleaning(ctx context.Context, roomNumber int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.allowsStatusChange() {
		return false, nil
	}
	return e.transitionRoom(ctx, roomNumber, func(r *model.Room) bool {
		return r.SetCleaning(e.clock.Current())
	})
}

// SetRoomUnderMaintenance takes a room out of service for the given days.
func (e *Engine) SetRoomUnderMaintenance(ctx context.Context, roomNumber, days int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.allowsStatusChange() {
		return false, nil
	}
	return e.transitionRoom(ctx, roomNumber, func(r *model.Room) bool {
		return r.SetUnderMaintenance(e.clock.Current(), days)
	})
}

// SetRoomAvailable returns a room to inventory.
func (e *Engine) SetRoomAvailable(ctx context.Context, roomNumber int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.allowsStatusChange() {
		return false, nil
	}
	ok, err := e.transitionRoom(ctx, roomNumber, (*model.Room).SetAvailable)
	if err == nil && ok {
		e.notifyAvailable(roomNumber)
	}
	return ok, err
}

// SetRoomPrice updates the per-day price. False while the room is occupied.
func (e *Engine) SetRoomPrice(ctx context.Context, roomNumber, price int) (bool, error) {
	if price < 0 {
		return false, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.transitionRoom(ctx, roomNumber, func(r *model.Room) bool {
		return r.UpdatePrice(price)
	})
}

// SetServicePrice updates a catalog service price.
func (e *Engine) SetServicePrice(ctx context.Context, serviceID string, price int) error {
	if price < 0 {
		return fmt.Errorf("invalid service price %d", price)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	svc, err := e.store.FindService(ctx, serviceID)
	if err != nil {
		return err
	}
	svc.Price = price
	_, err = e.store.SaveService(ctx, svc)
	return err
}

// AdvanceDay moves the operational day forward by one and sweeps every room:
// occupied rooms whose stay ends today are force-checked-out, cleaning and
// maintenance windows ending today are released. Each room's transition is
// independent; one failure never blocks the rest of the sweep.
func (e *Engine) AdvanceDay(ctx context.Context) (time.Time, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	day, err := e.clock.Advance(ctx)
	if err != nil {
		return time.Time{}, err
	}

	rooms, err := e.store.AllRooms(ctx)
	if err != nil {
		return day, fmt.Errorf("end-of-day sweep aborted: %w", err)
	}

	var freed []int
	for i := range rooms {
		room := rooms[i]
		if !room.EndsOn(day) {
			continue
		}
		switch room.Status {
		case model.StatusOccupied:
			out, available, err := e.checkOutTx(ctx, room.Number)
			if err != nil {
				log.Printf("end-of-day checkout of room %d failed: %v", room.Number, err)
				continue
			}
			if out.OK {
				log.Printf("room %d checked out at end of day, total cost %d", room.Number, out.TotalCost)
			}
			if available {
				freed = append(freed, room.Number)
			}
		case model.StatusCleaning, model.StatusMaintenance:
			if !room.SetAvailable() {
				continue
			}
			if err := e.store.SaveRoom(ctx, &room); err != nil {
				log.Printf("end-of-day release of room %d failed: %v", room.Number, err)
				continue
			}
			freed = append(freed, room.Number)
		}
	}

	for _, n := range freed {
		e.notifyAvailable(n)
	}
	return day, nil
}

func (e *Engine) allowsStatusChange() bool {
	return e.cfg.AllowsStatusChange()
}

// transitionRoom loads the room, applies the guarded transition and saves on
// success. Caller holds the lock.
func (e *Engine) transitionRoom(ctx context.Context, roomNumber int, apply func(*model.Room) bool) (bool, error) {
	room, err := e.store.FindRoom(ctx, roomNumber)
	if err != nil {
		return false, err
	}
	if !apply(room) {
		return false, nil
	}
	if err := e.store.SaveRoom(ctx, room); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Engine) notifyAvailable(roomNumber int) {
	if e.notifier != nil {
		e.notifier.RoomAvailable(roomNumber)
	}
}

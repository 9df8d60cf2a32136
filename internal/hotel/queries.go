package hotel

import (
	"context"
	"sort"
	"strconv"
	"time"

	"hotel-management-backend/internal/model"
)

// SortDir is the direction of a sorted listing.
type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

// ParseSortDir interprets a query parameter, defaulting to ascending.
func ParseSortDir(s string) SortDir {
	if s == string(Desc) {
		return Desc
	}
	return Asc
}

// RoomSort selects the room listing order.
type RoomSort string

const (
	RoomSortNumber   RoomSort = "number"
	RoomSortPrice    RoomSort = "price"
	RoomSortCapacity RoomSort = "capacity"
	RoomSortType     RoomSort = "type"
)

// GuestSort selects the guest listing order.
type GuestSort string

const (
	GuestSortName     GuestSort = "name"
	GuestSortCheckout GuestSort = "checkout"
)

// UsageSort selects the service-usage listing order.
type UsageSort string

const (
	UsageSortPrice UsageSort = "price"
	UsageSortDate  UsageSort = "date"
)

// PriceSort selects the combined price listing order.
type PriceSort string

const (
	PriceSortID    PriceSort = "id"
	PriceSortPrice PriceSort = "price"
)

// Summary is the hotel status snapshot served by the presentation layer.
type Summary struct {
	Name           string    `json:"name"`
	CurrentDay     time.Time `json:"currentDay"`
	AvailableRooms int       `json:"availableRooms"`
	Guests         int       `json:"guests"`
}

// GuestData is a guest listing row with the stay's scheduled end.
type GuestData struct {
	ID          string     `json:"id"`
	FullName    string     `json:"fullName"`
	RoomNumber  int        `json:"roomNumber"`
	CheckoutDay *time.Time `json:"checkoutDay,omitempty"`
}

// PriceEntry is one row of the combined room/service price list. Rooms are
// listed as "R<number>".
type PriceEntry struct {
	ID    string `json:"id"`
	Price int    `json:"price"`
}

// Summary reports the hotel name, day, free-room count and guest count.
func (e *Engine) Summary(ctx context.Context) (Summary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	available, err := e.store.AvailableRooms(ctx)
	if err != nil {
		return Summary{}, err
	}
	guests, err := e.store.AllGuests(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Name:           e.cfg.Name,
		CurrentDay:     e.clock.Current(),
		AvailableRooms: len(available),
		Guests:         len(guests),
	}, nil
}

// Rooms lists every room in the requested order.
func (e *Engine) Rooms(ctx context.Context, by RoomSort, dir SortDir) ([]model.Room, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rooms, err := e.store.AllRooms(ctx)
	if err != nil {
		return nil, err
	}
	sortRooms(rooms, by, dir)
	return rooms, nil
}

// AvailableRooms lists the rooms currently open for check-in.
func (e *Engine) AvailableRooms(ctx context.Context, by RoomSort, dir SortDir) ([]model.Room, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rooms, err := e.store.AvailableRooms(ctx)
	if err != nil {
		return nil, err
	}
	sortRooms(rooms, by, dir)
	return rooms, nil
}

// RoomsAvailableOn lists rooms whose current status has run out before the
// given date, regardless of today's status.
func (e *Engine) RoomsAvailableOn(ctx context.Context, date time.Time) ([]model.Room, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rooms, err := e.store.AllRooms(ctx)
	if err != nil {
		return nil, err
	}
	out := rooms[:0]
	for _, r := range rooms {
		if r.EndDate == nil || date.After(*r.EndDate) {
			out = append(out, r)
		}
	}
	return out, nil
}

// RoomDetails returns the room together with its current guests.
func (e *Engine) RoomDetails(ctx context.Context, roomNumber int) (*model.Room, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, err := e.store.FindRoom(ctx, roomNumber)
	if err != nil {
		return nil, err
	}
	guests, err := e.store.FindGuestsByRoom(ctx, roomNumber)
	if err != nil {
		return nil, err
	}
	room.Guests = guests
	return room, nil
}

// RoomHistory returns the most recent guest groups of the room, newest first,
// capped by the configured history limit.
func (e *Engine) RoomHistory(ctx context.Context, roomNumber int) ([][]model.GuestHistoryEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.store.FindRoom(ctx, roomNumber); err != nil {
		return nil, err
	}
	return e.store.HistoryGroups(ctx, roomNumber, e.cfg.HistoryGroupLimit)
}

// Guests lists checked-in guests with their scheduled checkout day.
func (e *Engine) Guests(ctx context.Context, by GuestSort, dir SortDir) ([]GuestData, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	guests, err := e.store.AllGuests(ctx)
	if err != nil {
		return nil, err
	}
	rooms, err := e.store.AllRooms(ctx)
	if err != nil {
		return nil, err
	}
	endByRoom := make(map[int]*time.Time, len(rooms))
	for i := range rooms {
		endByRoom[rooms[i].Number] = rooms[i].EndDate
	}

	data := make([]GuestData, len(guests))
	for i, g := range guests {
		data[i] = GuestData{
			ID:          g.ID,
			FullName:    g.FullName(),
			RoomNumber:  g.RoomNumber,
			CheckoutDay: endByRoom[g.RoomNumber],
		}
	}

	asc := func(i, j int) bool {
		if by == GuestSortCheckout {
			di, dj := data[i].CheckoutDay, data[j].CheckoutDay
			switch {
			case di == nil:
				return dj != nil
			case dj == nil:
				return false
			case !di.Equal(*dj):
				return di.Before(*dj)
			}
		}
		return data[i].FullName < data[j].FullName
	}
	sort.Slice(data, directed(asc, dir))
	return data, nil
}

// GuestServices lists a guest's service usages. Unknown guest ids are typed
// failures.
func (e *Engine) GuestServices(ctx context.Context, guestID string, by UsageSort, dir SortDir) ([]model.ServiceUsage, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.store.FindGuest(ctx, guestID); err != nil {
		return nil, err
	}
	usages, err := e.store.ServiceUsagesOfGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}

	asc := func(i, j int) bool {
		if by == UsageSortPrice && usages[i].Service.Price != usages[j].Service.Price {
			return usages[i].Service.Price < usages[j].Service.Price
		}
		return usages[i].UsedOn.Before(usages[j].UsedOn)
	}
	sort.Slice(usages, directed(asc, dir))
	return usages, nil
}

// Services lists the service catalog.
func (e *Engine) Services(ctx context.Context) ([]model.Service, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.AllServices(ctx)
}

// Prices lists every room and catalog service with its price.
func (e *Engine) Prices(ctx context.Context, by PriceSort, dir SortDir) ([]PriceEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rooms, err := e.store.AllRooms(ctx)
	if err != nil {
		return nil, err
	}
	services, err := e.store.AllServices(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]PriceEntry, 0, len(rooms)+len(services))
	for _, r := range rooms {
		entries = append(entries, PriceEntry{ID: "R" + strconv.Itoa(r.Number), Price: r.Price})
	}
	for _, s := range services {
		entries = append(entries, PriceEntry{ID: s.ID, Price: s.Price})
	}

	asc := func(i, j int) bool {
		if by == PriceSortPrice && entries[i].Price != entries[j].Price {
			return entries[i].Price < entries[j].Price
		}
		return entries[i].ID < entries[j].ID
	}
	sort.Slice(entries, directed(asc, dir))
	return entries, nil
}

func sortRooms(rooms []model.Room, by RoomSort, dir SortDir) {
	asc := func(i, j int) bool {
		switch by {
		case RoomSortPrice:
			if rooms[i].Price != rooms[j].Price {
				return rooms[i].Price < rooms[j].Price
			}
		case RoomSortCapacity:
			if rooms[i].Capacity != rooms[j].Capacity {
				return rooms[i].Capacity < rooms[j].Capacity
			}
		case RoomSortType:
			if rooms[i].Type != rooms[j].Type {
				return rooms[i].Type < rooms[j].Type
			}
		}
		return rooms[i].Number < rooms[j].Number
	}
	sort.Slice(rooms, directed(asc, dir))
}

// directed flips an ascending less function for descending listings.
func directed(asc func(i, j int) bool, dir SortDir) func(i, j int) bool {
	if dir == Desc {
		return func(i, j int) bool { return asc(j, i) }
	}
	return asc
}

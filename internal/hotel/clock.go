package hotel

import (
	"context"
	"time"

	"github.com/jinzhu/now"

	"hotel-management-backend/internal/store"
)

// DayClock holds the hotel's operational day. The day only ever moves forward,
// by explicit Advance calls, and is persisted so restarts resume where the
// hotel left off. All mutation happens under the engine's lock.
type DayClock struct {
	store   store.Store
	current time.Time
}

// NewDayClock loads the persisted day, seeding it from wall time on first run.
func NewDayClock(ctx context.Context, s store.Store) (*DayClock, error) {
	day, ok, err := s.LoadCurrentDay(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		day = now.New(time.Now().UTC()).BeginningOfDay()
		if err := s.SaveCurrentDay(ctx, day); err != nil {
			return nil, err
		}
	}
	return &DayClock{store: s, current: day}, nil
}

// NewDayClockAt creates a clock pinned to a specific day, persisting it.
// Intended for deterministic tests.
func NewDayClockAt(ctx context.Context, s store.Store, day time.Time) (*DayClock, error) {
	if err := s.SaveCurrentDay(ctx, day); err != nil {
		return nil, err
	}
	return &DayClock{store: s, current: day}, nil
}

// Current returns the operational day.
func (c *DayClock) Current() time.Time {
	return c.current
}

// Advance moves the day forward by exactly one. The new day is persisted
// before the in-memory value changes, so a storage fault leaves the clock
// untouched.
func (c *DayClock) Advance(ctx context.Context) (time.Time, error) {
	next := c.current.AddDate(0, 0, 1)
	if err := c.store.SaveCurrentDay(ctx, next); err != nil {
		return time.Time{}, err
	}
	c.current = next
	return next, nil
}

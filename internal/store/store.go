package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-management-backend/internal/model"
)

// Typed not-found failures. Guard failures are expressed as booleans by the
// engine; these are the only lookup errors callers are expected to branch on.
var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrGuestNotFound   = errors.New("guest not found")
	ErrServiceNotFound = errors.New("service not found")
)

// Store defines the interface for all database operations. The occupancy
// engine is written purely against it; the backing can be swapped without
// touching the core.
type Store interface {
	// Transaction runs fn against a store bound to a single transaction.
	// A non-nil error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(Store) error) error

	FindRoom(ctx context.Context, number int) (*model.Room, error)
	SaveRoom(ctx context.Context, room *model.Room) error
	AllRooms(ctx context.Context) ([]model.Room, error)
	AvailableRooms(ctx context.Context) ([]model.Room, error)

	FindGuest(ctx context.Context, id string) (*model.Guest, error)
	// SaveGuest persists the guest, assigning an id on first save, and
	// returns the stored record.
	SaveGuest(ctx context.Context, guest *model.Guest) (*model.Guest, error)
	DeleteGuest(ctx context.Context, id string) error
	AllGuests(ctx context.Context) ([]model.Guest, error)
	FindGuestsByRoom(ctx context.Context, roomNumber int) ([]model.Guest, error)

	FindService(ctx context.Context, id string) (*model.Service, error)
	SaveService(ctx context.Context, svc *model.Service) (*model.Service, error)
	AllServices(ctx context.Context) ([]model.Service, error)
	AddServiceUsage(ctx context.Context, usage *model.ServiceUsage) error
	ServiceUsagesOfGuest(ctx context.Context, guestID string) ([]model.ServiceUsage, error)
	// ReplaceServiceUsages swaps a guest's recorded usages for the given set.
	ReplaceServiceUsages(ctx context.Context, guestID string, usages []model.ServiceUsage) error
	DeleteServiceUsagesOfGuest(ctx context.Context, guestID string) error

	AppendHistory(ctx context.Context, entries []model.GuestHistoryEntry) error
	// NextHistoryGroupID returns one more than the highest group id recorded
	// for the room, starting at 1.
	NextHistoryGroupID(ctx context.Context, roomNumber int) (int, error)
	// HistoryGroups returns up to maxGroups most recent guest groups for the
	// room, most recent first.
	HistoryGroups(ctx context.Context, roomNumber, maxGroups int) ([][]model.GuestHistoryEntry, error)

	// LoadCurrentDay reports the persisted operational day, if any.
	LoadCurrentDay(ctx context.Context) (time.Time, bool, error)
	SaveCurrentDay(ctx context.Context, day time.Time) error

	// DB exposes the underlying gorm handle for collaborator layers
	// (subscription handlers, notification worker).
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) FindRoom(ctx context.Context, number int) (*model.Room, error) {
	var room model.Room
	err := s.db.WithContext(ctx).First(&room, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrRoomNotFound, number)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load room %d: %w", number, err)
	}
	return &room, nil
}

func (s *gormStore) SaveRoom(ctx context.Context, room *model.Room) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(room).Error; err != nil {
		return fmt.Errorf("failed to save room %d: %w", room.Number, err)
	}
	return nil
}

func (s *gormStore) AllRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).Order("number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *gormStore) AvailableRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := s.db.WithContext(ctx).
		Where("status = ?", model.StatusAvailable).
		Order("number").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list available rooms: %w", err)
	}
	return rooms, nil
}

func (s *gormStore) FindGuest(ctx context.Context, id string) (*model.Guest, error) {
	var guest model.Guest
	err := s.db.WithContext(ctx).First(&guest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrGuestNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load guest %s: %w", id, err)
	}
	return &guest, nil
}

func (s *gormStore) SaveGuest(ctx context.Context, guest *model.Guest) (*model.Guest, error) {
	if guest.ID == "" {
		guest.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(guest).Error; err != nil {
		return nil, fmt.Errorf("failed to save guest %s: %w", guest.ID, err)
	}
	return guest, nil
}

func (s *gormStore) DeleteGuest(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&model.Guest{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete guest %s: %w", id, err)
	}
	return nil
}

func (s *gormStore) AllGuests(ctx context.Context) ([]model.Guest, error) {
	var guests []model.Guest
	if err := s.db.WithContext(ctx).Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}

func (s *gormStore) FindGuestsByRoom(ctx context.Context, roomNumber int) ([]model.Guest, error) {
	var guests []model.Guest
	err := s.db.WithContext(ctx).
		Where("room_number = ?", roomNumber).
		Order("created_at, id").
		Find(&guests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list guests of room %d: %w", roomNumber, err)
	}
	return guests, nil
}

func (s *gormStore) FindService(ctx context.Context, id string) (*model.Service, error) {
	var svc model.Service
	err := s.db.WithContext(ctx).First(&svc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load service %s: %w", id, err)
	}
	return &svc, nil
}

func (s *gormStore) SaveService(ctx context.Context, svc *model.Service) (*model.Service, error) {
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Save(svc).Error; err != nil {
		return nil, fmt.Errorf("failed to save service %s: %w", svc.ID, err)
	}
	return svc, nil
}

func (s *gormStore) AllServices(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	if err := s.db.WithContext(ctx).Order("id").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *gormStore) AddServiceUsage(ctx context.Context, usage *model.ServiceUsage) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(usage).Error; err != nil {
		return fmt.Errorf("failed to record service usage for guest %s: %w", usage.GuestID, err)
	}
	return nil
}

func (s *gormStore) ServiceUsagesOfGuest(ctx context.Context, guestID string) ([]model.ServiceUsage, error) {
	var usages []model.ServiceUsage
	err := s.db.WithContext(ctx).
		Preload("Service").
		Where("guest_id = ?", guestID).
		Order("used_on, id").
		Find(&usages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list service usages of guest %s: %w", guestID, err)
	}
	return usages, nil
}

func (s *gormStore) ReplaceServiceUsages(ctx context.Context, guestID string, usages []model.ServiceUsage) error {
	if err := s.DeleteServiceUsagesOfGuest(ctx, guestID); err != nil {
		return err
	}
	if len(usages) == 0 {
		return nil
	}
	for i := range usages {
		usages[i].ID = 0
		usages[i].GuestID = guestID
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&usages).Error; err != nil {
		return fmt.Errorf("failed to record service usages of guest %s: %w", guestID, err)
	}
	return nil
}

func (s *gormStore) DeleteServiceUsagesOfGuest(ctx context.Context, guestID string) error {
	if err := s.db.WithContext(ctx).Delete(&model.ServiceUsage{}, "guest_id = ?", guestID).Error; err != nil {
		return fmt.Errorf("failed to delete service usages of guest %s: %w", guestID, err)
	}
	return nil
}

func (s *gormStore) AppendHistory(ctx context.Context, entries []model.GuestHistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&entries).Error; err != nil {
		return fmt.Errorf("failed to append guest history: %w", err)
	}
	return nil
}

func (s *gormStore) NextHistoryGroupID(ctx context.Context, roomNumber int) (int, error) {
	var current int
	err := s.db.WithContext(ctx).
		Model(&model.GuestHistoryEntry{}).
		Where("room_number = ?", roomNumber).
		Select("COALESCE(MAX(group_id), 0)").
		Scan(&current).Error
	if err != nil {
		return 0, fmt.Errorf("failed to allocate history group id for room %d: %w", roomNumber, err)
	}
	return current + 1, nil
}

func (s *gormStore) HistoryGroups(ctx context.Context, roomNumber, maxGroups int) ([][]model.GuestHistoryEntry, error) {
	var groupIDs []int
	err := s.db.WithContext(ctx).
		Model(&model.GuestHistoryEntry{}).
		Where("room_number = ?", roomNumber).
		Distinct("group_id").
		Order("group_id DESC").
		Limit(maxGroups).
		Pluck("group_id", &groupIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list history groups of room %d: %w", roomNumber, err)
	}
	if len(groupIDs) == 0 {
		return nil, nil
	}

	var entries []model.GuestHistoryEntry
	err = s.db.WithContext(ctx).
		Where("room_number = ? AND group_id IN ?", roomNumber, groupIDs).
		Order("group_id DESC, id").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load history entries of room %d: %w", roomNumber, err)
	}

	groups := make([][]model.GuestHistoryEntry, 0, len(groupIDs))
	byGroup := make(map[int][]model.GuestHistoryEntry, len(groupIDs))
	for _, e := range entries {
		byGroup[e.GroupID] = append(byGroup[e.GroupID], e)
	}
	for _, id := range groupIDs {
		groups = append(groups, byGroup[id])
	}
	return groups, nil
}

func (s *gormStore) LoadCurrentDay(ctx context.Context) (time.Time, bool, error) {
	var state model.DayState
	err := s.db.WithContext(ctx).First(&state, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to load day state: %w", err)
	}
	return state.CurrentDay, true, nil
}

func (s *gormStore) SaveCurrentDay(ctx context.Context, day time.Time) error {
	state := model.DayState{ID: 1, CurrentDay: day}
	if err := s.db.WithContext(ctx).Save(&state).Error; err != nil {
		return fmt.Errorf("failed to save day state: %w", err)
	}
	return nil
}

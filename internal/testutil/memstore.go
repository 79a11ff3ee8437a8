/*
Package testutil provides test doubles shared by the service and handler tests.

MemStore is an in-memory poker.Store with the same observable semantics as
the PostgreSQL implementation: idempotent membership inserts, upserted
estimates, and join-code uniqueness.
*/
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/Antriksh29071989/scrumpoker/internal/app/poker"
)

// MemStore is an in-memory poker.Store for tests.
type MemStore struct {
	mu sync.Mutex

	users     map[string]poker.Profile
	rooms     map[string]poker.Room
	members   map[string][]string
	estimates map[string]map[string]*float64

	// ForcedErr, when set, is returned by every method. Simulates a store outage.
	ForcedErr error

	// TakenCodes marks join codes as occupied without a backing room,
	// forcing collisions during code allocation.
	TakenCodes map[string]bool

	// AllCodesTaken makes every join-code candidate look occupied.
	AllCodesTaken bool
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		users:      make(map[string]poker.Profile),
		rooms:      make(map[string]poker.Room),
		members:    make(map[string][]string),
		estimates:  make(map[string]map[string]*float64),
		TakenCodes: make(map[string]bool),
	}
}

// PutProfile seeds a user profile.
func (m *MemStore) PutProfile(profile poker.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[profile.ID] = profile
}

// PutRoom seeds a room directly, bypassing code allocation.
func (m *MemStore) PutRoom(room poker.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[room.ID] = room
}

// Room returns the stored room and whether it exists.
func (m *MemStore) Room(roomID string) (poker.Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[roomID]
	return room, ok
}

// PutNullEstimate seeds an estimate row with a null value. The service never
// writes such rows itself but must tolerate them on reveal.
func (m *MemStore) PutNullEstimate(roomID, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.estimates[roomID] == nil {
		m.estimates[roomID] = make(map[string]*float64)
	}
	m.estimates[roomID][userID] = nil
}

// EstimateCount reports the number of live estimate rows for the room.
func (m *MemStore) EstimateCount(roomID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.estimates[roomID])
}

func (m *MemStore) UserExists(_ context.Context, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return false, m.ForcedErr
	}
	_, ok := m.users[userID]
	return ok, nil
}

func (m *MemStore) CreateUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	if _, ok := m.users[userID]; !ok {
		m.users[userID] = poker.Profile{ID: userID}
	}
	return nil
}

func (m *MemStore) ProfilesByIDs(_ context.Context, userIDs []string) (map[string]poker.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	profiles := make(map[string]poker.Profile)
	for _, id := range userIDs {
		if profile, ok := m.users[id]; ok {
			profiles[id] = profile
		}
	}
	return profiles, nil
}

func (m *MemStore) JoinCodeTaken(_ context.Context, joinCode string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return false, m.ForcedErr
	}
	if m.AllCodesTaken || m.TakenCodes[joinCode] {
		return true, nil
	}
	for _, room := range m.rooms {
		if room.JoinCode == joinCode {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemStore) CreateRoom(_ context.Context, room poker.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	m.rooms[room.ID] = room
	return nil
}

func (m *MemStore) RoomByJoinCode(_ context.Context, joinCode string) (poker.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return poker.Room{}, m.ForcedErr
	}
	for _, room := range m.rooms {
		if room.JoinCode == joinCode {
			return room, nil
		}
	}
	return poker.Room{}, poker.ErrNotFound
}

func (m *MemStore) RoomByID(_ context.Context, roomID string) (poker.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return poker.Room{}, m.ForcedErr
	}
	room, ok := m.rooms[roomID]
	if !ok {
		return poker.Room{}, poker.ErrNotFound
	}
	return room, nil
}

func (m *MemStore) MarkRevealed(_ context.Context, roomID string, average float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	room, ok := m.rooms[roomID]
	if !ok {
		return poker.ErrNotFound
	}
	room.Revealed = true
	room.Average = &average
	m.rooms[roomID] = room
	return nil
}

func (m *MemStore) IsMember(_ context.Context, roomID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return false, m.ForcedErr
	}
	for _, id := range m.members[roomID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemStore) MemberCount(_ context.Context, roomID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return 0, m.ForcedErr
	}
	return len(m.members[roomID]), nil
}

func (m *MemStore) AddMember(_ context.Context, _, roomID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	for _, id := range m.members[roomID] {
		if id == userID {
			return nil
		}
	}
	m.members[roomID] = append(m.members[roomID], userID)
	return nil
}

func (m *MemStore) MemberUserIDs(_ context.Context, roomID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	return append([]string(nil), m.members[roomID]...), nil
}

func (m *MemStore) UpsertEstimate(_ context.Context, _, roomID, userID string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	if m.estimates[roomID] == nil {
		m.estimates[roomID] = make(map[string]*float64)
	}
	v := value
	m.estimates[roomID][userID] = &v
	return nil
}

func (m *MemStore) EstimatesByRoom(_ context.Context, roomID string) ([]poker.Estimate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	userIDs := make([]string, 0, len(m.estimates[roomID]))
	for userID := range m.estimates[roomID] {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	estimates := make([]poker.Estimate, 0, len(userIDs))
	for _, userID := range userIDs {
		estimates = append(estimates, poker.Estimate{UserID: userID, Value: m.estimates[roomID][userID]})
	}
	return estimates, nil
}

func (m *MemStore) ClearRound(_ context.Context, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	delete(m.estimates, roomID)
	room, ok := m.rooms[roomID]
	if !ok {
		return poker.ErrNotFound
	}
	room.Revealed = false
	room.Average = nil
	m.rooms[roomID] = room
	return nil
}

package poker

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store implementations when a row does not exist.
var ErrNotFound = errors.New("no such resource")

// Store is the persistence boundary of the estimation workflow. The backing
// store is treated as a table-oriented service queried by simple predicates;
// cross-row composition (members against profiles, estimates against
// profiles) happens in the service.
//
// Uniqueness of join codes and of the (room, user) pairs for membership and
// estimates is ultimately guarded by store-level unique constraints. The
// service's own checks are optimistic pre-checks, not the real guard.
type Store interface {
	// Users. CreateUser inserts a minimal profile row; callers may ignore
	// its failure since the profile is non-essential.
	UserExists(ctx context.Context, userID string) (bool, error)
	CreateUser(ctx context.Context, userID string) error
	ProfilesByIDs(ctx context.Context, userIDs []string) (map[string]Profile, error)

	// Rooms.
	JoinCodeTaken(ctx context.Context, joinCode string) (bool, error)
	CreateRoom(ctx context.Context, room Room) error
	RoomByJoinCode(ctx context.Context, joinCode string) (Room, error)
	RoomByID(ctx context.Context, roomID string) (Room, error)
	MarkRevealed(ctx context.Context, roomID string, average float64) error

	// Membership. AddMember is idempotent: inserting an existing
	// (room, user) pair is a no-op.
	IsMember(ctx context.Context, roomID, userID string) (bool, error)
	MemberCount(ctx context.Context, roomID string) (int, error)
	AddMember(ctx context.Context, id, roomID, userID string) error
	MemberUserIDs(ctx context.Context, roomID string) ([]string, error)

	// Estimates. UpsertEstimate overwrites the existing value for the
	// (room, user) pair instead of appending a second row.
	UpsertEstimate(ctx context.Context, id, roomID, userID string, value float64) error
	EstimatesByRoom(ctx context.Context, roomID string) ([]Estimate, error)
	ClearRound(ctx context.Context, roomID string) error
}

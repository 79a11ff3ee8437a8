/*
Package store implements the poker.Store interface on PostgreSQL.

All queries go through a pgx connection pool. Missing rows map to
poker.ErrNotFound; unique-constraint races are absorbed where the operation
is idempotent and surfaced as descriptive errors where it is not.
*/
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Antriksh29071989/scrumpoker/internal/app/db"
	"github.com/Antriksh29071989/scrumpoker/internal/app/poker"
)

// Postgres is the PostgreSQL-backed poker.Store.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps the given connection pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) UserExists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := p.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`,
		userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query user: %w", err)
	}
	return exists, nil
}

func (p *Postgres) CreateUser(ctx context.Context, userID string) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert minimal user: %w", err)
	}
	return nil
}

func (p *Postgres) ProfilesByIDs(ctx context.Context, userIDs []string) (map[string]poker.Profile, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, username, avatar_url FROM users WHERE id = ANY($1)`,
		userIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user profiles: %w", err)
	}
	defer rows.Close()

	profiles := make(map[string]poker.Profile, len(userIDs))
	for rows.Next() {
		var profile poker.Profile
		if err := rows.Scan(&profile.ID, &profile.Username, &profile.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan user profile: %w", err)
		}
		profiles[profile.ID] = profile
	}

	return profiles, rows.Err()
}

func (p *Postgres) JoinCodeTaken(ctx context.Context, joinCode string) (bool, error) {
	var taken bool
	err := p.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM rooms WHERE join_code = $1)`,
		joinCode,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check join code: %w", err)
	}
	return taken, nil
}

func (p *Postgres) CreateRoom(ctx context.Context, room poker.Room) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO rooms (id, join_code, created_by, estimation_unit, revealed, average, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		room.ID, room.JoinCode, room.CreatedBy, room.Unit, room.Revealed, room.Average, room.Active,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			// Two concurrent creates picked the same code between the
			// optimistic check and the insert. The constraint, not the
			// pre-check, is what keeps codes unique.
			return fmt.Errorf("join code %q collided on insert: %w", room.JoinCode, err)
		}
		return fmt.Errorf("failed to insert room: %w", err)
	}
	return nil
}

// roomColumns is the select list shared by the room lookup queries.
const roomColumns = `id, join_code, created_by, estimation_unit, revealed, average, is_active`

func scanRoom(row pgx.Row) (poker.Room, error) {
	var room poker.Room
	err := row.Scan(
		&room.ID, &room.JoinCode, &room.CreatedBy, &room.Unit,
		&room.Revealed, &room.Average, &room.Active,
	)
	return room, err
}

func (p *Postgres) RoomByJoinCode(ctx context.Context, joinCode string) (poker.Room, error) {
	// Duplicate join codes cannot happen under the unique index; if the
	// store ever returns several rows anyway, the oldest room wins
	// deterministically instead of failing the lookup.
	room, err := scanRoom(p.pool.QueryRow(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE join_code = $1 ORDER BY created_at LIMIT 1`,
		joinCode,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return poker.Room{}, poker.ErrNotFound
		}
		return poker.Room{}, fmt.Errorf("failed to query room by join code: %w", err)
	}
	return room, nil
}

func (p *Postgres) RoomByID(ctx context.Context, roomID string) (poker.Room, error) {
	// Room ids are UUIDs; a malformed id cannot match any row, so treat it
	// as not found instead of letting the cast error surface as a store
	// failure.
	if _, err := uuid.Parse(roomID); err != nil {
		return poker.Room{}, poker.ErrNotFound
	}

	room, err := scanRoom(p.pool.QueryRow(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = $1`,
		roomID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return poker.Room{}, poker.ErrNotFound
		}
		return poker.Room{}, fmt.Errorf("failed to query room by id: %w", err)
	}
	return room, nil
}

func (p *Postgres) MarkRevealed(ctx context.Context, roomID string, average float64) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE rooms SET revealed = TRUE, average = $2 WHERE id = $1`,
		roomID, average,
	)
	if err != nil {
		return fmt.Errorf("failed to mark room revealed: %w", err)
	}
	return nil
}

func (p *Postgres) IsMember(ctx context.Context, roomID, userID string) (bool, error) {
	var isMember bool
	err := p.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM room_users WHERE room_id = $1 AND user_id = $2)`,
		roomID, userID,
	).Scan(&isMember)
	if err != nil {
		return false, fmt.Errorf("failed to verify membership: %w", err)
	}
	return isMember, nil
}

func (p *Postgres) MemberCount(ctx context.Context, roomID string) (int, error) {
	var count int
	err := p.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM room_users WHERE room_id = $1`,
		roomID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

func (p *Postgres) AddMember(ctx context.Context, id, roomID, userID string) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO room_users (id, room_id, user_id) VALUES ($1, $2, $3)
		 ON CONFLICT (room_id, user_id) DO NOTHING`,
		id, roomID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert membership: %w", err)
	}
	return nil
}

func (p *Postgres) MemberUserIDs(ctx context.Context, roomID string) ([]string, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT user_id FROM room_users WHERE room_id = $1 ORDER BY joined_at, id`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room members: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		userIDs = append(userIDs, userID)
	}

	return userIDs, rows.Err()
}

func (p *Postgres) UpsertEstimate(ctx context.Context, id, roomID, userID string, value float64) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO estimates (id, room_id, user_id, value) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (room_id, user_id) DO UPDATE SET value = EXCLUDED.value`,
		id, roomID, userID, value,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert estimate: %w", err)
	}
	return nil
}

func (p *Postgres) EstimatesByRoom(ctx context.Context, roomID string) ([]poker.Estimate, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT user_id, value FROM estimates WHERE room_id = $1`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch estimates: %w", err)
	}
	defer rows.Close()

	var estimates []poker.Estimate
	for rows.Next() {
		var estimate poker.Estimate
		if err := rows.Scan(&estimate.UserID, &estimate.Value); err != nil {
			return nil, fmt.Errorf("failed to scan estimate row: %w", err)
		}
		estimates = append(estimates, estimate)
	}

	return estimates, rows.Err()
}

func (p *Postgres) ClearRound(ctx context.Context, roomID string) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reset transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM estimates WHERE room_id = $1`, roomID); err != nil {
		return fmt.Errorf("failed to delete estimates: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE rooms SET revealed = FALSE, average = NULL WHERE id = $1`,
		roomID,
	); err != nil {
		return fmt.Errorf("failed to reset room flags: %w", err)
	}

	return tx.Commit(ctx)
}

/*
Package poker contains the core estimation workflow.

This file defines the Service struct, which implements room creation and
lookup, joining with the capacity cap, estimate submission, and the
reveal/reset round cycle on top of a Store.
*/
package poker

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Antriksh29071989/scrumpoker/internal/pkg/errs"
	"github.com/Antriksh29071989/scrumpoker/internal/pkg/logx"
	"github.com/Antriksh29071989/scrumpoker/internal/pkg/randx"
)

// Service implements the estimation workflow against a Store.
type Service struct {
	store Store

	// structured logger with Service context.
	logger zerolog.Logger
}

// NewService constructs a Service on top of the given store.
func NewService(store Store) *Service {
	serviceLogger := logx.Logger().With().Str("component", "poker").Logger()

	return &Service{
		store:  store,
		logger: serviceLogger,
	}
}

// CreateRoom creates an active, unrevealed room with a fresh join code and
// enrolls the creator as its first member.
func (s *Service) CreateRoom(ctx context.Context, creatorID, unit string) (Room, *errs.CustomError) {
	s.ensureProfile(ctx, creatorID)

	joinCode, customErr := s.allocateJoinCode(ctx)
	if customErr != nil {
		return Room{}, customErr
	}

	room := Room{
		ID:        randx.NewID(),
		JoinCode:  joinCode,
		CreatedBy: creatorID,
		Unit:      NormalizeUnit(unit),
		Revealed:  false,
		Average:   nil,
		Active:    true,
	}

	if err := s.store.CreateRoom(ctx, room); err != nil {
		s.logger.Error().Err(err).Str("join_code", joinCode).Msg("Failed to insert room.")
		return Room{}, errs.NewError(errs.ErrInternal, err)
	}

	// The creator cannot already be a member of a room that did not exist a
	// moment ago, but AddMember is idempotent anyway, so a racing duplicate
	// insert is harmless.
	if err := s.store.AddMember(ctx, randx.NewID(), room.ID, creatorID); err != nil {
		// Known consistency gap: the room insert is not rolled back, leaving
		// an orphaned room nobody can act on. See DESIGN.md.
		s.logger.Error().Err(err).Str("room_id", room.ID).Msg("Failed to enroll room creator.")
		return Room{}, errs.NewError(errs.ErrInternal, err)
	}

	s.logger.Info().
		Str("room_id", room.ID).
		Str("join_code", joinCode).
		Str("estimation_unit", room.Unit).
		Msg("Room created.")

	return room, nil
}

// allocateJoinCode generates join-code candidates until one is free in the
// registry, giving up after a bounded number of attempts. The uniqueness
// check here is optimistic; the store's unique constraint is the real guard.
func (s *Service) allocateJoinCode(ctx context.Context) (string, *errs.CustomError) {
	for attempt := 0; attempt < joinCodeAttempts; attempt++ {
		candidate, err := randx.JoinCode()
		if err != nil {
			return "", errs.NewError(errs.ErrInternal, err)
		}

		taken, err := s.store.JoinCodeTaken(ctx, candidate)
		if err != nil {
			return "", errs.NewError(errs.ErrInternal, err)
		}

		if !taken {
			return candidate, nil
		}
	}

	s.logger.Warn().Int("attempts", joinCodeAttempts).Msg("Join code attempt budget exhausted.")
	return "", errs.NewError(errs.ErrJoinCodeExhausted)
}

// ensureProfile lazily creates a minimal user row when the resolved id has
// no profile yet (normally the identity provider's trigger creates it).
// Failure is deliberately ignored: the profile is non-essential.
func (s *Service) ensureProfile(ctx context.Context, userID string) {
	exists, err := s.store.UserExists(ctx, userID)
	if err != nil || exists {
		return
	}

	if err := s.store.CreateUser(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Minimal profile insert failed; continuing without it.")
	}
}

// JoinRoom adds the user to the room behind the join code and returns the
// room together with its member list. Joining is idempotent for existing
// members; new joins are rejected once the room holds MaxRoomMembers users.
func (s *Service) JoinRoom(ctx context.Context, joinCode, userID string) (Room, []Member, *errs.CustomError) {
	room, customErr := s.LookupRoom(ctx, joinCode)
	if customErr != nil {
		return Room{}, nil, customErr
	}

	if !room.Active {
		return Room{}, nil, errs.NewError(errs.ErrRoomInactive)
	}

	isMember, err := s.store.IsMember(ctx, room.ID, userID)
	if err != nil {
		return Room{}, nil, errs.NewError(errs.ErrInternal, err)
	}

	if !isMember {
		count, err := s.store.MemberCount(ctx, room.ID)
		if err != nil {
			return Room{}, nil, errs.NewError(errs.ErrInternal, err)
		}

		if count >= MaxRoomMembers {
			return Room{}, nil, errs.NewError(errs.ErrRoomIsFull)
		}

		if err := s.store.AddMember(ctx, randx.NewID(), room.ID, userID); err != nil {
			return Room{}, nil, errs.NewError(errs.ErrInternal, err)
		}

		s.logger.Info().Str("room_id", room.ID).Str("user_id", userID).Msg("User joined room.")
	}

	members, customErr := s.ListMembers(ctx, room.ID)
	if customErr != nil {
		return Room{}, nil, customErr
	}

	return room, members, nil
}

// LookupRoom finds a room by join code. Matching is case-insensitive and
// ignores surrounding whitespace.
func (s *Service) LookupRoom(ctx context.Context, joinCode string) (Room, *errs.CustomError) {
	room, err := s.store.RoomByJoinCode(ctx, randx.NormalizeJoinCode(joinCode))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Room{}, errs.NewError(errs.ErrRoomNotFound)
		}
		return Room{}, errs.NewError(errs.ErrInternal, err)
	}

	return room, nil
}

// ListMembers resolves the room's membership in join order against the user
// profiles: fetch the member ids, batch-fetch their profiles, merge by key.
// Members without a profile row keep null name and avatar.
func (s *Service) ListMembers(ctx context.Context, roomID string) ([]Member, *errs.CustomError) {
	userIDs, err := s.store.MemberUserIDs(ctx, roomID)
	if err != nil {
		return nil, errs.NewError(errs.ErrInternal, err)
	}

	members := make([]Member, 0, len(userIDs))
	if len(userIDs) == 0 {
		return members, nil
	}

	profiles, err := s.store.ProfilesByIDs(ctx, userIDs)
	if err != nil {
		return nil, errs.NewError(errs.ErrInternal, err)
	}

	for _, id := range userIDs {
		member := Member{UserID: id}
		if profile, ok := profiles[id]; ok {
			member.Username = profile.Username
			member.AvatarURL = profile.AvatarURL
		}
		members = append(members, member)
	}

	return members, nil
}

// ensureMember verifies that the user has joined the room. Every
// member-only action (submit, reveal, reset) goes through this guard; any
// member may reveal or reset, not just the creator.
func (s *Service) ensureMember(ctx context.Context, roomID, userID string) *errs.CustomError {
	isMember, err := s.store.IsMember(ctx, roomID, userID)
	if err != nil {
		return errs.NewError(errs.ErrInternal, err)
	}

	if !isMember {
		return errs.NewError(errs.ErrNotRoomMember)
	}

	return nil
}

// requireRoom loads the room by id, mapping a missing row to RoomNotFound.
func (s *Service) requireRoom(ctx context.Context, roomID string) (Room, *errs.CustomError) {
	room, err := s.store.RoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Room{}, errs.NewError(errs.ErrRoomNotFound)
		}
		return Room{}, errs.NewError(errs.ErrInternal, err)
	}

	return room, nil
}

// SubmitEstimate records the user's value for the current round, overwriting
// any earlier submission. Values are stored as given; fractional and
// negative input is accepted since units like days are legitimately
// fractional.
func (s *Service) SubmitEstimate(ctx context.Context, roomID, userID string, value float64) *errs.CustomError {
	room, customErr := s.requireRoom(ctx, roomID)
	if customErr != nil {
		return customErr
	}

	if customErr := s.ensureMember(ctx, room.ID, userID); customErr != nil {
		return customErr
	}

	if err := s.store.UpsertEstimate(ctx, randx.NewID(), room.ID, userID, value); err != nil {
		return errs.NewError(errs.ErrInternal, err)
	}

	return nil
}

// Reveal closes the round: it collects every submitted estimate with the
// submitter's display name, computes the arithmetic mean over non-null
// values, persists the revealed flag and average on the room, and returns
// the result list with the average. A round without estimates cannot be
// revealed.
func (s *Service) Reveal(ctx context.Context, roomID, userID string) ([]RevealedEstimate, float64, *errs.CustomError) {
	room, customErr := s.requireRoom(ctx, roomID)
	if customErr != nil {
		return nil, 0, customErr
	}

	if customErr := s.ensureMember(ctx, room.ID, userID); customErr != nil {
		return nil, 0, customErr
	}

	estimates, err := s.store.EstimatesByRoom(ctx, room.ID)
	if err != nil {
		return nil, 0, errs.NewError(errs.ErrInternal, err)
	}

	if len(estimates) == 0 {
		return nil, 0, errs.NewError(errs.ErrNoEstimates)
	}

	userIDs := make([]string, 0, len(estimates))
	for _, estimate := range estimates {
		userIDs = append(userIDs, estimate.UserID)
	}

	profiles, err := s.store.ProfilesByIDs(ctx, userIDs)
	if err != nil {
		return nil, 0, errs.NewError(errs.ErrInternal, err)
	}

	results := make([]RevealedEstimate, 0, len(estimates))
	var total float64
	var counted int

	for _, estimate := range estimates {
		var username *string
		if profile, ok := profiles[estimate.UserID]; ok {
			username = profile.Username
		}

		results = append(results, RevealedEstimate{
			User:     username,
			Estimate: estimate.Value,
		})

		if estimate.Value != nil {
			total += *estimate.Value
			counted++
		}
	}

	// Null-only rounds should not happen given Submit's contract, but the
	// ledger tolerates them with an average of zero.
	average := 0.0
	if counted > 0 {
		average = total / float64(counted)
	}

	if err := s.store.MarkRevealed(ctx, room.ID, average); err != nil {
		return nil, 0, errs.NewError(errs.ErrInternal, err)
	}

	s.logger.Info().
		Str("room_id", room.ID).
		Int("estimates", len(results)).
		Float64("average", average).
		Msg("Round revealed.")

	return results, average, nil
}

// Reset clears every estimate for the room and returns it to the collecting
// state (unrevealed, null average) for a fresh round.
func (s *Service) Reset(ctx context.Context, roomID, userID string) *errs.CustomError {
	room, customErr := s.requireRoom(ctx, roomID)
	if customErr != nil {
		return customErr
	}

	if customErr := s.ensureMember(ctx, room.ID, userID); customErr != nil {
		return customErr
	}

	if err := s.store.ClearRound(ctx, room.ID); err != nil {
		return errs.NewError(errs.ErrInternal, err)
	}

	s.logger.Info().Str("room_id", room.ID).Msg("Round reset.")
	return nil
}

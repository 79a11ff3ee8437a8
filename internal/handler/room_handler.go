/*
Package handler provides HTTP handler functions for room creation and joining.
*/
package handler

import (
	"net/http"

	"github.com/Antriksh29071989/scrumpoker/internal/pkg/errs"
	"github.com/Antriksh29071989/scrumpoker/internal/pkg/req"
	"github.com/Antriksh29071989/scrumpoker/internal/pkg/resp"
)

type CreateRoomInput struct {
	// UserID is the deprecated body-supplied identity, honored only when the
	// legacy fallback is enabled and no bearer token is present.
	UserID string `json:"user_id,omitempty"`

	// EstimationUnit is "points" or "days"; anything else becomes "points".
	EstimationUnit string `json:"estimation_unit,omitempty"`
}

// HandleCreateRoom creates a room and enrolls the caller as its first member.
func HandleCreateRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input CreateRoomInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		userID, customErr := deps.Auth.Resolve(r, input.UserID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		room, customErr := deps.Poker.CreateRoom(r.Context(), userID, input.EstimationUnit)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"room_id":   room.ID,
			"join_code": room.JoinCode,
		})
	}
}

type JoinRoomInput struct {
	JoinCode string `json:"join_code"`
	UserID   string `json:"user_id,omitempty"`
}

// HandleJoinRoom adds the caller to the room behind the join code and
// returns the current member list.
func HandleJoinRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input JoinRoomInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		userID, customErr := deps.Auth.Resolve(r, input.UserID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.JoinCode == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		room, members, customErr := deps.Poker.JoinRoom(r.Context(), input.JoinCode, userID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"room_id":   room.ID,
			"join_code": room.JoinCode,
			"members":   members,
		})
	}
}

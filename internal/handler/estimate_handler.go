/*
Package handler provides HTTP handler functions for the estimation round:
submitting values, revealing the result, and resetting for a new round.
*/
package handler

import (
	"net/http"

	"github.com/Antriksh29071989/scrumpoker/internal/pkg/errs"
	"github.com/Antriksh29071989/scrumpoker/internal/pkg/req"
	"github.com/Antriksh29071989/scrumpoker/internal/pkg/resp"
)

type SubmitEstimateInput struct {
	RoomID   string   `json:"room_id"`
	Estimate *float64 `json:"estimate"`
	UserID   string   `json:"user_id,omitempty"`
}

// HandleSubmitEstimate records the caller's estimate for the current round.
func HandleSubmitEstimate(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SubmitEstimateInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		userID, customErr := deps.Auth.Resolve(r, input.UserID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.RoomID == "" || input.Estimate == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if customErr := deps.Poker.SubmitEstimate(r.Context(), input.RoomID, userID, *input.Estimate); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondMessage(w, r, "Estimate submitted successfully")
	}
}

type RevealInput struct {
	RoomID string `json:"room_id"`
	UserID string `json:"user_id,omitempty"`
}

// HandleReveal closes the round and returns every estimate with the average.
func HandleReveal(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RevealInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		userID, customErr := deps.Auth.Resolve(r, input.UserID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.RoomID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		estimates, average, customErr := deps.Poker.Reveal(r.Context(), input.RoomID, userID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"estimates": estimates,
			"average":   average,
		})
	}
}

type ResetInput struct {
	RoomID string `json:"room_id"`
	UserID string `json:"user_id,omitempty"`
}

// HandleReset clears all estimates so a new round can start.
func HandleReset(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input ResetInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		userID, customErr := deps.Auth.Resolve(r, input.UserID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.RoomID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if customErr := deps.Poker.Reset(r.Context(), input.RoomID, userID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondMessage(w, r, "Room reset successfully")
	}
}

package errs_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Antriksh29071989/scrumpoker/internal/pkg/errs"
)

func TestNewError(t *testing.T) {
	t.Run("known code carries its status and message", func(t *testing.T) {
		customErr := errs.NewError(errs.ErrRoomNotFound)

		assert.Equal(t, errs.ErrRoomNotFound, customErr.Code)
		assert.Equal(t, http.StatusNotFound, customErr.Status)
		assert.Equal(t, "Room not found.", customErr.Message)
	})

	t.Run("unknown code degrades to internal", func(t *testing.T) {
		customErr := errs.NewError(99999)

		assert.Equal(t, errs.ErrInternal, customErr.Code)
		assert.Equal(t, http.StatusInternalServerError, customErr.Status)
	})

	t.Run("internal error accepts an underlying cause", func(t *testing.T) {
		customErr := errs.NewError(errs.ErrInternal, errors.New("connection refused"))

		assert.Equal(t, errs.ErrInternal, customErr.Code)
		// The cause is logged, never leaked to the client.
		assert.Equal(t, "Something went wrong. Please try again.", customErr.Message)
	})

	t.Run("implements the error interface", func(t *testing.T) {
		var err error = errs.NewError(errs.ErrUnauthorized)
		assert.Contains(t, err.Error(), "3001")
	})
}

func TestTaxonomyStatuses(t *testing.T) {
	tests := []struct {
		code   int
		status int
	}{
		{errs.ErrUnauthorized, http.StatusUnauthorized},
		{errs.ErrAuthUnavailable, http.StatusServiceUnavailable},
		{errs.ErrRoomInactive, http.StatusForbidden},
		{errs.ErrRoomIsFull, http.StatusForbidden},
		{errs.ErrNotRoomMember, http.StatusForbidden},
		{errs.ErrRoomNotFound, http.StatusNotFound},
		{errs.ErrNoEstimates, http.StatusNotFound},
		{errs.ErrJoinCodeExhausted, http.StatusServiceUnavailable},
		{errs.ErrRateLimitExceeded, http.StatusTooManyRequests},
		{errs.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, errs.NewError(tt.code).Status, "code %d", tt.code)
	}
}

package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Antriksh29071989/scrumpoker/internal/app/identity"
	"github.com/Antriksh29071989/scrumpoker/internal/app/poker"
	"github.com/Antriksh29071989/scrumpoker/internal/configs"
	"github.com/Antriksh29071989/scrumpoker/internal/handler"
	"github.com/Antriksh29071989/scrumpoker/internal/pkg/errs"
	"github.com/Antriksh29071989/scrumpoker/internal/testutil"
)

// stubVerifier resolves preconfigured tokens and rejects everything else.
type stubVerifier struct {
	ids map[string]string
}

func (s stubVerifier) Verify(_ context.Context, token string) (string, *errs.CustomError) {
	if id, ok := s.ids[token]; ok {
		return id, nil
	}
	return "", errs.NewError(errs.ErrUnauthorized)
}

type envelope struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func setup(t *testing.T) (http.Handler, *testutil.MemStore, *poker.Service) {
	t.Helper()

	store := testutil.NewMemStore()
	service := poker.NewService(store)

	deps := &handler.AppDeps{
		Config: &configs.AppConfig{Environment: "development", AllowedOrigins: []string{}},
		Poker:  service,
		Auth: identity.NewAuthenticator(
			stubVerifier{ids: map[string]string{"alice-token": "alice"}},
			true,
		),
	}

	return handler.Router(deps), store, service
}

func doJSON(t *testing.T, router http.Handler, path, token string, body any) (int, envelope) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestHealthz(t *testing.T) {
	router, _, _ := setup(t)

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, true, env.Data["ok"])
}

func TestCreateRoomEndpoint(t *testing.T) {
	t.Run("bearer token identity", func(t *testing.T) {
		router, store, _ := setup(t)

		status, env := doJSON(t, router, "/create-room", "alice-token", map[string]any{
			"estimation_unit": "days",
		})

		require.Equal(t, http.StatusOK, status)
		roomID, _ := env.Data["room_id"].(string)
		joinCode, _ := env.Data["join_code"].(string)
		assert.NotEmpty(t, roomID)
		assert.Len(t, joinCode, 6)

		room, ok := store.Room(roomID)
		require.True(t, ok)
		assert.Equal(t, "alice", room.CreatedBy)
		assert.Equal(t, poker.UnitDays, room.Unit)
	})

	t.Run("legacy body identity", func(t *testing.T) {
		router, store, _ := setup(t)

		status, env := doJSON(t, router, "/create-room", "", map[string]any{
			"user_id": "legacy-bob",
		})

		require.Equal(t, http.StatusOK, status)
		room, ok := store.Room(env.Data["room_id"].(string))
		require.True(t, ok)
		assert.Equal(t, "legacy-bob", room.CreatedBy)
		assert.Equal(t, poker.UnitPoints, room.Unit)
	})

	t.Run("no identity at all", func(t *testing.T) {
		router, _, _ := setup(t)

		status, env := doJSON(t, router, "/create-room", "", map[string]any{})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.NotEqual(t, 0, env.Code)
	})

	t.Run("invalid bearer token", func(t *testing.T) {
		router, _, _ := setup(t)

		status, _ := doJSON(t, router, "/create-room", "forged-token", map[string]any{})
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("unknown body field is rejected", func(t *testing.T) {
		router, _, _ := setup(t)

		status, _ := doJSON(t, router, "/create-room", "alice-token", map[string]any{
			"estimation_unit": "points",
			"surprise":        true,
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestJoinRoomEndpoint(t *testing.T) {
	seedRoom := func(t *testing.T, service *poker.Service) poker.Room {
		t.Helper()
		room, customErr := service.CreateRoom(context.Background(), "creator", "points")
		require.Nil(t, customErr)
		return room
	}

	t.Run("joins and returns the member list", func(t *testing.T) {
		router, _, service := setup(t)
		room := seedRoom(t, service)

		status, env := doJSON(t, router, "/join-room", "", map[string]any{
			"join_code": room.JoinCode,
			"user_id":   "legacy-bob",
		})

		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, room.ID, env.Data["room_id"])
		members, ok := env.Data["members"].([]any)
		require.True(t, ok)
		assert.Len(t, members, 2)
	})

	t.Run("unknown code returns 404", func(t *testing.T) {
		router, _, _ := setup(t)

		status, _ := doJSON(t, router, "/join-room", "", map[string]any{
			"join_code": "ZZZZZZ",
			"user_id":   "legacy-bob",
		})
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("missing join code returns 400", func(t *testing.T) {
		router, _, _ := setup(t)

		status, _ := doJSON(t, router, "/join-room", "", map[string]any{
			"user_id": "legacy-bob",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestEstimateEndpoints(t *testing.T) {
	t.Run("full round trip over HTTP", func(t *testing.T) {
		router, store, service := setup(t)

		room, customErr := service.CreateRoom(context.Background(), "alice", "points")
		require.Nil(t, customErr)

		status, _ := doJSON(t, router, "/join-room", "", map[string]any{
			"join_code": room.JoinCode,
			"user_id":   "legacy-bob",
		})
		require.Equal(t, http.StatusOK, status)

		status, env := doJSON(t, router, "/submit-estimate", "alice-token", map[string]any{
			"room_id":  room.ID,
			"estimate": 5,
		})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Estimate submitted successfully", env.Message)

		status, _ = doJSON(t, router, "/submit-estimate", "", map[string]any{
			"room_id":  room.ID,
			"estimate": 8,
			"user_id":  "legacy-bob",
		})
		require.Equal(t, http.StatusOK, status)

		status, env = doJSON(t, router, "/reveal", "alice-token", map[string]any{
			"room_id": room.ID,
		})
		require.Equal(t, http.StatusOK, status)
		assert.InDelta(t, 6.5, env.Data["average"].(float64), 0.0001)
		estimates, ok := env.Data["estimates"].([]any)
		require.True(t, ok)
		assert.Len(t, estimates, 2)

		status, env = doJSON(t, router, "/reset", "", map[string]any{
			"room_id": room.ID,
			"user_id": "legacy-bob",
		})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Room reset successfully", env.Message)
		assert.Equal(t, 0, store.EstimateCount(room.ID))

		status, _ = doJSON(t, router, "/reveal", "alice-token", map[string]any{
			"room_id": room.ID,
		})
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("non-member actions return 403", func(t *testing.T) {
		router, _, service := setup(t)

		room, customErr := service.CreateRoom(context.Background(), "creator", "points")
		require.Nil(t, customErr)
		require.Nil(t, service.SubmitEstimate(context.Background(), room.ID, "creator", 3))

		for _, path := range []string{"/submit-estimate", "/reveal", "/reset"} {
			body := map[string]any{"room_id": room.ID, "user_id": "outsider"}
			if path == "/submit-estimate" {
				body["estimate"] = 1
			}
			status, _ := doJSON(t, router, path, "", body)
			assert.Equal(t, http.StatusForbidden, status, "path %s", path)
		}
	})

	t.Run("missing estimate value returns 400", func(t *testing.T) {
		router, _, service := setup(t)

		room, customErr := service.CreateRoom(context.Background(), "alice", "points")
		require.Nil(t, customErr)

		status, _ := doJSON(t, router, "/submit-estimate", "alice-token", map[string]any{
			"room_id": room.ID,
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("wrong content type returns 415", func(t *testing.T) {
		router, _, _ := setup(t)

		r := httptest.NewRequest(http.MethodPost, "/reveal", bytes.NewReader([]byte("room_id=x")))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})
}

/*
Package handler provides the HTTP handlers and routing for the Scrum Poker
backend.

This file defines the Router, applying CORS, request logging, and IP-based
rate limiting before delegating to the per-endpoint handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/Antriksh29071989/scrumpoker/internal/pkg/limiter"
	"github.com/Antriksh29071989/scrumpoker/internal/pkg/logx"
	"github.com/Antriksh29071989/scrumpoker/internal/pkg/resp"
)

// Rate limits for the endpoints that create rows on behalf of anonymous-ish
// clients. Estimation is human-paced; these are generous for real use and
// tight for scripts.
const (
	CreateRate  = 0.05
	CreateBurst = 2
	JoinRate    = 0.2
	JoinBurst   = 5
)

// Router builds the application's routing table. It configures CORS from
// the origin allow-list, wires the global middleware stack, and applies
// per-IP rate limits to room creation and joining.
func Router(deps *AppDeps) http.Handler {
	createLimiter := limiter.NewIPRateLimiter(rate.Limit(CreateRate), CreateBurst)
	joinLimiter := limiter.NewIPRateLimiter(rate.Limit(JoinRate), JoinBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: false,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]any{"ok": true})
	})

	r.With(createLimiter.Middleware).Post("/create-room", HandleCreateRoom(deps))
	r.With(joinLimiter.Middleware).Post("/join-room", HandleJoinRoom(deps))
	r.Post("/submit-estimate", HandleSubmitEstimate(deps))
	r.Post("/reveal", HandleReveal(deps))
	r.Post("/reset", HandleReset(deps))

	return r
}

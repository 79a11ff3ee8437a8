package handler

import (
	"github.com/Antriksh29071989/scrumpoker/internal/app/identity"
	"github.com/Antriksh29071989/scrumpoker/internal/app/poker"
	"github.com/Antriksh29071989/scrumpoker/internal/configs"
)

// AppDeps bundles everything the HTTP handlers need.
type AppDeps struct {
	Config *configs.AppConfig
	Poker  *poker.Service
	Auth   *identity.Authenticator
}

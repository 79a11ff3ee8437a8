/*
Package identity resolves the user behind an inbound request.

A bearer token is verified through one of two configurable strategies
(remote exchange with the identity provider, or local JWT verification) and
yields a stable user id. When no token is present, a deprecated
caller-supplied user id may be accepted as a fallback if that compatibility
path is enabled in configuration.
*/
package identity

import (
	"context"
	"net/http"
	"strings"

	"github.com/Antriksh29071989/scrumpoker/internal/pkg/errs"
	"github.com/Antriksh29071989/scrumpoker/internal/pkg/logx"
)

// TokenVerifier validates an access token and returns the user id it belongs to.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, *errs.CustomError)
}

// Authenticator resolves a request to a non-empty user id.
type Authenticator struct {
	verifier TokenVerifier

	// allowLegacy enables the deprecated body-supplied user id fallback.
	// Disabled in production configurations.
	allowLegacy bool
}

// NewAuthenticator builds an Authenticator around the given verifier.
// A nil verifier rejects every bearer token, which is only acceptable in
// development setups that rely entirely on the legacy fallback.
func NewAuthenticator(verifier TokenVerifier, allowLegacy bool) *Authenticator {
	return &Authenticator{
		verifier:    verifier,
		allowLegacy: allowLegacy,
	}
}

// ExtractBearerToken pulls the token out of an "Authorization: Bearer <t>"
// header. It returns the empty string when the header is absent or not in
// bearer form.
func ExtractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}

// Resolve produces the user id for the request. The bearer token always wins
// when present; legacyUserID is the deprecated body field honored only when
// the fallback is enabled and no token was sent.
func (a *Authenticator) Resolve(r *http.Request, legacyUserID string) (string, *errs.CustomError) {
	token := ExtractBearerToken(r)

	if token != "" {
		if a.verifier == nil {
			logx.Warn("Bearer token received but no token verifier is configured")
			return "", errs.NewError(errs.ErrUnauthorized)
		}
		return a.verifier.Verify(r.Context(), token)
	}

	if a.allowLegacy && legacyUserID != "" {
		return legacyUserID, nil
	}

	return "", errs.NewError(errs.ErrUnauthorized)
}

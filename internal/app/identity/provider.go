package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Antriksh29071989/scrumpoker/internal/pkg/errs"
	"github.com/Antriksh29071989/scrumpoker/internal/pkg/logx"
)

// providerTimeout bounds the round trip to the identity provider.
const providerTimeout = 10 * time.Second

// ProviderVerifier verifies an access token by exchanging it with the
// identity provider's current-user endpoint.
type ProviderVerifier struct {
	baseURL string
	client  *http.Client
}

// NewProviderVerifier builds a ProviderVerifier for the provider rooted at
// baseURL (no trailing slash).
func NewProviderVerifier(baseURL string) *ProviderVerifier {
	return &ProviderVerifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: providerTimeout},
	}
}

// currentUser is the subset of the provider's user object we care about.
type currentUser struct {
	ID string `json:"id"`
}

// Verify forwards the token to the provider and returns the authenticated
// user's id. Provider rejection maps to Unauthorized; transport failure maps
// to the auth service being unavailable.
func (v *ProviderVerifier) Verify(ctx context.Context, token string) (string, *errs.CustomError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		logx.Error(err, "Failed to build identity provider request")
		return "", errs.NewError(errs.ErrInternal, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := v.client.Do(req)
	if err != nil {
		logx.Error(err, "Identity provider unreachable")
		return "", errs.NewError(errs.ErrAuthUnavailable)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", errs.NewError(errs.ErrUnauthorized)
	}

	var user currentUser
	if err := json.NewDecoder(res.Body).Decode(&user); err != nil {
		logx.Error(err, "Failed to decode identity provider response")
		return "", errs.NewError(errs.ErrUnauthorized)
	}

	if user.ID == "" {
		return "", errs.NewError(errs.ErrUnauthorized)
	}

	return user.ID, nil
}

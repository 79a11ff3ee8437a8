/*
Package poker contains the core estimation workflow: room creation and
lookup, membership, the per-round estimate ledger, and the reveal/reset
engine.
*/
package poker

import "strings"

// Estimation units recognized for a room. Anything else normalizes to points.
const (
	UnitPoints = "points"
	UnitDays   = "days"
)

// MaxRoomMembers is the member capacity enforced for new joins. Existing
// members are never evicted by the cap.
const MaxRoomMembers = 15

// joinCodeAttempts bounds the retries for finding an unused join code.
const joinCodeAttempts = 6

// Room is a shared estimation session reachable through its join code.
type Room struct {
	ID        string   `json:"id"`
	JoinCode  string   `json:"join_code"`
	CreatedBy string   `json:"created_by"`
	Unit      string   `json:"estimation_unit"`
	Revealed  bool     `json:"revealed"`
	Average   *float64 `json:"average"`
	Active    bool     `json:"is_active"`
}

// Profile is the user record kept by the identity provider. Username and
// avatar stay nil until the user fills them in.
type Profile struct {
	ID        string  `json:"id"`
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// Member is a room participant resolved against the user profiles.
type Member struct {
	UserID    string  `json:"user_id"`
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// Estimate is one user's current value for the round. Value is a pointer
// because the store column is nullable; Submit always writes a value, but
// reveal tolerates null rows rather than failing the whole round.
type Estimate struct {
	UserID string
	Value  *float64
}

// RevealedEstimate is one entry of the reveal result: the submitter's
// display name (null when no profile exists) and their value.
type RevealedEstimate struct {
	User     *string  `json:"user"`
	Estimate *float64 `json:"estimate"`
}

// NormalizeUnit maps arbitrary input to a recognized estimation unit,
// defaulting to points.
func NormalizeUnit(unit string) string {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case UnitDays:
		return UnitDays
	default:
		return UnitPoints
	}
}

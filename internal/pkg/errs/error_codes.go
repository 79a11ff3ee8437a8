/*
Package errs defines the application's error taxonomy.

These error codes identify specific business or system failures both inside
the server and in responses to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body is not valid JSON.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after the JSON document.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate exceeded the per-IP limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Room and Estimation Business Logic Errors
const (
	// ErrRoomNotFound indicates that no room matches the given join code or id.
	ErrRoomNotFound = 2101

	// ErrRoomInactive indicates an attempt to join a deactivated room.
	ErrRoomInactive = 2102

	// ErrRoomIsFull indicates that the room has reached its member capacity.
	ErrRoomIsFull = 2103

	// ErrNotRoomMember indicates a member-only action attempted by a non-member.
	ErrNotRoomMember = 2104

	// ErrJoinCodeExhausted indicates that no unique join code could be
	// allocated within the retry budget.
	ErrJoinCodeExhausted = 2105

	// ErrNoEstimates indicates a reveal on a room whose current round has no
	// submitted estimates.
	ErrNoEstimates = 2201
)

// 3xxx: Identity and Security Errors
const (
	// ErrUnauthorized indicates a missing, invalid or expired credential.
	ErrUnauthorized = 3001

	// ErrAuthUnavailable indicates that the identity provider could not be reached.
	ErrAuthUnavailable = 3002
)

// 5xxx: Internal System Errors
const (
	// ErrInternal represents an unclassified server-side failure, typically a
	// data store error.
	ErrInternal = 5000
)

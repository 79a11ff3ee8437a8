/*
Package errs defines the application's error taxonomy.

This file maps every error code to its CustomError template, standardizing
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Request body is not valid JSON.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Room and Estimation Business Logic Errors
	ErrRoomNotFound:      {Code: ErrRoomNotFound, Message: "Room not found.", Status: http.StatusNotFound},
	ErrRoomInactive:      {Code: ErrRoomInactive, Message: "Room is not active.", Status: http.StatusForbidden},
	ErrRoomIsFull:        {Code: ErrRoomIsFull, Message: "Room is full.", Status: http.StatusForbidden},
	ErrNotRoomMember:     {Code: ErrNotRoomMember, Message: "User is not a member of this room.", Status: http.StatusForbidden},
	ErrJoinCodeExhausted: {Code: ErrJoinCodeExhausted, Message: "Could not allocate a unique join code. Please try again.", Status: http.StatusServiceUnavailable},
	ErrNoEstimates:       {Code: ErrNoEstimates, Message: "No estimates submitted for this round.", Status: http.StatusNotFound},

	// 3xxx: Identity and Security Errors
	ErrUnauthorized:    {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrAuthUnavailable: {Code: ErrAuthUnavailable, Message: "Sign-in service is unavailable. Please try again later.", Status: http.StatusServiceUnavailable},

	// 5xxx: Internal System Errors
	ErrInternal: {Code: ErrInternal, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}

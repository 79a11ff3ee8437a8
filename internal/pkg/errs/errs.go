/*
Package errs defines the application's error taxonomy.

CustomError carries a stable business code, a client-facing message, and the
HTTP status it maps to, so every layer of the server reports failures the
same way.
*/
package errs

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Antriksh29071989/scrumpoker/internal/pkg/logx"
)

// CustomError is the error type used across the application. It implements
// the standard error interface and adds a business code plus HTTP status.
type CustomError struct {
	// Code is the business error code (see constants definition).
	Code int

	// Message is the user-facing error description.
	Message string

	// Status is the HTTP status code this error maps to.
	Status int
}

// Error implements the standard error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError constructs a *CustomError from a predefined error code. Optional
// details are applied printf-style when the message template has
// placeholders. Unknown codes degrade to ErrInternal.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]

	if !ok {
		logx.Error(
			fmt.Errorf("attempted to create an error with an unknown code in errorMap"),
			"Unknown error code requested",
			"requested_code", code,
		)

		internalErr := errorMap[ErrInternal]
		return &CustomError{
			Code:    internalErr.Code,
			Message: internalErr.Message,
			Status:  internalErr.Status,
		}
	}

	customErr := templateErr

	if customErr.Status == 0 {
		customErr.Status = http.StatusInternalServerError
	}

	if code == ErrInternal && len(details) > 0 {
		if originalErr, ok := details[0].(error); ok {
			logx.Error(
				originalErr,
				"Handling ErrInternal with underlying error",
			)
		}
	} else if len(details) > 0 {
		if strings.Contains(customErr.Message, "%") {
			customErr.Message = fmt.Sprintf(customErr.Message, details...)
		} else {
			logx.Warn(
				"Details provided for error, but message template has no formatting placeholders. Details ignored.",
			)
		}
	}

	return &customErr
}

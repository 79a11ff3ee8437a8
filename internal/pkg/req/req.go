/*
Package req provides helpers for parsing HTTP request bodies.

It binds JSON payloads with strict decoding so malformed or oversized input
is rejected uniformly before any business logic runs.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Antriksh29071989/scrumpoker/internal/pkg/errs"
)

// MaxBodySize caps request bodies at 64 KB. Every endpoint takes a small
// JSON document; anything larger is abuse.
const MaxBodySize int64 = 64 << 10

// BindJSON binds the JSON request body to dst. Unknown fields and trailing
// content are rejected.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}

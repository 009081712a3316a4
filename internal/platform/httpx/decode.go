package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"jobpilot/backend/internal/platform/apperr"
)

// MaxJSONBody caps JSON request bodies.
const MaxJSONBody = 1 << 20

// Decode reads a JSON body into dst and validates it with v.
func Decode(w http.ResponseWriter, r *http.Request, v *Validator, dst any) error {
	body := http.MaxBytesReader(w, r.Body, MaxJSONBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.BadRequest("request body is empty")
		case errors.As(err, &tooLarge):
			return apperr.BadRequest("request body too large")
		}
		return apperr.BadRequest("invalid JSON body")
	}
	if v == nil {
		return nil
	}
	return v.Struct(dst)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"catalog-api/internal/middleware"
	"catalog-api/internal/model"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError translates any failure into the canonical error envelope. This
// is the single point where internal failures become wire-visible: typed
// domain errors keep their kind and message, everything else is logged with
// the correlation id and surfaced as the generic Unexpected message.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var apiErr *model.Error
	if !errors.As(err, &apiErr) {
		apiErr = model.NewUnexpected(err)
	}

	if apiErr.Kind == model.KindUnexpected {
		cause := apiErr.Unwrap()
		if cause == nil {
			cause = err
		}
		logger.Error().
			Err(cause).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.RequestIDFrom(r.Context())).
			Msg("unexpected error")
	} else {
		logger.Debug().
			Str("kind", string(apiErr.Kind)).
			Str("message", apiErr.Message).
			Str("path", r.URL.Path).
			Msg("request failed")
	}

	writeJSON(w, apiErr.Status(), model.NewErrorResponse(apiErr, r.URL.Path))
}

// pathID extracts the numeric {id} path variable. A malformed id is reported
// as a validation failure.
func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, model.NewValidation([]model.FieldError{
			{Field: "id", Message: "must be a valid integer"},
		})
	}
	return id, nil
}

// decodeJSON unmarshals the request body into dst. A malformed body is
// reported as a validation failure.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewValidation([]model.FieldError{
			{Field: "body", Message: "must be valid JSON"},
		})
	}
	return nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AnshRaj112/serenify-journal/internal/apperrors"
	"github.com/AnshRaj112/serenify-journal/internal/metrics"
	"github.com/AnshRaj112/serenify-journal/internal/middleware"
	"github.com/go-playground/validator/v10"
)

type errorResponse struct {
	Message string                  `json:"message"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps err onto its status code. Internal causes are logged and
// never sent to the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := apperrors.As(err)
	metrics.HTTPErrors.WithLabelValues(string(e.Type)).Inc()

	if e.Type == apperrors.TypeInternal {
		userID, _ := middleware.UserIDFrom(r.Context())
		h.log.Error().Err(e.Cause).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("user_id", userID).
			Msg(e.Message)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Server error"})
		return
	}
	writeJSON(w, e.HTTPStatus(), errorResponse{Message: e.Message, Errors: e.Fields})
}

// requireUser returns the authenticated caller. The auth middleware guarantees
// it on every /api route; a missing id is answered with 401.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "Authentication required"})
		return "", false
	}
	return userID, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	return nil
}

// fieldMessages holds the client message per "field.tag".
type fieldMessages map[string]string

// validationError converts validator output into a 400 with one entry per field.
func validationError(err error, messages fieldMessages) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation("Validation failed")
	}
	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		fields = append(fields, apperrors.FieldError{Field: fe.Field(), Message: msg})
	}
	return apperrors.Validation("Validation failed", fields...)
}

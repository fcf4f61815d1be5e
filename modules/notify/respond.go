package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shipfwd/notifyd/pkg/logger"
	"github.com/shipfwd/notifyd/pkg/notification"
	"github.com/shipfwd/notifyd/pkg/preference"
	"github.com/shipfwd/notifyd/pkg/validator"
)

type errorResponse struct {
	Error  string                      `json:"error"`
	Fields []validator.ValidationError `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondError maps domain error kinds to HTTP statuses. Validation failures
// carry their field list; storage failures are logged and hidden behind a
// generic message.
func respondError(ctx context.Context, w http.ResponseWriter, log *slog.Logger, err error) {
	if verrs, ok := validator.Extract(err); ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "validation failed",
			Fields: verrs,
		})
		return
	}

	switch {
	case errors.Is(err, notification.ErrNotFound), errors.Is(err, preference.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, preference.ErrAlreadyExists):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		log.ErrorContext(ctx, "request failed", logger.Error(err))
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		verrs := validator.ValidationErrors{{Field: "body", Message: "must be valid JSON"}}
		return verrs
	}
	return nil
}

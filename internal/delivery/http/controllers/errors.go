package controllers

import (
	"log/slog"
	"net/http"

	"conferencego/internal/delivery/http/helpers"
)

// Messages answered for a missing primary record or a bad reference.
const (
	msgInvalidAttendeeID     = "Invalid attendee id"
	msgInvalidPresentationID = "Invalid Presentation id"
	msgInvalidConferenceID   = "Invalid conference id"
	msgInvalidLocationID     = "Invalid location id"
	msgInvalidStatus         = "Invalid Status"
	msgInvalidConference     = "Invalid Conference ID"
	msgInvalidState          = "Invalid state abbreviation"
)

const msgInternalError = "internal server error"

// serverError logs err and answers 500. The error text stays in the log.
func serverError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteMessage(w, http.StatusInternalServerError, msgInternalError)
}

package httpapi

import (
	"errors"
	"net/http"

	"pocketledger/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeErr(w, http.StatusBadRequest, msg, "validation_error")
}

// writeDomainErr maps sentinel errors from the store and services onto
// status codes. Silent no-ops are a thing of the past: every refused
// mutation comes back as an explicit outcome.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		writeErr(w, http.StatusNotFound, "not_found", "not_found")
	case errors.Is(err, errs.ErrLastAccount):
		writeErr(w, http.StatusConflict, err.Error(), "last_account")
	case errors.Is(err, errs.ErrInvalidAmount):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "invalid_amount")
	case errors.Is(err, errs.ErrUnknownAccount):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "unknown_account")
	case errors.Is(err, errs.ErrUnknownCategory):
		writeErr(w, http.StatusUnprocessableEntity, err.Error(), "unknown_category")
	case errors.Is(err, errs.ErrInvalid):
		writeErr(w, http.StatusBadRequest, err.Error(), "validation_error")
	default:
		writeErr(w, http.StatusInternalServerError, "internal error", "internal")
	}
}

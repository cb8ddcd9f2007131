package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"ptalk-server/models"
	services "ptalk-server/service"
	"ptalk-server/smartpaste"
)

const MAX_BODY_BYTES = 1 << 20

// Error codes carried in ApiResponse.errorCode.
const (
	ERROR_CODE_BAD_REQUEST      = "BAD_REQUEST"
	ERROR_CODE_VALIDATION       = "VALIDATION_ERROR"
	ERROR_CODE_NOT_FOUND        = "NOT_FOUND"
	ERROR_CODE_FORBIDDEN        = "ACTION_NOT_ALLOWED"
	ERROR_CODE_CONFLICT         = "CONFLICT_NOT_CONFIRMED"
	ERROR_CODE_NOTHING_TO_APPLY = "NOTHING_TO_APPLY"
	ERROR_CODE_UNPARSABLE       = "UNPARSABLE_TEXT"
	ERROR_CODE_UNAUTHORIZED     = "UNAUTHORIZED"
	ERROR_CODE_INVALID_LOGIN    = "INVALID_CREDENTIALS"
	ERROR_CODE_ACCOUNT_DISABLED = "ACCOUNT_DISABLED"
	ERROR_CODE_EMAIL_TAKEN      = "EMAIL_TAKEN"
	ERROR_CODE_WRONG_PASSWORD   = "WRONG_PASSWORD"
	ERROR_CODE_INTERNAL         = "INTERNAL_ERROR"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{services.ErrValidation, http.StatusBadRequest, ERROR_CODE_VALIDATION},
	{services.ErrWrongPassword, http.StatusBadRequest, ERROR_CODE_WRONG_PASSWORD},
	{services.ErrInvalidCoordinate, http.StatusUnprocessableEntity, ERROR_CODE_UNPARSABLE},
	{smartpaste.ErrEmptyText, http.StatusUnprocessableEntity, ERROR_CODE_UNPARSABLE},
	{smartpaste.ErrNoDayRecognized, http.StatusUnprocessableEntity, ERROR_CODE_UNPARSABLE},
	{services.ErrNothingToApply, http.StatusUnprocessableEntity, ERROR_CODE_NOTHING_TO_APPLY},
	{services.ErrNotFound, http.StatusNotFound, ERROR_CODE_NOT_FOUND},
	{services.ErrActionNotAllowed, http.StatusForbidden, ERROR_CODE_FORBIDDEN},
	{services.ErrAccountDisabled, http.StatusForbidden, ERROR_CODE_ACCOUNT_DISABLED},
	{services.ErrConflictNotConfirmed, http.StatusConflict, ERROR_CODE_CONFLICT},
	{services.ErrEmailTaken, http.StatusConflict, ERROR_CODE_EMAIL_TAKEN},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, ERROR_CODE_INVALID_LOGIN},
	{services.ErrUnauthorized, http.StatusUnauthorized, ERROR_CODE_UNAUTHORIZED},
}

// statusFor maps a service error onto an HTTP status and error code.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, ERROR_CODE_INTERNAL
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("[Handlers] Error encoding response:", err)
	}
}

func writeSuccess[T any](w http.ResponseWriter, data T) {
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(data))
}

func writeErrorMessage(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, models.NewErrorResponse(code, message))
}

// writeError renders err in the envelope. Validation errors carry their
// per-field messages as data; data, when given, is attached otherwise.
func writeError(w http.ResponseWriter, err error, data interface{}) {
	status, code := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Println("[Handlers] Internal error:", err)
		message = "Internal server error"
	}
	resp := models.NewErrorResponse(code, message)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		resp.Data = verr.Fields
	} else if data != nil {
		resp.Data = data
	}
	writeJSON(w, status, resp)
}

// decodeJSON reads a JSON body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, MAX_BODY_BYTES)
	if err := json.NewDecoder(body).Decode(dst); err != nil && err != io.EOF {
		writeErrorMessage(w, http.StatusBadRequest, ERROR_CODE_BAD_REQUEST, "Invalid JSON body")
		return false
	}
	return true
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	return strconv.ParseFloat(s, 64)
}

// parseArgInt returns def when the argument is absent.
func parseArgInt(vals url.Values, name string, def int) (int, error) {
	s := vals.Get(name)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

// Package apperrors defines the flat error-code taxonomy surfaced to API
// callers. Every business-rule failure maps to one of these values; anything
// else is reported as SERVER_ERROR.
package apperrors

import "net/http"

type Error struct {
	Code   string
	Status int
}

func (e *Error) Error() string {
	return e.Code
}

func New(code string, status int) *Error {
	return &Error{Code: code, Status: status}
}

const CodeServerError = "SERVER_ERROR"

var (
	ErrNotFound                  = New("NOT_FOUND", http.StatusNotFound)
	ErrForbidden                 = New("FORBIDDEN", http.StatusForbidden)
	ErrUnauthorized              = New("UNAUTHORIZED", http.StatusUnauthorized)
	ErrEventNotAvailable         = New("EVENT_NOT_AVAILABLE", http.StatusBadRequest)
	ErrEventAlreadyStarted       = New("EVENT_ALREADY_STARTED", http.StatusBadRequest)
	ErrRegistrationClosed        = New("REGISTRATION_CLOSED", http.StatusBadRequest)
	ErrEventFull                 = New("EVENT_FULL", http.StatusBadRequest)
	ErrAlreadyRegistered         = New("ALREADY_REGISTERED", http.StatusBadRequest)
	ErrTitleAndStartDateRequired = New("TITLE_AND_START_DATE_REQUIRED", http.StatusBadRequest)
	ErrEventIDRequired           = New("EVENT_ID_REQUIRED", http.StatusBadRequest)
	ErrValidation                = New("VALIDATION_ERROR", http.StatusBadRequest)
	ErrInvalidCredentials        = New("INVALID_CREDENTIALS", http.StatusUnauthorized)
	ErrEmailTaken                = New("EMAIL_ALREADY_REGISTERED", http.StatusBadRequest)
)

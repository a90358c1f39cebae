package services

import "errors"

// Sentinel errors the HTTP layer maps onto status codes. Anything else
// coming out of a service is an infrastructure failure and turns into a 500.
var (
	ErrValidation      = errors.New("validation failed")
	ErrStudentNotFound = errors.New("student not found")
	ErrTutorNotFound   = errors.New("tutor not found")
	ErrSubjectNotFound = errors.New("subject not found")
	ErrRequestNotFound = errors.New("request not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidDecision = errors.New("decision must be ACCEPTED or REJECTED")
	// ErrCannotRate deliberately does not say which precondition failed:
	// wrong owner, not completed yet, or already rated.
	ErrCannotRate   = errors.New("session cannot be rated")
	ErrCannotCancel = errors.New("session cannot be cancelled")
)

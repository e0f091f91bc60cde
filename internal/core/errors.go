package core

import "errors"

// Sentinel errors surfaced to handlers, which map them to HTTP statuses.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrForbiddenAccess    = errors.New("access to this resource is forbidden")

	// ErrProfileIncomplete means the caller filed before completing their
	// profile; the client redirects to the profile page.
	ErrProfileIncomplete = errors.New("user profile not found; complete your registration first")

	ErrAnonymousNotAllowed  = errors.New("this service does not accept anonymous submissions")
	ErrMissingRequiredField = errors.New("required form field missing")
	ErrInvalidStatus        = errors.New("status not in this service's vocabulary")
	ErrInvalidRole          = errors.New("unknown role tag")

	ErrNotificationNotFound = errors.New("notification not found")

	// ErrPanicContactNotConfigured aborts the panic trigger before any
	// geolocation or SMS composition; the client redirects to the
	// configuration view.
	ErrPanicContactNotConfigured = errors.New("no trusted contact configured for the panic button")
)

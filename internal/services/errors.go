package services

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRecurrence  = errors.New("recurring task requires a valid recurrence pattern")
	ErrEmailTaken         = errors.New("email already registered")
	ErrParentRequired     = errors.New("worker requires a parent admin")
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrNotCheckedIn       = errors.New("no check-in recorded today")
	ErrAlreadyCheckedOut  = errors.New("already checked out today")
	ErrSubtaskCompleted   = errors.New("subtask already completed")
	ErrSetupDone          = errors.New("setup already completed")
)

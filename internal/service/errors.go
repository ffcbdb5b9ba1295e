package service

import "errors"

// Business-rule failures surfaced to the HTTP layer as 4xx responses. These
// are expected conditions, not faults; controllers must never map them to 500s.
var (
	// ErrNoAvailableRiddles means the user has correctly solved every riddle
	// in the pool.
	ErrNoAvailableRiddles = errors.New("no available riddles")

	// ErrNoAssignmentToday means an answer was submitted before the daily
	// riddle was fetched.
	ErrNoAssignmentToday = errors.New("no riddle assigned for today")

	// ErrAlreadyAnswered means the current game-day assignment already has a
	// scored answer.
	ErrAlreadyAnswered = errors.New("daily riddle already answered")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrUserNotFound       = errors.New("user not found")

	ErrInvalidCode    = errors.New("invalid code or expired")
	ErrCodeLocked     = errors.New("code locked due to too many attempts")
	ErrInvalidSession = errors.New("invalid session")
)

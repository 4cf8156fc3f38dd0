package service

import "errors"

// Error messages are user-visible and stable; they deliberately match the
// wire messages clients already depend on.
var (
	ErrInvalidCredentials      = errors.New("Incorrect username or password")
	ErrInvalidRefreshToken     = errors.New("Invalid refresh token")
	ErrInvalidToken            = errors.New("Invalid token")
	ErrUserNotFound            = errors.New("User not found")
	ErrInsufficientPermissions = errors.New("Not enough permissions")
	ErrUsernameTaken           = errors.New("Username already registered")
	ErrOnlyCollectors          = errors.New("Only collectors can record tax collection")
	ErrNotAssigned             = errors.New("You are not assigned to this household")
	ErrRecordNotFound          = errors.New("Record not found")
	ErrInvalidVolunteer        = errors.New("Invalid volunteer details")
	ErrInvalidHouseNumber      = errors.New("Invalid house number")
)

const LoggedOutMessage = "Logged out successfully"

// Package services implements the business logic: authentication, slot
// wagering and settlement, and cached profile reads.
//
// This file centralizes the service-level error values so callers can match
// them with errors.Is and map them to HTTP status codes at the handler layer.
package services

import "errors"

var (
	// ErrInvalidBet is returned when the bet amount is zero or negative.
	ErrInvalidBet = errors.New("bet amount must be greater than zero")

	// ErrInsufficientBalance is returned when the user's balance cannot
	// cover the bet.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrUserNotFound indicates the user identifier does not resolve.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUsername is returned when registering an already taken
	// username.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials is returned on login when the username is
	// unknown or the password does not match. Deliberately not more
	// specific than that.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

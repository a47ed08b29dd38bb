package service

import "errors"

var (
	// ErrInvalidInput covers empty credentials and message text outside [1,255].
	ErrInvalidInput = errors.New("invalid input")
	// ErrUsernameTaken is returned when registering an already-used username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned on any login mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMessageNotFound is returned when an update targets a missing message.
	ErrMessageNotFound = errors.New("message not found")
)

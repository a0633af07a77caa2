package service

import "errors"

var (
	// ErrForbidden means the caller's role does not cover the requested data.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidAction means the bot request named an unknown action.
	ErrInvalidAction = errors.New("invalid action")
)

// Package common defines shared constants and sentinel errors used across
// GitPress components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Remote store errors.
	ErrNotFound        = errors.New("not found")
	ErrVersionConflict = errors.New("version conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNetwork         = errors.New("network failure")
	ErrRemote          = errors.New("remote store error")

	// Configuration errors (missing or placeholder credential/settings).
	ErrNotConfigured = errors.New("not configured")

	// Content errors.
	ErrParse      = errors.New("unparseable content")
	ErrTooLarge   = errors.New("encoded image too large")
	ErrValidation = errors.New("validation error")
)

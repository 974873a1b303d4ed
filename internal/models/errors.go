package models

import "errors"

// Sentinel errors shared by the stores, services and session controller.
// Match them with errors.Is; storage layers wrap them with context.
var (
	// Credential store.
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyCredentials   = errors.New("username and password are required")

	// Page store.
	ErrTitleConflict = errors.New("page with this title already exists")
	ErrNotFound      = errors.New("page not found")
	ErrEmptyTitle    = errors.New("title is empty")
	ErrEmptyContent  = errors.New("content is empty")

	// Session controller.
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrIllegalTransition = errors.New("action not allowed in current mode")
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidToken      = errors.New("invalid token")
)

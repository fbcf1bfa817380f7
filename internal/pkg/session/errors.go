package session

import "github.com/pkg/errors"

// ErrSessionNotFound is returned for an ID with no open session.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionAlreadyExists is returned when an ID is registered twice.
var ErrSessionAlreadyExists = errors.New("session already exists")

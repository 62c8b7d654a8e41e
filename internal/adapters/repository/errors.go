package repository

import "errors"

// Sentinel kinds for aggregate store errors.
var (
	ErrCompetitorNotFound = errors.New("competitor not found")
	ErrEventNotFound      = errors.New("event not found")
)

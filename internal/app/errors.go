package app

import "errors"

// Sentinel kinds for engine lifecycle errors.
var (
	// ErrLoadInProgress rejects a load request while one is in flight; the
	// request fails, the engine and its prior snapshot do not.
	ErrLoadInProgress = errors.New("load already in progress")

	// ErrNotLoaded gates every query entry point before the first load.
	ErrNotLoaded = errors.New("dataset not loaded")

	// ErrNoSource means the service was built without a Source.
	ErrNoSource = errors.New("no source configured")
)

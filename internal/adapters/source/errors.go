package source

import "errors"

// Sentinel kinds for source loader errors.
var (
	ErrManifestRead      = errors.New("manifest read failed")
	ErrSeasonUnavailable = errors.New("season unavailable")
)

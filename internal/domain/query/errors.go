package query

import "errors"

// ErrBadFilter flags a filter value that names no known surface or
// category. Callers surface it as a client error.
var ErrBadFilter = errors.New("unrecognized filter value")

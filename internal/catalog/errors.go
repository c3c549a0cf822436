package catalog

import "errors"

// ErrNotFound indicates the requested movie doesn't exist.
var ErrNotFound = errors.New("not found")

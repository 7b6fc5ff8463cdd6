package model

import "errors"

// ErrMissingInfo is returned when a toplevel handle is used before the
// compositor sent its info. Callers retry on the next event for the handle.
var ErrMissingInfo = errors.New("toplevel is missing associated info")

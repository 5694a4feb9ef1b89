package trips

import "errors"

// ErrNotFound reports a trip id with no matching row.
var ErrNotFound = errors.New("trip not found")

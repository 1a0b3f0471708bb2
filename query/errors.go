package query

import "errors"

// ErrNoOrderVariables is returned by Order when called with no variable
// names: an ordering over zero keys is a caller error, not a no-op.
var ErrNoOrderVariables = errors.New("order requires at least one variable name")

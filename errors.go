package symbridge

import "errors"

// ErrAttributeNotFound is returned by GetAttr when a name is not in the
// allowlist. Dunder names and names outside the curated set both resolve
// to this error; callers distinguish it with errors.Is.
var ErrAttributeNotFound = errors.New("attribute not found")

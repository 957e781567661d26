package store

import "errors"

// ErrForbidden indicates the target document is owned by a different user.
// No partial write occurs when it is returned.
var ErrForbidden = errors.New("document owned by another user")

// ErrNotFound indicates the target document does not exist. Deletes treat
// absence as a successful no-op and never return this.
var ErrNotFound = errors.New("document not found")
